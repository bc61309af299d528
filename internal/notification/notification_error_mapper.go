package notification

import "go-hr-admin/internal/shared/dbutil"

func isDuplicateEvent(err error) bool {
	return dbutil.IsDuplicateKey(err, "uq_notifications_event")
}
