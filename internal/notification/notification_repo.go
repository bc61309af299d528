package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByEmployee(ctx context.Context, employeeCode string, unreadOnly bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id uint64, employeeCode string, at time.Time) (int64, error)
	Exists(ctx context.Context, id uint64, employeeCode string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByEmployee(ctx context.Context, employeeCode string, unreadOnly bool, limit int) ([]Notification, error) {
	q := r.db.WithContext(ctx).Where("employee_code = ?", employeeCode)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}

	var rows []Notification
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// MarkRead only touches unread rows owned by employeeCode, so a read row
// keeps its first read time and reports zero rows.
func (r *repository) MarkRead(ctx context.Context, id uint64, employeeCode string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND employee_code = ? AND read_at IS NULL", id, employeeCode).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

func (r *repository) Exists(ctx context.Context, id uint64, employeeCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND employee_code = ?", id, employeeCode).
		Count(&count).Error
	return count > 0, err
}
