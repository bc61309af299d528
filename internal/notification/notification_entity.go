package notification

import "time"

const KindLeaveDecided = "leave.decided"

type Notification struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	EventID      string     `gorm:"column:event_id;type:varchar(36);not null;uniqueIndex:uq_notifications_event"`
	EmployeeCode string     `gorm:"column:employee_code;type:varchar(50);not null;index"`
	Kind         string     `gorm:"column:kind;type:varchar(50);not null"`
	Message      string     `gorm:"column:message;type:varchar(500);not null"`
	ReadAt       *time.Time `gorm:"column:read_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
