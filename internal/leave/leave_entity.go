package leave

import "time"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	TypeSick      = "Sick"
	TypeCasual    = "Casual"
	TypePaid      = "Paid"
	TypeEmergency = "Emergency"
)

// LeaveTypes lists the accepted leave types in display order.
var LeaveTypes = []string{TypeSick, TypeCasual, TypePaid, TypeEmergency}

type Leave struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement"`
	EmployeeCode string     `gorm:"column:employee_code;type:varchar(50);not null;index:idx_leave_requests_employee"`
	LeaveType    string     `gorm:"type:varchar(20);not null"`
	StartDate    time.Time  `gorm:"type:date;not null"`
	EndDate      time.Time  `gorm:"type:date;not null"`
	Days         float64    `gorm:"type:decimal(5,1);not null"`
	Reason       string     `gorm:"type:varchar(500);not null;default:''"`
	Emergency    bool       `gorm:"not null;default:false"`
	Status       string     `gorm:"type:varchar(20);not null;default:'Pending';index:idx_leave_requests_status"`
	Remark       *string    `gorm:"type:varchar(500)"`
	ReviewedBy   *string    `gorm:"column:reviewed_by;type:varchar(50)"`
	ReviewedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Leave) TableName() string {
	return "leave_requests"
}

// Decision is the reviewer's verdict written by UpdateStatus.
type Decision struct {
	Status     string
	Remark     *string
	ReviewedBy *string
	ReviewedAt time.Time
}

// DaysTotal is the sum of requested days for one leave type and status.
type DaysTotal struct {
	LeaveType string
	Status    string
	Days      float64
}
