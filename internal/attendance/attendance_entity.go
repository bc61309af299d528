package attendance

import "time"

const (
	StatusPresent = "Present"
	StatusLate    = "Late"
	StatusAbsent  = "Absent"
)

type Attendance struct {
	ID             uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeCode   string     `gorm:"column:employee_code;type:varchar(50);not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index"`
	ClockIn        time.Time  `gorm:"column:clock_in;not null"`
	ClockOut       *time.Time `gorm:"column:clock_out"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:'Present'"`
	Notes          string     `gorm:"column:notes;type:varchar(255);not null;default:''"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}
