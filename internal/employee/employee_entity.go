package employee

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Employee struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	EmployeeCode  string    `gorm:"column:employee_code;type:varchar(50);not null;uniqueIndex:uq_employees_code"`
	FirebaseUID   *string   `gorm:"column:firebase_uid;type:varchar(128);uniqueIndex:uq_employees_firebase_uid"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Email         string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_email"`
	Department    string    `gorm:"type:varchar(100);not null;index:idx_employees_department"`
	RoleID        uint      `gorm:"not null;default:4"`
	Phone         string    `gorm:"type:varchar(30)"`
	ContactNumber string    `gorm:"type:varchar(30)"`
	Address       string    `gorm:"type:varchar(255)"`
	JoinedOn      time.Time `gorm:"type:date;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Active'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Employee) TableName() string {
	return "employees"
}
