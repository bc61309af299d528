package report

import (
	"context"
	"time"

	"go-hr-admin/internal/attendance"
	"go-hr-admin/internal/employee"
	"go-hr-admin/internal/leave"
	"go-hr-admin/internal/shared/apperror"

	"gorm.io/gorm"
)

// GroupCount is one row of a GROUP BY count.
type GroupCount struct {
	Label string `gorm:"column:label"`
	Count int64  `gorm:"column:total"`
}

type Repository interface {
	HeadcountByDepartment(ctx context.Context) ([]GroupCount, error)
	LeaveCountsByStatus(ctx context.Context, from, to time.Time) ([]GroupCount, error)
	AttendanceCountsByStatus(ctx context.Context, from, to time.Time) ([]GroupCount, error)
	Employees(ctx context.Context) ([]employee.Employee, error)
	Leaves(ctx context.Context, from, to time.Time) ([]leave.Leave, error)
	Attendance(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func day(t time.Time) string {
	return t.Format(apperror.ISODateLayout)
}

func (r *repository) HeadcountByDepartment(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Select("department AS label, COUNT(*) AS total").
		Where("status = ?", employee.StatusActive).
		Group("department").
		Order("department").
		Scan(&rows).Error
	return rows, err
}

// LeaveCountsByStatus counts requests whose period touches [from, to].
func (r *repository) LeaveCountsByStatus(ctx context.Context, from, to time.Time) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.WithContext(ctx).
		Model(&leave.Leave{}).
		Select("status AS label, COUNT(*) AS total").
		Where("start_date <= ? AND end_date >= ?", day(to), day(from)).
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) AttendanceCountsByStatus(ctx context.Context, from, to time.Time) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.WithContext(ctx).
		Model(&attendance.Attendance{}).
		Select("status AS label, COUNT(*) AS total").
		Where("attendance_date BETWEEN ? AND ?", day(from), day(to)).
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Employees(ctx context.Context) ([]employee.Employee, error) {
	var rows []employee.Employee
	err := r.db.WithContext(ctx).Order("employee_code ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) Leaves(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
	var rows []leave.Leave
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", day(to), day(from)).
		Order("start_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Attendance(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	var rows []attendance.Attendance
	err := r.db.WithContext(ctx).
		Where("attendance_date BETWEEN ? AND ?", day(from), day(to)).
		Order("attendance_date ASC, employee_code ASC").
		Find(&rows).Error
	return rows, err
}
