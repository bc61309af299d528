package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/dbutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	From         time.Time
	To           time.Time
	EmployeeCode string
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbutil.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*Attendance, error) {
	db := r.conn(ctx)
	if r.tx != nil {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var a Attendance
	err := db.
		Where("employee_code = ?", employeeCode).
		Where("attendance_date = ?", date.Format(apperror.ISODateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("attendance_date BETWEEN ? AND ?", f.From.Format(apperror.ISODateLayout), f.To.Format(apperror.ISODateLayout)).
		Scopes(dbutil.WhereIf("employee_code", f.EmployeeCode)).
		Order("attendance_date DESC, clock_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Save(a).Error
}
