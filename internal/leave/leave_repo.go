package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hr-admin/internal/shared/dbutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	Status       string
	EmployeeCode string
	LeaveType    string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id uint64) (*Leave, error)
	List(ctx context.Context, filter ListFilter) ([]Leave, error)
	UpdateStatus(ctx context.Context, id uint64, d Decision, onlyPending bool) (int64, error)
	FindOverlapping(ctx context.Context, employeeCode string, start, end time.Time) ([]Leave, error)
	SumDays(ctx context.Context, employeeCode string, from, to time.Time) ([]DaysTotal, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

// FindByID locks the row when called inside a transaction.
func (r *repository) FindByID(ctx context.Context, id uint64) (*Leave, error) {
	db := r.conn(ctx)
	if r.tx != nil {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var l Leave
	if err := db.First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Scopes(
			dbutil.WhereIf("status", f.Status),
			dbutil.WhereIf("employee_code", f.EmployeeCode),
			dbutil.WhereIf("leave_type", f.LeaveType),
		).
		Order("created_at DESC, id DESC").
		Find(&leaves).Error
	return leaves, err
}

// UpdateStatus writes the decision. With onlyPending the row is matched only
// while still Pending, so a concurrent reviewer sees zero rows affected.
func (r *repository) UpdateStatus(ctx context.Context, id uint64, d Decision, onlyPending bool) (int64, error) {
	db := r.conn(ctx).Model(&Leave{}).Where("id = ?", id)
	if onlyPending {
		db = db.Where("status = ?", StatusPending)
	}

	res := db.Updates(map[string]any{
		"status":      d.Status,
		"remark":      d.Remark,
		"reviewed_by": d.ReviewedBy,
		"reviewed_at": d.ReviewedAt,
	})
	return res.RowsAffected, res.Error
}

// FindOverlapping returns the non-rejected requests of employeeCode whose
// date range intersects [start, end].
func (r *repository) FindOverlapping(ctx context.Context, employeeCode string, start, end time.Time) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Where("employee_code = ?", employeeCode).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", start, end).
		Order("start_date ASC, id ASC").
		Find(&leaves).Error
	return leaves, err
}

// SumDays totals requested days per type and status for requests starting
// within [from, to].
func (r *repository) SumDays(ctx context.Context, employeeCode string, from, to time.Time) ([]DaysTotal, error) {
	var out []DaysTotal
	err := r.conn(ctx).
		Model(&Leave{}).
		Select("leave_type, status, COALESCE(SUM(days), 0) AS days").
		Where("employee_code = ?", employeeCode).
		Where("start_date BETWEEN ? AND ?", from, to).
		Group("leave_type, status").
		Scan(&out).Error
	return out, err
}
