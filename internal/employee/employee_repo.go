package employee

import (
	"context"
	"database/sql"

	"go-hr-admin/internal/shared/dbutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	Limit      int
	Offset     int
	Department string
	Q          string
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	ListCodes(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbutil.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var e Employee
	if err := r.conn(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Employee, error) {
	var e Employee
	if err := r.conn(ctx).First(&e, "employee_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func filterScope(f ListFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(dbutil.WhereIf("department", f.Department))
		if f.Q != "" {
			like := "%" + f.Q + "%"
			db = db.Where("(name LIKE ? OR email LIKE ?)", like, like)
		}
		return db
	}
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Employee, int64, error) {
	var total int64
	if err := r.conn(ctx).Model(&Employee{}).Scopes(filterScope(f)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Employee
	err := r.conn(ctx).
		Scopes(filterScope(f), dbutil.Paginate(f.Limit, f.Offset)).
		Order("id ASC").
		Find(&out).Error
	return out, total, err
}

// ListCodes returns every employee code. Inside a transaction the rows are
// locked so concurrent creates cannot pick the same next code.
func (r *repository) ListCodes(ctx context.Context) ([]string, error) {
	db := r.conn(ctx).Model(&Employee{})
	if r.tx != nil {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var codes []string
	err := db.Pluck("employee_code", &codes).Error
	return codes, err
}
