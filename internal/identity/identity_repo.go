package identity

import (
	"context"

	"gorm.io/gorm"
)

// PrincipalRow is the employees/roles projection used for resolving a uid.
type PrincipalRow struct {
	ID           uint   `gorm:"column:id"`
	FirebaseUID  string `gorm:"column:firebase_uid"`
	EmployeeCode string `gorm:"column:employee_code"`
	Name         string `gorm:"column:name"`
	Email        string `gorm:"column:email"`
	Department   string `gorm:"column:department"`
	RoleID       uint   `gorm:"column:role_id"`
	Role         string `gorm:"column:role"`
}

//go:generate mockgen -source=identity_repo.go -destination=mock/identity_repo_mock.go -package=mock
type Repository interface {
	FindByFirebaseUID(ctx context.Context, uid string) (*PrincipalRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByFirebaseUID(ctx context.Context, uid string) (*PrincipalRow, error) {
	var row PrincipalRow
	err := r.db.WithContext(ctx).
		Table("employees e").
		Select(`e.id,
			e.firebase_uid,
			e.employee_code,
			e.name,
			e.email,
			e.department,
			r.id AS role_id,
			r.name AS role`).
		Joins("JOIN roles r ON r.id = e.role_id").
		Where("e.firebase_uid = ?", uid).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
