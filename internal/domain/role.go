package domain

// Role names as stored in the roles table.
const (
	RoleAdmin    = "Admin"
	RoleHR       = "HR"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// Seeded role ids.
const (
	RoleIDAdmin    uint = 1
	RoleIDHR       uint = 2
	RoleIDManager  uint = 3
	RoleIDEmployee uint = 4
)

// Roles lists every role in id order.
var Roles = []Role{
	{ID: RoleIDAdmin, Name: RoleAdmin},
	{ID: RoleIDHR, Name: RoleHR},
	{ID: RoleIDManager, Name: RoleManager},
	{ID: RoleIDEmployee, Name: RoleEmployee},
}

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// IsReviewer reports whether the role may see and decide other people's leave.
func IsReviewer(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleManager:
		return true
	default:
		return false
	}
}

// RoleName returns the role name for a seeded role id, or "" if unknown.
func RoleName(id uint) string {
	for _, r := range Roles {
		if r.ID == id {
			return r.Name
		}
	}
	return ""
}
