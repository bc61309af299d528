package domain

// Claim is what the identity provider vouches for after token verification.
type Claim struct {
	UID   string
	Email string
}

// Principal is the authenticated caller of a single request: the verified
// claim joined with the local employee row and its role.
type Principal struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	EmployeeID   uint   `json:"id"`
	EmployeeCode string `json:"employeeId"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	RoleID       uint   `json:"roleId"`
	Role         string `json:"role"`
}

// HasRole reports whether the principal's role is in roles.
func (p *Principal) HasRole(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
