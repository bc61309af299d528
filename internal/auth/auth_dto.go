package auth

// MeResponse is the caller as the dashboard sees it: the resolved
// principal plus what its role may do.
type MeResponse struct {
	UID         string   `json:"uid"`
	Email       string   `json:"email"`
	ID          uint     `json:"id"`
	EmployeeID  string   `json:"employeeId"`
	Name        string   `json:"name"`
	Department  string   `json:"department"`
	RoleID      uint     `json:"roleId"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}
