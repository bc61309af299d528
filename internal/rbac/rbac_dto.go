package rbac

type RoleResponse struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type CheckRequest struct {
	Resource string `form:"resource" binding:"required"`
	Action   string `form:"action" binding:"required"`
}

type CheckResponse struct {
	Role         string   `json:"role"`
	Resource     string   `json:"resource"`
	Action       string   `json:"action"`
	Allowed      bool     `json:"allowed"`
	AllowedRoles []string `json:"allowedRoles"`
}
