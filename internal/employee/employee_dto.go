package employee

type CreateEmployeeRequest struct {
	EmployeeID    string `json:"employeeId" binding:"omitempty,max=50"`
	FirebaseUID   string `json:"firebaseUid" binding:"omitempty,max=128"`
	Name          string `json:"name" binding:"required,max=100"`
	Email         string `json:"email" binding:"required,email,max=150"`
	Department    string `json:"department" binding:"required,max=100"`
	RoleID        uint   `json:"roleId" binding:"omitempty,min=1,max=4"`
	Phone         string `json:"phone" binding:"omitempty,max=30"`
	ContactNumber string `json:"contactNumber" binding:"omitempty,max=30"`
	Address       string `json:"address" binding:"omitempty,max=255"`
	JoinedOn      string `json:"joinedOn" binding:"required,isodate"`
	Status        string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UpdateEmployeeRequest overwrites every field; the employee code is fixed.
type UpdateEmployeeRequest struct {
	FirebaseUID   string `json:"firebaseUid" binding:"omitempty,max=128"`
	Name          string `json:"name" binding:"required,max=100"`
	Email         string `json:"email" binding:"required,email,max=150"`
	Department    string `json:"department" binding:"required,max=100"`
	RoleID        uint   `json:"roleId" binding:"omitempty,min=1,max=4"`
	Phone         string `json:"phone" binding:"omitempty,max=30"`
	ContactNumber string `json:"contactNumber" binding:"omitempty,max=30"`
	Address       string `json:"address" binding:"omitempty,max=255"`
	JoinedOn      string `json:"joinedOn" binding:"required,isodate"`
	Status        string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type ListEmployeesQuery struct {
	Limit      int    `form:"limit" binding:"omitempty,min=0"`
	Offset     int    `form:"offset" binding:"omitempty,min=0"`
	Department string `form:"department" binding:"omitempty,max=100"`
	Q          string `form:"q" binding:"omitempty,max=100"`
}

type EmployeeResponse struct {
	ID            uint   `json:"id"`
	EmployeeID    string `json:"employeeId"`
	FirebaseUID   string `json:"firebaseUid,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	RoleID        uint   `json:"roleId"`
	Role          string `json:"role"`
	Phone         string `json:"phone"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	JoinedOn      string `json:"joinedOn"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// ListResult is one page of the directory plus the unpaged total.
type ListResult struct {
	Items  []EmployeeResponse `json:"items"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
