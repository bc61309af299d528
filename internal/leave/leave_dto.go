package leave

import "go-hr-admin/internal/shared/apperror"

// CreateLeaveRequest is also bound from the query string by GET /leaves/validate.
type CreateLeaveRequest struct {
	EmployeeID string  `json:"employeeId" form:"employeeId" binding:"required,max=50"`
	LeaveType  string  `json:"leaveType" form:"leaveType" binding:"required,oneof=Sick Casual Paid Emergency"`
	StartDate  string  `json:"startDate" form:"startDate" binding:"required,isodate"`
	EndDate    string  `json:"endDate" form:"endDate" binding:"required,isodate"`
	Days       float64 `json:"days" form:"days" binding:"required,gte=0.5"`
	Reason     string  `json:"reason" form:"reason" binding:"max=500"`
	Emergency  bool    `json:"emergency" form:"emergency"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required,oneof=Approved Rejected"`
	Remark *string `json:"remark" binding:"omitempty,max=500"`
}

type ListLeavesQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=Pending Approved Rejected"`
	EmployeeID string `form:"employeeId" binding:"omitempty,max=50"`
	LeaveType  string `form:"leaveType" binding:"omitempty,oneof=Sick Casual Paid Emergency"`
}

type LeaveResponse struct {
	ID         uint64  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	LeaveType  string  `json:"leaveType"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Days       float64 `json:"days"`
	Reason     string  `json:"reason"`
	Emergency  bool    `json:"emergency"`
	Status     string  `json:"status"`
	Remark     *string `json:"remark"`
	ReviewedBy *string `json:"reviewedBy"`
	ReviewedAt *string `json:"reviewedAt"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

type LeaveBalance struct {
	LeaveType   string  `json:"leaveType"`
	Entitlement float64 `json:"entitlement"`
	Used        float64 `json:"used"`
	Pending     float64 `json:"pending"`
	Remaining   float64 `json:"remaining"`
}

type BalanceResponse struct {
	EmployeeID string         `json:"employeeId"`
	Year       int            `json:"year"`
	Balances   []LeaveBalance `json:"balances"`
}

// ValidationResult is the dry-run answer of GET /leaves/validate.
type ValidationResult struct {
	Valid      bool                      `json:"valid"`
	Violations []apperror.FieldViolation `json:"violations"`
	Overlaps   []LeaveResponse           `json:"overlaps"`
	Remaining  *float64                  `json:"remaining"`
}
