package attendance

type ClockInRequest struct {
	Notes string `json:"notes" binding:"max=255"`
}

type ClockOutRequest struct {
	Notes string `json:"notes" binding:"max=255"`
}

// ListAttendanceQuery selects a date range; both ends default to the last
// 30 days ending today.
type ListAttendanceQuery struct {
	From       string `form:"from" binding:"omitempty,isodate"`
	To         string `form:"to" binding:"omitempty,isodate"`
	EmployeeID string `form:"employeeId" binding:"omitempty,max=50"`
}

type AttendanceResponse struct {
	ID             uint64  `json:"id"`
	EmployeeID     string  `json:"employeeId"`
	AttendanceDate string  `json:"attendanceDate"`
	ClockIn        string  `json:"clockIn"`
	ClockOut       *string `json:"clockOut"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes"`
}
