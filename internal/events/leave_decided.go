package events

import "time"

const (
	LeaveDecidedTopic = "hr.leave.decided.v1"
	LeaveDecidedType  = "leave.decided"
)

// LeaveDecidedEvent is emitted when a reviewer approves or rejects a leave
// request. EmployeeID is the requester's code.
type LeaveDecidedEvent struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	RequestID  string    `json:"requestId,omitempty"`
	LeaveID    uint64    `json:"leaveId"`
	EmployeeID string    `json:"employeeId"`
	LeaveType  string    `json:"leaveType"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Status     string    `json:"status"`
	Remark     string    `json:"remark,omitempty"`
	ReviewedBy string    `json:"reviewedBy,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
