package events

import "time"

const (
	EmployeeCreatedTopic = "hr.employee.lifecycle.v1"
	EmployeeCreatedType  = "employee.created"
)

type EmployeeCreatedEvent struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	RequestID  string    `json:"requestId,omitempty"`
	EmployeeID string    `json:"employeeId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	RoleID     uint      `json:"roleId"`
	OccurredAt time.Time `json:"occurredAt"`
}
