package events

import "time"

const LeaveRequestDecidedTopic = "leave.request.decided.v1"

type LeaveRequestDecidedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Status       string    `json:"status"`
	ReviewedBy   string    `json:"reviewed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
