package events

import "time"

const LeaveRequestSubmittedTopic = "leave.request.submitted.v1"

type LeaveRequestSubmittedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Days         int       `json:"days"`
	OccurredAt   time.Time `json:"occurred_at"`
}
