package events

import "time"

const PunchRecordedTopic = "timecontrol.punch.recorded.v1"

type PunchRecordedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PunchID    string    `json:"punch_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}
