package events

import "time"

const BookingCreatedTopic = "travel.booking.lifecycle.v1"

type BookingCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	BookingID    string    `json:"booking_id"`
	EmployeeCode string    `json:"employee_code"`
	ResourceType string    `json:"resource_type"`
	Destination  string    `json:"destination"`
	OccurredAt   time.Time `json:"occurred_at"`
}
