package notifier

import "time"

// Event сообщение о событии приёма в Kafka
type Event struct {
	EventID       string    `json:"eventId"`
	EventType     string    `json:"eventType"`
	UserID        int64     `json:"userId"`
	AppointmentID *int64    `json:"appointmentId,omitempty"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Channel       string    `json:"channel"`
	OccurredAt    time.Time `json:"occurredAt"`
}
