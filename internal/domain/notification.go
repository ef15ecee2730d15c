package domain

import "time"

type NotificationChannel string

const (
	ChannelInApp NotificationChannel = "IN_APP"
	ChannelEmail NotificationChannel = "EMAIL"
	ChannelSMS   NotificationChannel = "SMS"
)

type NotificationType string

const (
	NotificationAppointmentConfirmation NotificationType = "APPOINTMENT_CONFIRMATION"
	NotificationStatusUpdate            NotificationType = "STATUS_UPDATE"
	NotificationSystemAlert             NotificationType = "SYSTEM_ALERT"
)

// Notification a message to a user; delivery is best-effort
type Notification struct {
	ID            int64
	UserID        int64
	AppointmentID *int64
	Title         string
	Message       string
	Channel       NotificationChannel
	Type          NotificationType
	IsRead        bool
	CreatedAt     time.Time
}
