package messaging

// Message запрос на отправку email/SMS через шлюз
type Message struct {
	UserID        int64  `json:"user_id"`
	AppointmentID *int64 `json:"appointment_id,omitempty"`
	Channel       string `json:"channel"` // EMAIL, SMS
	Subject       string `json:"subject"`
	Body          string `json:"body"`
}

// SendResponse ответ шлюза
type SendResponse struct {
	MessageID string `json:"message_id"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
