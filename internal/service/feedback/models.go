package feedback

import "time"

// CreateRequest отзыв гражданина о приёме
type CreateRequest struct {
	AppointmentID int64   `json:"-"`
	UserID        int64   `json:"-"`
	Rating        int     `json:"rating"`
	Comment       *string `json:"comment,omitempty"`
	IsAnonymous   bool    `json:"isAnonymous"`
}

// Response сохранённый отзыв
type Response struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointmentId"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	IsAnonymous   bool      `json:"isAnonymous"`
	CreatedAt     time.Time `json:"createdAt"`
}
