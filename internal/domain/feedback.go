package domain

import "time"

// Feedback a citizen's rating of a completed appointment, one per appointment and user
type Feedback struct {
	ID            int64
	AppointmentID int64
	UserID        int64
	Rating        int
	Comment       *string
	IsAnonymous   bool
	CreatedAt     time.Time
}
