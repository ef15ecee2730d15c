package domain

import "time"

// User a citizen account, read-only for this service
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Phone     *string
	CreatedAt time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
