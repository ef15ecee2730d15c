package domain

import "time"

// Officer a department employee who processes appointments
type Officer struct {
	ID           int64
	DepartmentID int64
	EmployeeID   string
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (o *Officer) FullName() string {
	return o.FirstName + " " + o.LastName
}
