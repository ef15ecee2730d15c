package domain

import "time"

// Service a government service offered by a department (passport renewal, license, ...)
type Service struct {
	ID                int64
	DepartmentID      int64
	Code              string
	Name              string
	Description       *string
	Fee               float64
	EstimatedMinutes  int
	RequiredDocuments []string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
