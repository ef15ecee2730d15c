package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength    = 500
	MaxCommentLength  = 1000
	MinRating         = 1
	MaxRating         = 5
	MaxGenerationDays = 62
)

// Listing defaults
const (
	DefaultListTake = 50
	MaxListTake     = 100
)

// OfficerConflictWindow половина окна, в котором у офицера не должно быть других приёмов
const OfficerConflictWindow = 30 * time.Minute
