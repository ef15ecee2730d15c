package domain

import "time"

// TimeSlotStatus represents bookability of a time slot
type TimeSlotStatus string

const (
	SlotAvailable TimeSlotStatus = "AVAILABLE"
	SlotFull      TimeSlotStatus = "FULL"
	SlotBlocked   TimeSlotStatus = "BLOCKED"
	SlotHoliday   TimeSlotStatus = "HOLIDAY"
)

// TimeSlot a capacity-limited window at a department.
// Invariant: 0 <= CurrentBookings <= MaxBookings.
type TimeSlot struct {
	ID              int64
	DepartmentID    int64
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	MaxBookings     int
	CurrentBookings int
	Status          TimeSlotStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasCapacity returns true if at least one seat is free
func (s *TimeSlot) HasCapacity() bool {
	return s.CurrentBookings < s.MaxBookings
}

// IsBookable returns true if the slot can accept one more booking
func (s *TimeSlot) IsBookable() bool {
	return s.Status == SlotAvailable && s.HasCapacity()
}

// Reserve занимает одно место в слоте.
// При заполнении слот переходит в FULL.
func (s *TimeSlot) Reserve() error {
	switch s.Status {
	case SlotBlocked, SlotHoliday:
		return ErrSlotNotBookable
	case SlotFull:
		return ErrSlotFullyBooked
	}
	if !s.HasCapacity() {
		return ErrSlotFullyBooked
	}

	s.CurrentBookings++
	if s.CurrentBookings >= s.MaxBookings {
		s.Status = SlotFull
	}
	return nil
}

// Release освобождает одно место после отмены приёма.
// FULL слот снова становится AVAILABLE, BLOCKED и HOLIDAY не меняются.
func (s *TimeSlot) Release() {
	if s.CurrentBookings > 0 {
		s.CurrentBookings--
	}
	if s.Status == SlotFull && s.HasCapacity() {
		s.Status = SlotAvailable
	}
}
