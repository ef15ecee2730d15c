package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentPending    AppointmentStatus = "PENDING"
	AppointmentConfirmed  AppointmentStatus = "CONFIRMED"
	AppointmentInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentCompleted  AppointmentStatus = "COMPLETED"
	AppointmentCancelled  AppointmentStatus = "CANCELLED"
	AppointmentNoShow     AppointmentStatus = "NO_SHOW"
)

// Appointment represents a citizen's booking of a slot for a service
type Appointment struct {
	ID               int64
	BookingReference string
	QRCode           string
	UserID           int64
	ServiceID        int64
	TimeSlotID       int64
	OfficerID        *int64
	Status           AppointmentStatus
	AppointmentDate  time.Time
	Notes            *string
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AppointmentDetails appointment joined with everything a client needs to show it
type AppointmentDetails struct {
	Appointment Appointment
	User        User
	Service     Service
	Department  Department
	TimeSlot    TimeSlot
	Officer     *Officer
}

// CountsTowardLoad returns true if the appointment occupies the officer's day
func (a *Appointment) CountsTowardLoad() bool {
	return a.Status != AppointmentCancelled
}

// BlocksOfficer returns true if the appointment still occupies the officer's time
func (a *Appointment) BlocksOfficer() bool {
	return a.Status != AppointmentCancelled && a.Status != AppointmentCompleted
}

// AppointmentsFilter фильтр списка приёмов; nil-поля не ограничивают выборку
type AppointmentsFilter struct {
	UserID    *int64
	OfficerID *int64
	Status    *AppointmentStatus
	Skip      uint64
	Take      uint64
}

// NewBookingReference короткий человекочитаемый номер брони: "A" + 9 символов
func NewBookingReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "A" + strings.ToUpper(raw[:9])
}

// NewQRToken токен для QR-кода на стойке регистрации
func NewQRToken() string {
	return uuid.NewString()
}
