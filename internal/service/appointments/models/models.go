package models

import (
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос списка приёмов.
// Без UserID и OfficerID возвращаются все приёмы (очередь сотрудников).
type ListAppointmentsRequest struct {
	UserID    *int64  // Только приёмы гражданина
	OfficerID *int64  // Только приёмы офицера
	Status    *string // Фильтр по статусу (опционально)
	Skip      uint64
	Take      uint64 // 0 - значение по умолчанию
}

// Response модели

// UserResponse гражданин
type UserResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
}

// DepartmentResponse отдел
type DepartmentResponse struct {
	ID      int64   `json:"id"`
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

// ServiceResponse услуга вместе с отделом
type ServiceResponse struct {
	ID                int64              `json:"id"`
	Code              string             `json:"code"`
	Name              string             `json:"name"`
	Fee               float64            `json:"fee"`
	EstimatedMinutes  int                `json:"estimatedMinutes"`
	RequiredDocuments []string           `json:"requiredDocuments"`
	Department        DepartmentResponse `json:"department"`
}

// TimeSlotResponse временной слот
type TimeSlotResponse struct {
	ID              int64     `json:"id"`
	DepartmentID    int64     `json:"departmentId"`
	Date            string    `json:"date"`      // "2025-03-10"
	StartTime       time.Time `json:"startTime"` // RFC 3339
	EndTime         time.Time `json:"endTime"`
	MaxBookings     int       `json:"maxBookings"`
	CurrentBookings int       `json:"currentBookings"`
	AvailableSpots  int       `json:"availableSpots"`
	Status          string    `json:"status"`
}

// OfficerResponse офицер
type OfficerResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

// AppointmentResponse приём со связанными сущностями
type AppointmentResponse struct {
	ID               int64            `json:"id"`
	BookingReference string           `json:"bookingReference"`
	QRCode           string           `json:"qrCode"`
	Status           string           `json:"status"`
	AppointmentDate  time.Time        `json:"appointmentDate"`
	Notes            *string          `json:"notes,omitempty"`
	CompletedAt      *time.Time       `json:"completedAt,omitempty"`
	User             UserResponse     `json:"user"`
	Service          ServiceResponse  `json:"service"`
	TimeSlot         TimeSlotResponse `json:"timeSlot"`
	Officer          *OfficerResponse `json:"officer,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Skip         uint64                `json:"skip"`
	Take         uint64                `json:"take"`
}

// DocumentResponse документ приёма
type DocumentResponse struct {
	ID            int64      `json:"id"`
	AppointmentID int64      `json:"appointmentId"`
	OriginalName  string     `json:"originalName"`
	FileSize      int64      `json:"fileSize"`
	MimeType      string     `json:"mimeType"`
	URL           string     `json:"url"`
	DocumentType  *string    `json:"documentType,omitempty"`
	Status        string     `json:"status"`
	ProcessedByID *int64     `json:"processedById,omitempty"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	UploadedAt    time.Time  `json:"uploadedAt"`
}

// Методы конвертации

// FromDomainDetails конвертирует приём со связями в DTO
func FromDomainDetails(d *domain.AppointmentDetails) *AppointmentResponse {
	if d == nil {
		return nil
	}

	a := d.Appointment
	resp := &AppointmentResponse{
		ID:               a.ID,
		BookingReference: a.BookingReference,
		QRCode:           a.QRCode,
		Status:           string(a.Status),
		AppointmentDate:  a.AppointmentDate,
		Notes:            a.Notes,
		CompletedAt:      a.CompletedAt,
		User: UserResponse{
			ID:        d.User.ID,
			FirstName: d.User.FirstName,
			LastName:  d.User.LastName,
			Email:     d.User.Email,
			Phone:     d.User.Phone,
		},
		Service: ServiceResponse{
			ID:                d.Service.ID,
			Code:              d.Service.Code,
			Name:              d.Service.Name,
			Fee:               d.Service.Fee,
			EstimatedMinutes:  d.Service.EstimatedMinutes,
			RequiredDocuments: nonNil(d.Service.RequiredDocuments),
			Department: DepartmentResponse{
				ID:      d.Department.ID,
				Code:    d.Department.Code,
				Name:    d.Department.Name,
				Address: d.Department.Address,
			},
		},
		TimeSlot:  *FromDomainTimeSlot(&d.TimeSlot),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if d.Officer != nil {
		resp.Officer = &OfficerResponse{
			ID:         d.Officer.ID,
			EmployeeID: d.Officer.EmployeeID,
			FirstName:  d.Officer.FirstName,
			LastName:   d.Officer.LastName,
		}
	}

	return resp
}

// FromDomainDetailsList конвертирует список приёмов в DTO
func FromDomainDetailsList(list []*domain.AppointmentDetails, skip, take uint64) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Skip:         skip,
		Take:         take,
	}
	for _, d := range list {
		if item := FromDomainDetails(d); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}
	return resp
}

// FromDomainTimeSlot конвертирует слот в DTO
func FromDomainTimeSlot(s *domain.TimeSlot) *TimeSlotResponse {
	if s == nil {
		return nil
	}
	available := s.MaxBookings - s.CurrentBookings
	if available < 0 {
		available = 0
	}
	return &TimeSlotResponse{
		ID:              s.ID,
		DepartmentID:    s.DepartmentID,
		Date:            s.StartTime.Format(domain.DateFormat),
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		MaxBookings:     s.MaxBookings,
		CurrentBookings: s.CurrentBookings,
		AvailableSpots:  available,
		Status:          string(s.Status),
	}
}

// FromDomainTimeSlots конвертирует список слотов в DTO
func FromDomainTimeSlots(slots []*domain.TimeSlot) []TimeSlotResponse {
	out := make([]TimeSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, *FromDomainTimeSlot(s))
	}
	return out
}

// FromDomainDocument конвертирует документ в DTO
func FromDomainDocument(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:            d.ID,
		AppointmentID: d.AppointmentID,
		OriginalName:  d.OriginalName,
		FileSize:      d.FileSize,
		MimeType:      d.MimeType,
		URL:           d.URL,
		DocumentType:  d.DocumentType,
		Status:        string(d.Status),
		ProcessedByID: d.ProcessedByID,
		ProcessedAt:   d.ProcessedAt,
		Notes:         d.Notes,
		UploadedAt:    d.UploadedAt,
	}
}

// FromDomainDocuments конвертирует список документов в DTO
func FromDomainDocuments(docs []*domain.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDomainDocument(d))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
