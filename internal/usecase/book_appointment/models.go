package book_appointment

import "github.com/m04kA/GovAppointmentService/internal/domain"

// Request модель запроса на бронирование приёма
type Request struct {
	UserID     int64   // ID гражданина (из X-User-ID)
	ServiceID  int64   // ID услуги
	TimeSlotID int64   // ID слота
	Notes      *string // Заметки (опционально, до 500 символов)
}

// Response созданный приём со связанными сущностями
type Response struct {
	Appointment *domain.AppointmentDetails
}
