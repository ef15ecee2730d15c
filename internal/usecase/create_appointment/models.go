package create_appointment

import "github.com/m04kA/GovAppointmentService/internal/domain"

// Request модель запроса на создание приёма с документами
type Request struct {
	UserID     int64               // ID гражданина (из X-User-ID)
	ServiceID  int64               // ID услуги
	TimeSlotID int64               // ID слота
	OfficerID  *int64              // Офицер (опционально, иначе подбирается автоматически)
	Notes      *string             // Заметки (опционально)
	Files      []domain.UploadFile // Документы, можно без них
}

// Response созданный приём и загруженные документы
type Response struct {
	Appointment *domain.AppointmentDetails
	Documents   []*domain.Document
}
