package create_appointment

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/GovAppointmentService/internal/usecase/create_appointment"
)

// AppointmentData JSON из поля формы "data"
type AppointmentData struct {
	ServiceID     int64    `json:"serviceId"`
	TimeSlotID    int64    `json:"timeSlotId"`
	OfficerID     *int64   `json:"officerId,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	DocumentTypes []string `json:"documentTypes,omitempty"` // по порядку файлов
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Documents   []models.DocumentResponse   `json:"documents"`
}

// ToUseCaseRequest собирает запрос use case из данных формы и файлов
func (d *AppointmentData) ToUseCaseRequest(userID int64, files []*multipart.FileHeader) (*createAppointment.Request, error) {
	uploads := make([]domain.UploadFile, 0, len(files))
	for i, fh := range files {
		f, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		if i < len(d.DocumentTypes) && d.DocumentTypes[i] != "" {
			docType := d.DocumentTypes[i]
			f.DocumentType = &docType
		}
		uploads = append(uploads, f)
	}

	return &createAppointment.Request{
		UserID:     userID,
		ServiceID:  d.ServiceID,
		TimeSlotID: d.TimeSlotID,
		OfficerID:  d.OfficerID,
		Notes:      d.Notes,
		Files:      uploads,
	}, nil
}

// readFile читает файл формы; тип берётся из заголовка части, иначе определяется по содержимому
func readFile(fh *multipart.FileHeader) (domain.UploadFile, error) {
	src, err := fh.Open()
	if err != nil {
		return domain.UploadFile{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return domain.UploadFile{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	return domain.UploadFile{
		Name:     fh.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		Appointment: models.FromDomainDetails(resp.Appointment),
		Documents:   models.FromDomainDocuments(resp.Documents),
	}
}
