package upload_document

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/GovAppointmentService/internal/api/handlers"
	"github.com/m04kA/GovAppointmentService/internal/api/middleware"
	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/service/documents"
)

const (
	msgInvalidAppointmentID = "некорректный ID приёма"
	msgInvalidForm          = "ожидается multipart/form-data с полем file"
	msgInvalidDocument      = "файл пустой, слишком большой, недопустимого типа или превышен лимит документов"
	msgNotFound             = "приём не найден"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgUploadFailure        = "не удалось загрузить документ"

	formMemory = 32 << 20
)

type Handler struct {
	service      DocumentService
	maxBodyBytes int64
	logger       Logger
}

func NewHandler(service DocumentService, maxBodyBytes int64, logger Logger) *Handler {
	return &Handler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/documents
// multipart/form-data: file, documentType (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/documents - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/documents - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	if err := r.ParseMultipartForm(formMemory); err != nil {
		h.logger.Warn("POST /appointments/{id}/documents - Invalid multipart form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer r.MultipartForm.RemoveAll()

	src, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/documents - Missing file: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/documents - Failed to read file: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	file := domain.UploadFile{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}
	if file.MimeType == "" || file.MimeType == "application/octet-stream" {
		file.MimeType = http.DetectContentType(data)
	}
	if docType := r.FormValue("documentType"); docType != "" {
		file.DocumentType = &docType
	}

	doc, err := h.service.Upload(r.Context(), appointmentID, userID, file)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrInvalidDocument):
			h.logger.Warn("POST /appointments/{id}/documents - Invalid document: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidDocument)

		case errors.Is(err, documents.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/documents - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, documents.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/documents - Access denied: appointment_id=%d, user_id=%d", appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, documents.ErrUploadFailure):
			h.logger.Error("POST /appointments/{id}/documents - Upload failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgUploadFailure)

		default:
			h.logger.Error("POST /appointments/{id}/documents - Failed to upload document: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/documents - Document uploaded: appointment_id=%d, document_id=%d", appointmentID, doc.ID)
	handlers.RespondJSON(w, http.StatusCreated, doc)
}
