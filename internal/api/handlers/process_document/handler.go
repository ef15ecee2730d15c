package process_document

import (
	"errors"
	"net/http"

	"github.com/m04kA/GovAppointmentService/internal/api/handlers"
	"github.com/m04kA/GovAppointmentService/internal/service/documents"
)

const (
	msgInvalidDocumentID  = "некорректный ID документа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOfficerID   = "не указан ID сотрудника"
	msgInvalidDecision    = "решение должно быть APPROVED или REJECTED"
	msgDocumentNotFound   = "документ не найден"
	msgOfficerNotFound    = "сотрудник не найден или неактивен"
)

type Handler struct {
	service DocumentService
	logger  Logger
}

func NewHandler(service DocumentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/documents/{documentId}/process
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	documentID, err := handlers.PathInt64(r, "documentId")
	if err != nil {
		h.logger.Warn("POST /documents/{id}/process - Invalid document ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDocumentID)
		return
	}

	var req ProcessDocumentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /documents/{id}/process - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.OfficerID <= 0 {
		h.logger.Warn("POST /documents/{id}/process - Missing officer ID: document_id=%d", documentID)
		handlers.RespondBadRequest(w, msgInvalidOfficerID)
		return
	}

	doc, err := h.service.Process(r.Context(), documentID, req.OfficerID, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrInvalidDecision):
			h.logger.Warn("POST /documents/{id}/process - Invalid decision: document_id=%d, status=%s", documentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidDecision)

		case errors.Is(err, documents.ErrDocumentNotFound):
			h.logger.Warn("POST /documents/{id}/process - Document not found: document_id=%d", documentID)
			handlers.RespondNotFound(w, msgDocumentNotFound)

		case errors.Is(err, documents.ErrOfficerNotFound):
			h.logger.Warn("POST /documents/{id}/process - Officer not found: document_id=%d, officer_id=%d", documentID, req.OfficerID)
			handlers.RespondNotFound(w, msgOfficerNotFound)

		default:
			h.logger.Error("POST /documents/{id}/process - Failed to process document: document_id=%d, error=%v", documentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /documents/{id}/process - Document processed: document_id=%d, status=%s, officer_id=%d", documentID, doc.Status, req.OfficerID)
	handlers.RespondJSON(w, http.StatusOK, doc)
}
