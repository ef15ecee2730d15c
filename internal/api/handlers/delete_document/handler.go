package delete_document

import (
	"errors"
	"net/http"

	"github.com/m04kA/GovAppointmentService/internal/api/handlers"
	"github.com/m04kA/GovAppointmentService/internal/api/middleware"
	"github.com/m04kA/GovAppointmentService/internal/service/documents"
)

const (
	msgInvalidDocumentID = "некорректный ID документа"
	msgNotFound          = "документ не найден"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/documents/{documentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	documentID, err := handlers.PathInt64(r, "documentId")
	if err != nil {
		h.logger.Warn("DELETE /documents/{id} - Invalid document ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDocumentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /documents/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), documentID, userID); err != nil {
		switch {
		case errors.Is(err, documents.ErrDocumentNotFound):
			h.logger.Warn("DELETE /documents/{id} - Document not found: document_id=%d", documentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, documents.ErrAccessDenied):
			h.logger.Warn("DELETE /documents/{id} - Access denied: document_id=%d, user_id=%d", documentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /documents/{id} - Failed to delete document: document_id=%d, error=%v", documentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /documents/{id} - Document deleted: document_id=%d, user_id=%d", documentID, userID)
	w.WriteHeader(http.StatusNoContent)
}
