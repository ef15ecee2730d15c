package get_document

import (
	"errors"
	"net/http"

	"github.com/m04kA/GovAppointmentService/internal/api/handlers"
	"github.com/m04kA/GovAppointmentService/internal/service/documents"
)

const (
	msgInvalidDocumentID = "некорректный ID документа"
	msgNotFound          = "документ не найден"
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

// Handle GET /api/v1/documents/{documentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	documentID, err := handlers.PathInt64(r, "documentId")
	if err != nil {
		h.logger.Warn("GET /documents/{id} - Invalid document ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDocumentID)
		return
	}

	doc, err := h.service.Get(r.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrDocumentNotFound):
			h.logger.Warn("GET /documents/{id} - Document not found: document_id=%d", documentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /documents/{id} - Failed to get document: document_id=%d, error=%v", documentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /documents/{id} - Document retrieved: document_id=%d", documentID)
	handlers.RespondJSON(w, http.StatusOK, doc)
}
