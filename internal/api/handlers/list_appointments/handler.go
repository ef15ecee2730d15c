package list_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/GovAppointmentService/internal/api/handlers"
	"github.com/m04kA/GovAppointmentService/internal/api/middleware"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidSkip      = "некорректный параметр skip"
	msgInvalidTake      = "некорректный параметр take"
	msgInvalidOfficerID = "некорректный параметр officerId"
	msgInvalidFilter    = "некорректный фильтр: неизвестный статус или take больше 100"
)

// Handler список приёмов.
// В режиме own отдаёт только приёмы вызывающего гражданина,
// иначе все приёмы (для сотрудников) с фильтром по офицеру.
type Handler struct {
	service AppointmentService
	own     bool
	route   string
	logger  Logger
}

// NewHandler GET /api/v1/appointments: все приёмы, опционально officerId
func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		route:   "GET /appointments",
		logger:  logger,
	}
}

// NewOwnHandler GET /api/v1/users/me/appointments: приёмы вызывающего гражданина
func NewOwnHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		own:     true,
		route:   "GET /users/me/appointments",
		logger:  logger,
	}
}

// Handle Query params: status, skip, take, officerId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", h.route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	req := &models.ListAppointmentsRequest{}
	if h.own {
		req.UserID = &userID
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if officerStr := query.Get("officerId"); officerStr != "" {
		officerID, err := strconv.ParseInt(officerStr, 10, 64)
		if err != nil || officerID <= 0 {
			h.logger.Warn("%s - Invalid officerId: %s", h.route, officerStr)
			handlers.RespondBadRequest(w, msgInvalidOfficerID)
			return
		}
		req.OfficerID = &officerID
	}

	if skipStr := query.Get("skip"); skipStr != "" {
		skip, err := strconv.ParseUint(skipStr, 10, 64)
		if err != nil {
			h.logger.Warn("%s - Invalid skip: %v", h.route, err)
			handlers.RespondBadRequest(w, msgInvalidSkip)
			return
		}
		req.Skip = skip
	}

	if takeStr := query.Get("take"); takeStr != "" {
		take, err := strconv.ParseUint(takeStr, 10, 64)
		if err != nil {
			h.logger.Warn("%s - Invalid take: %v", h.route, err)
			handlers.RespondBadRequest(w, msgInvalidTake)
			return
		}
		req.Take = take
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("%s - Invalid filter: user_id=%d, error=%v", h.route, userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("%s - Failed to list appointments: user_id=%d, error=%v", h.route, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Appointments retrieved: user_id=%d, count=%d", h.route, userID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
