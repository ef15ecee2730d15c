package generate_time_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/GovAppointmentService/internal/api/handlers"
	generateTimeSlots "github.com/m04kA/GovAppointmentService/internal/usecase/generate_time_slots"
)

const (
	msgInvalidDepartmentID = "некорректный ID отдела"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректные параметры генерации: days от 1 до 62, maxBookings больше 0"
	msgDepartmentNotFound  = "отдел не найден"
	msgInvalidWorkingHours = "некорректное расписание работы отдела"
)

type Handler struct {
	useCase GenerateTimeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateTimeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/departments/{departmentId}/time-slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	departmentID, err := handlers.PathInt64(r, "departmentId")
	if err != nil {
		h.logger.Warn("POST /departments/{id}/time-slots/generate - Invalid department ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDepartmentID)
		return
	}

	var req GenerateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /departments/{id}/time-slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(departmentID)
	if err != nil {
		h.logger.Warn("POST /departments/{id}/time-slots/generate - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateTimeSlots.ErrInvalidInput):
			h.logger.Warn("POST /departments/{id}/time-slots/generate - Invalid input: department_id=%d, error=%v", departmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, generateTimeSlots.ErrDepartmentNotFound):
			h.logger.Warn("POST /departments/{id}/time-slots/generate - Department not found: department_id=%d", departmentID)
			handlers.RespondNotFound(w, msgDepartmentNotFound)

		case errors.Is(err, generateTimeSlots.ErrInvalidWorkingHours):
			h.logger.Error("POST /departments/{id}/time-slots/generate - Invalid working hours: department_id=%d, error=%v", departmentID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidWorkingHours)

		default:
			h.logger.Error("POST /departments/{id}/time-slots/generate - Failed to generate slots: department_id=%d, error=%v", departmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /departments/{id}/time-slots/generate - Slots generated: department_id=%d, created=%d, skipped=%d",
		departmentID, len(result.Created), result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
