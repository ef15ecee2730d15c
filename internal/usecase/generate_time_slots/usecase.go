package generate_time_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	departmentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/department"
)

// UseCase use case генерации слотов по расписанию отдела
type UseCase struct {
	departmentRepo DepartmentRepository
	slotRepo       TimeSlotRepository
	cfg            Config
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(departmentRepo DepartmentRepository, slotRepo TimeSlotRepository, cfg Config, logger Logger) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &UseCase{
		departmentRepo: departmentRepo,
		slotRepo:       slotRepo,
		cfg:            cfg,
		logger:         logger,
	}
}

// Execute создаёт слоты на Days дней начиная с From.
// Повторный запуск на тот же период ничего не дублирует.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateTimeSlots: validation failed: %v", err)
		return nil, err
	}

	maxBookings := uc.cfg.DefaultMaxBookings
	if req.MaxBookings != nil {
		maxBookings = *req.MaxBookings
	}

	uc.logger.Info("GenerateTimeSlots: department=%d, from=%s, days=%d, maxBookings=%d",
		req.DepartmentID, req.From.Format(domain.DateFormat), req.Days, maxBookings)

	// 2. Расписание отдела
	department, err := uc.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, departmentRepo.ErrDepartmentNotFound) {
			uc.logger.Warn("GenerateTimeSlots: department id=%d not found", req.DepartmentID)
			return nil, ErrDepartmentNotFound
		}
		if errors.Is(err, departmentRepo.ErrInvalidWorkingHours) {
			uc.logger.Warn("GenerateTimeSlots: department id=%d has malformed working hours: %v", req.DepartmentID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
		}
		uc.logger.Error("GenerateTimeSlots: failed to get department id=%d: %v", req.DepartmentID, err)
		return nil, fmt.Errorf("%w: failed to get department: %v", ErrInternal, err)
	}

	// 3. Нарезаем дни
	y, m, d := req.From.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, uc.cfg.Location)

	var planned []*domain.TimeSlot
	for i := 0; i < req.Days; i++ {
		date := first.AddDate(0, 0, i)
		slots, err := daySlots(department.ID, date, department.WorkingHours.ForDay(date), uc.cfg.GranularityMinutes, maxBookings)
		if err != nil {
			uc.logger.Warn("GenerateTimeSlots: department id=%d, %s: %v", department.ID, date.Format(domain.DateFormat), err)
			return nil, err
		}
		planned = append(planned, slots...)
	}

	// 4. Сохраняем, существующие слоты пропускаются
	created, err := uc.slotRepo.CreateBatch(ctx, planned)
	if err != nil {
		uc.logger.Error("GenerateTimeSlots: failed to save %d slots for department=%d: %v", len(planned), department.ID, err)
		return nil, fmt.Errorf("%w: failed to save slots: %v", ErrInternal, err)
	}

	if created == nil {
		created = []*domain.TimeSlot{}
	}

	uc.logger.Info("GenerateTimeSlots: department=%d created=%d skipped=%d",
		department.ID, len(created), len(planned)-len(created))

	return &Response{
		DepartmentID: department.ID,
		Created:      created,
		Skipped:      len(planned) - len(created),
	}, nil
}
