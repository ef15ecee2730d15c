package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// Resolver подбирает офицера для приёма
type Resolver struct {
	officerRepo     OfficerRepository
	appointmentRepo AppointmentRepository
	loc             *time.Location
	logger          Logger
}

// NewResolver создает новый экземпляр сервиса назначения.
// loc задаёт часовой пояс отделов: по нему считается календарный день нагрузки.
func NewResolver(officerRepo OfficerRepository, appointmentRepo AppointmentRepository, loc *time.Location, logger Logger) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{
		officerRepo:     officerRepo,
		appointmentRepo: appointmentRepo,
		loc:             loc,
		logger:          logger,
	}
}

// Resolve подбирает офицера отдела на время target.
// excludeOfficerID исключает офицера из выбора (nil - без исключений).
// Вызывается внутри транзакции бронирования: строки офицеров блокируются.
func (r *Resolver) Resolve(ctx context.Context, departmentID int64, target time.Time, excludeOfficerID *int64) (*domain.Officer, error) {
	target = target.In(r.loc)

	officers, err := r.officerRepo.ListActiveByDepartment(ctx, departmentID, excludeOfficerID)
	if err != nil {
		r.logger.Error("Resolve: failed to list officers for department=%d: %v", departmentID, err)
		return nil, fmt.Errorf("%w: Resolve - list officers: %v", ErrInternal, err)
	}
	if len(officers) == 0 {
		r.logger.Warn("Resolve: no active officers in department=%d", departmentID)
		return nil, ErrNoOfficersAvailable
	}

	ids := make([]int64, len(officers))
	for i, o := range officers {
		ids[i] = o.ID
	}

	// Окно выборки покрывает и календарный день, и окно конфликта через полночь
	from, to := dayBounds(target)
	if ws := target.Add(-domain.OfficerConflictWindow); ws.Before(from) {
		from = ws
	}
	if we := target.Add(domain.OfficerConflictWindow); we.After(to) {
		to = we
	}

	appointments, err := r.appointmentRepo.ListByOfficersInRange(ctx, ids, from, to)
	if err != nil {
		r.logger.Error("Resolve: failed to list appointments for department=%d: %v", departmentID, err)
		return nil, fmt.Errorf("%w: Resolve - list appointments: %v", ErrInternal, err)
	}

	candidates := BuildCandidates(officers, appointments, target)
	officer := SelectOfficer(candidates)

	conflicted := 0
	for _, c := range candidates {
		if c.Conflict {
			conflicted++
		}
	}
	if conflicted == len(candidates) {
		r.logger.Warn("Resolve: all %d officers of department=%d are busy at %s, assigning least loaded officer=%d",
			len(candidates), departmentID, target.Format(time.RFC3339), officer.ID)
	} else {
		r.logger.Info("Resolve: assigned officer=%d in department=%d (%d/%d busy)",
			officer.ID, departmentID, conflicted, len(candidates))
	}

	return officer, nil
}
