package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/govservice"
	officerRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/officer"
	slotRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/timeslot"
	userRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/user"
	"github.com/m04kA/GovAppointmentService/internal/service/assignment"
)

// memStore хранилище в памяти; транзакции выполняются строго по одной,
// при ошибке состояние откатывается к снимку
type memStore struct {
	mu           sync.Mutex
	users        map[int64]domain.User
	services     map[int64]domain.Service
	slots        map[int64]domain.TimeSlot
	officers     map[int64]domain.Officer
	appointments []domain.Appointment
	nextID       int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]domain.User{},
		services: map[int64]domain.Service{},
		slots:    map[int64]domain.TimeSlot{},
		officers: map[int64]domain.Officer{},
		nextID:   100,
	}
}

func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make(map[int64]domain.TimeSlot, len(s.slots))
	for k, v := range s.slots {
		slots[k] = v
	}
	appointments := append([]domain.Appointment(nil), s.appointments...)

	if err := fn(ctx); err != nil {
		s.slots = slots
		s.appointments = appointments
		return err
	}
	return nil
}

type memUsers struct{ s *memStore }

func (r memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &u, nil
}

type memServices struct{ s *memStore }

func (r memServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := r.s.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return &svc, nil
}

type memSlots struct{ s *memStore }

func (r memSlots) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	slot, ok := r.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrTimeSlotNotFound
	}
	return &slot, nil
}

func (r memSlots) UpdateBookings(_ context.Context, slot *domain.TimeSlot, expectedCurrent int) error {
	stored, ok := r.s.slots[slot.ID]
	if !ok || stored.CurrentBookings != expectedCurrent || slot.CurrentBookings > stored.MaxBookings {
		return slotRepo.ErrSlotNotAvailable
	}
	stored.CurrentBookings = slot.CurrentBookings
	stored.Status = slot.Status
	r.s.slots[slot.ID] = stored
	return nil
}

type memOfficers struct{ s *memStore }

func (r memOfficers) GetByID(_ context.Context, id int64) (*domain.Officer, error) {
	o, ok := r.s.officers[id]
	if !ok {
		return nil, officerRepo.ErrOfficerNotFound
	}
	return &o, nil
}

func (r memOfficers) ListActiveByDepartment(_ context.Context, departmentID int64, excludeID *int64) ([]*domain.Officer, error) {
	var out []*domain.Officer
	for _, o := range r.s.officers {
		if !o.IsActive || o.DepartmentID != departmentID {
			continue
		}
		if excludeID != nil && o.ID == *excludeID {
			continue
		}
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memAppointments struct{ s *memStore }

func (r memAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	for _, existing := range r.s.appointments {
		if existing.UserID == a.UserID && existing.TimeSlotID == a.TimeSlotID && existing.Status != domain.AppointmentCancelled {
			return nil, appointmentRepo.ErrDuplicateBooking
		}
	}
	r.s.nextID++
	a.ID = r.s.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.s.appointments = append(r.s.appointments, *a)
	return a, nil
}

func (r memAppointments) HasActiveForUserSlot(_ context.Context, userID, timeSlotID int64) (bool, error) {
	for _, a := range r.s.appointments {
		if a.UserID == userID && a.TimeSlotID == timeSlotID && a.Status != domain.AppointmentCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r memAppointments) ListByOfficersInRange(_ context.Context, officerIDs []int64, from, to time.Time) ([]*domain.Appointment, error) {
	ids := make(map[int64]bool, len(officerIDs))
	for _, id := range officerIDs {
		ids[id] = true
	}
	var out []*domain.Appointment
	for i := range r.s.appointments {
		a := r.s.appointments[i]
		if a.OfficerID == nil || !ids[*a.OfficerID] {
			continue
		}
		if a.AppointmentDate.Before(from) || !a.AppointmentDate.Before(to) {
			continue
		}
		out = append(out, &a)
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newPlacer(s *memStore) *Placer {
	resolver := assignment.NewResolver(memOfficers{s}, memAppointments{s}, time.UTC, nopLogger{})
	return NewPlacer(memUsers{s}, memServices{s}, memSlots{s}, memOfficers{s}, memAppointments{s}, resolver, nopLogger{})
}
