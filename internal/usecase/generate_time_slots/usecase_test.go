package generate_time_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	departmentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/department"
	"github.com/m04kA/GovAppointmentService/pkg/ptr"
)

type memDepartments map[int64]*domain.Department

func (r memDepartments) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	d, ok := r[id]
	if !ok {
		return nil, departmentRepo.ErrDepartmentNotFound
	}
	return d, nil
}

// memSlots имитирует ON CONFLICT DO NOTHING по (department_id, start_time)
type memSlots struct {
	existing map[time.Time]bool
}

func (r *memSlots) CreateBatch(_ context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error) {
	if r.existing == nil {
		r.existing = map[time.Time]bool{}
	}
	var created []*domain.TimeSlot
	for _, s := range slots {
		if r.existing[s.StartTime] {
			continue
		}
		r.existing[s.StartTime] = true
		created = append(created, s)
	}
	return created, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func department() *domain.Department {
	return &domain.Department{
		ID: 1,
		WorkingHours: domain.WorkingHours{
			"monday":   {IsOpen: true, OpenTime: "09:00", CloseTime: "12:30"},
			"tuesday":  {IsOpen: true, OpenTime: "10:00", CloseTime: "12:00"},
			"saturday": {IsOpen: false},
		},
	}
}

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newUseCase(slots *memSlots) *UseCase {
	return NewUseCase(memDepartments{1: department()}, slots, Config{GranularityMinutes: 60, DefaultMaxBookings: 1}, nopLogger{})
}

func TestExecute_GeneratesFromWorkingHours(t *testing.T) {
	resp, err := newUseCase(&memSlots{}).Execute(context.Background(), &Request{DepartmentID: 1, From: monday, Days: 7})
	require.NoError(t, err)

	// понедельник 9-10, 10-11, 11-12 (12:00-13:00 не помещается); вторник 10-11, 11-12
	require.Len(t, resp.Created, 5)
	assert.Equal(t, 0, resp.Skipped)

	first := resp.Created[0]
	assert.Equal(t, monday.Add(9*time.Hour), first.StartTime)
	assert.Equal(t, monday.Add(10*time.Hour), first.EndTime)
	assert.Equal(t, 1, first.MaxBookings)
	assert.Equal(t, domain.SlotAvailable, first.Status)
	assert.Equal(t, monday, first.Date)

	for i := 1; i < 3; i++ {
		assert.Equal(t, resp.Created[i-1].EndTime, resp.Created[i].StartTime, "slots must be contiguous")
	}

	last := resp.Created[4]
	assert.Equal(t, monday.AddDate(0, 0, 1).Add(11*time.Hour), last.StartTime)
}

func TestExecute_IsIdempotent(t *testing.T) {
	slots := &memSlots{}
	uc := newUseCase(slots)

	_, err := uc.Execute(context.Background(), &Request{DepartmentID: 1, From: monday, Days: 1})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), &Request{DepartmentID: 1, From: monday, Days: 2, MaxBookings: ptr.Ptr(5)})
	require.NoError(t, err)
	assert.Len(t, resp.Created, 2)
	assert.Equal(t, 3, resp.Skipped)
	for _, s := range resp.Created {
		assert.Equal(t, 5, s.MaxBookings)
	}
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(&memSlots{})

	_, err := uc.Execute(context.Background(), &Request{DepartmentID: 2, From: monday, Days: 1})
	assert.ErrorIs(t, err, ErrDepartmentNotFound)

	_, err = uc.Execute(context.Background(), &Request{DepartmentID: 1, From: monday, Days: 63})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{DepartmentID: 1, From: monday, Days: 1, MaxBookings: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDaySlots(t *testing.T) {
	tests := []struct {
		name     string
		schedule domain.DaySchedule
		step     int
		want     int
		wantErr  error
	}{
		{"closed", domain.DaySchedule{IsOpen: false}, 60, 0, nil},
		{"half hour step", domain.DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "11:00"}, 30, 4, nil},
		{"until midnight", domain.DaySchedule{IsOpen: true, OpenTime: "22:00", CloseTime: "24:00"}, 60, 2, nil},
		{"shorter than step", domain.DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "09:45"}, 60, 0, nil},
		{"open without hours", domain.DaySchedule{IsOpen: true}, 60, 0, ErrInvalidWorkingHours},
		{"garbage hours", domain.DaySchedule{IsOpen: true, OpenTime: "9am", CloseTime: "17:00"}, 60, 0, ErrInvalidWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := daySlots(1, monday, tt.schedule, tt.step, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, slots, tt.want)
		})
	}
}
