package assignment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/pkg/ptr"
)

type mockOfficerRepo struct {
	mock.Mock
}

func (m *mockOfficerRepo) ListActiveByDepartment(ctx context.Context, departmentID int64, excludeID *int64) ([]*domain.Officer, error) {
	args := m.Called(ctx, departmentID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Officer), args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) ListByOfficersInRange(ctx context.Context, officerIDs []int64, from, to time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, officerIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var target = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func officers(ids ...int64) []*domain.Officer {
	out := make([]*domain.Officer, len(ids))
	for i, id := range ids {
		out[i] = &domain.Officer{ID: id, DepartmentID: 1, IsActive: true}
	}
	return out
}

func appt(officerID int64, at time.Time, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{OfficerID: ptr.Ptr(officerID), AppointmentDate: at, Status: status}
}

func TestSelectOfficer(t *testing.T) {
	tests := []struct {
		name         string
		officers     []*domain.Officer
		appointments []*domain.Appointment
		want         int64
	}{
		{
			name:     "idle department picks lowest id",
			officers: officers(3, 1, 2),
			want:     1,
		},
		{
			name:     "two of three conflicted picks the free one",
			officers: officers(1, 2, 3),
			appointments: []*domain.Appointment{
				appt(1, target, domain.AppointmentConfirmed),
				appt(2, target.Add(20*time.Minute), domain.AppointmentInProgress),
				appt(3, target.Add(-3*time.Hour), domain.AppointmentConfirmed),
				appt(3, target.Add(-2*time.Hour), domain.AppointmentConfirmed),
			},
			want: 3,
		},
		{
			name:     "all conflicted falls back to least loaded",
			officers: officers(1, 2, 3),
			appointments: []*domain.Appointment{
				appt(1, target, domain.AppointmentConfirmed),
				appt(1, target.Add(-2*time.Hour), domain.AppointmentConfirmed),
				appt(2, target.Add(-10*time.Minute), domain.AppointmentConfirmed),
				appt(3, target.Add(10*time.Minute), domain.AppointmentConfirmed),
				appt(3, target.Add(2*time.Hour), domain.AppointmentConfirmed),
			},
			want: 2,
		},
		{
			name:     "free officer wins over less loaded busy one",
			officers: officers(1, 2),
			appointments: []*domain.Appointment{
				appt(1, target, domain.AppointmentConfirmed),
				appt(2, target.Add(-2*time.Hour), domain.AppointmentConfirmed),
				appt(2, target.Add(2*time.Hour), domain.AppointmentConfirmed),
			},
			want: 2,
		},
		{
			name:     "cancelled and completed do not conflict",
			officers: officers(1, 2),
			appointments: []*domain.Appointment{
				appt(1, target, domain.AppointmentCancelled),
				appt(1, target.Add(5*time.Minute), domain.AppointmentCompleted),
				appt(2, target.Add(-4*time.Hour), domain.AppointmentConfirmed),
			},
			want: 1,
		},
		{
			name:     "window end is exclusive",
			officers: officers(1, 2),
			appointments: []*domain.Appointment{
				appt(1, target.Add(30*time.Minute), domain.AppointmentConfirmed),
				appt(2, target.Add(-30*time.Minute), domain.AppointmentConfirmed),
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectOfficer(BuildCandidates(tt.officers, tt.appointments, target))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestBuildCandidates_DayLoad(t *testing.T) {
	candidates := BuildCandidates(officers(1), []*domain.Appointment{
		appt(1, target.Add(-9*time.Hour), domain.AppointmentCompleted),
		appt(1, target.Add(4*time.Hour), domain.AppointmentNoShow),
		appt(1, target.Add(5*time.Hour), domain.AppointmentCancelled),
		appt(1, target.Add(-11*time.Hour), domain.AppointmentConfirmed), // предыдущий день
	}, target)

	require.Len(t, candidates, 1)
	assert.Equal(t, 2, candidates[0].DayLoad)
	assert.False(t, candidates[0].Conflict)
}

func TestSelectOfficer_Empty(t *testing.T) {
	assert.Nil(t, SelectOfficer(nil))
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("no officers", func(t *testing.T) {
		officerRepo := &mockOfficerRepo{}
		officerRepo.On("ListActiveByDepartment", ctx, int64(1), (*int64)(nil)).Return([]*domain.Officer{}, nil)
		appointmentRepo := &mockAppointmentRepo{}

		_, err := NewResolver(officerRepo, appointmentRepo, time.UTC, nopLogger{}).Resolve(ctx, 1, target, nil)

		assert.ErrorIs(t, err, ErrNoOfficersAvailable)
		appointmentRepo.AssertNotCalled(t, "ListByOfficersInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("excluded officer and conflicts", func(t *testing.T) {
		exclude := ptr.Ptr(int64(9))
		officerRepo := &mockOfficerRepo{}
		officerRepo.On("ListActiveByDepartment", ctx, int64(1), exclude).Return(officers(1, 2), nil)

		dayStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		appointmentRepo := &mockAppointmentRepo{}
		appointmentRepo.On("ListByOfficersInRange", ctx, []int64{1, 2}, dayStart, dayStart.AddDate(0, 0, 1)).
			Return([]*domain.Appointment{appt(1, target, domain.AppointmentConfirmed)}, nil)

		officer, err := NewResolver(officerRepo, appointmentRepo, time.UTC, nopLogger{}).Resolve(ctx, 1, target, exclude)

		require.NoError(t, err)
		assert.Equal(t, int64(2), officer.ID)
		appointmentRepo.AssertExpectations(t)
	})

	t.Run("window near midnight widens the range", func(t *testing.T) {
		late := time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC)
		officerRepo := &mockOfficerRepo{}
		officerRepo.On("ListActiveByDepartment", ctx, int64(1), (*int64)(nil)).Return(officers(1), nil)

		appointmentRepo := &mockAppointmentRepo{}
		appointmentRepo.On("ListByOfficersInRange", ctx, []int64{1},
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), late.Add(30*time.Minute)).
			Return([]*domain.Appointment{}, nil)

		_, err := NewResolver(officerRepo, appointmentRepo, time.UTC, nopLogger{}).Resolve(ctx, 1, late, nil)
		require.NoError(t, err)
		appointmentRepo.AssertExpectations(t)
	})

	t.Run("day is taken in the department timezone", func(t *testing.T) {
		ist := time.FixedZone("IST", 5*3600+1800)
		// 01:30 11 марта по местному времени, ещё 10 марта по UTC
		utcTarget := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
		localDay := time.Date(2025, 3, 11, 0, 0, 0, 0, ist)

		officerRepo := &mockOfficerRepo{}
		officerRepo.On("ListActiveByDepartment", ctx, int64(1), (*int64)(nil)).Return(officers(1, 2), nil)

		appointmentRepo := &mockAppointmentRepo{}
		appointmentRepo.On("ListByOfficersInRange", ctx, []int64{1, 2}, localDay, localDay.AddDate(0, 0, 1)).
			Return([]*domain.Appointment{
				appt(1, time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), domain.AppointmentConfirmed), // 22:30 10 марта местного
				appt(2, time.Date(2025, 3, 11, 4, 30, 0, 0, time.UTC), domain.AppointmentConfirmed), // 10:00 11 марта местного
			}, nil)

		officer, err := NewResolver(officerRepo, appointmentRepo, ist, nopLogger{}).Resolve(ctx, 1, utcTarget, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(1), officer.ID)
		appointmentRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		officerRepo := &mockOfficerRepo{}
		officerRepo.On("ListActiveByDepartment", ctx, int64(1), (*int64)(nil)).Return(nil, errors.New("conn reset"))

		_, err := NewResolver(officerRepo, &mockAppointmentRepo{}, time.UTC, nopLogger{}).Resolve(ctx, 1, target, nil)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
