package appointments

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
	"github.com/m04kA/GovAppointmentService/pkg/ptr"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) GetDetailsByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppointmentDetails), args.Error(1)
}

func (m *mockAppointmentRepo) ListDetails(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AppointmentDetails), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleDetails(userID int64) *domain.AppointmentDetails {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	return &domain.AppointmentDetails{
		Appointment: domain.Appointment{
			ID:               7,
			BookingReference: "A1B2C3D4E5",
			QRCode:           "1f0e2d3c-4b5a-4697-8a1b-2c3d4e5f6a7b",
			UserID:           userID,
			Status:           domain.AppointmentConfirmed,
			AppointmentDate:  start,
		},
		User:       domain.User{ID: userID, FirstName: "Анна", LastName: "Петрова", Email: "anna@example.org"},
		Service:    domain.Service{ID: 3, Name: "Passport renewal", Fee: 25, RequiredDocuments: []string{"Old passport", "Photo"}},
		Department: domain.Department{ID: 2, Name: "Central office", Address: ptr.Ptr("1 Main St")},
		TimeSlot: domain.TimeSlot{
			ID: 11, DepartmentID: 2, StartTime: start, EndTime: start.Add(time.Hour),
			MaxBookings: 5, CurrentBookings: 2, Status: domain.SlotAvailable,
		},
		Officer: &domain.Officer{ID: 4, EmployeeID: "EMP-4", FirstName: "Ivan", LastName: "Orlov"},
	}
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("owner gets details", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("GetDetailsByID", ctx, int64(7)).Return(sampleDetails(1), nil)

		resp, err := NewService(repo, nopLogger{}).GetByID(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, "A1B2C3D4E5", resp.BookingReference)
		assert.Equal(t, "CONFIRMED", resp.Status)
		assert.Equal(t, "2025-03-10", resp.TimeSlot.Date)
		assert.Equal(t, 3, resp.TimeSlot.AvailableSpots)
		assert.Equal(t, "Central office", resp.Service.Department.Name)
		require.NotNil(t, resp.Officer)
		assert.Equal(t, int64(4), resp.Officer.ID)
	})

	t.Run("other user is denied", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("GetDetailsByID", ctx, int64(7)).Return(sampleDetails(1), nil)

		_, err := NewService(repo, nopLogger{}).GetByID(ctx, 7, 2)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("GetDetailsByID", ctx, int64(7)).Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := NewService(repo, nopLogger{}).GetByID(ctx, 7, 1)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("GetDetailsByID", ctx, int64(7)).Return(nil, errors.New("connection reset"))

		_, err := NewService(repo, nopLogger{}).GetByID(ctx, 7, 1)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("default take and status filter", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		status := domain.AppointmentConfirmed
		repo.On("ListDetails", ctx, domain.AppointmentsFilter{UserID: ptr.Ptr(int64(1)), Status: &status, Take: domain.DefaultListTake}).
			Return([]*domain.AppointmentDetails{sampleDetails(1)}, nil)

		resp, err := NewService(repo, nopLogger{}).List(ctx, &models.ListAppointmentsRequest{
			UserID: ptr.Ptr(int64(1)),
			Status: ptr.Ptr("CONFIRMED"),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 1)
		assert.Equal(t, uint64(domain.DefaultListTake), resp.Take)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("ListDetails", ctx, mock.Anything).Return([]*domain.AppointmentDetails{}, nil)

		resp, err := NewService(repo, nopLogger{}).List(ctx, &models.ListAppointmentsRequest{UserID: ptr.Ptr(int64(1)), Skip: 10, Take: 5})
		require.NoError(t, err)
		assert.NotNil(t, resp.Appointments)
		assert.Equal(t, uint64(10), resp.Skip)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		_, err := NewService(repo, nopLogger{}).List(ctx, &models.ListAppointmentsRequest{UserID: ptr.Ptr(int64(1)), Status: ptr.Ptr("LOST")})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "ListDetails", mock.Anything, mock.Anything)
	})

	t.Run("take above limit", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		_, err := NewService(repo, nopLogger{}).List(ctx, &models.ListAppointmentsRequest{UserID: ptr.Ptr(int64(1)), Take: domain.MaxListTake + 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unscoped list for staff", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("ListDetails", ctx, domain.AppointmentsFilter{Take: domain.DefaultListTake}).
			Return([]*domain.AppointmentDetails{sampleDetails(1), sampleDetails(2)}, nil)

		resp, err := NewService(repo, nopLogger{}).List(ctx, &models.ListAppointmentsRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 2)
		repo.AssertExpectations(t)
	})

	t.Run("officer queue", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		status := domain.AppointmentConfirmed
		repo.On("ListDetails", ctx, domain.AppointmentsFilter{OfficerID: ptr.Ptr(int64(3)), Status: &status, Take: 20}).
			Return([]*domain.AppointmentDetails{sampleDetails(1)}, nil)

		resp, err := NewService(repo, nopLogger{}).List(ctx, &models.ListAppointmentsRequest{
			OfficerID: ptr.Ptr(int64(3)),
			Status:    ptr.Ptr("CONFIRMED"),
			Take:      20,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 1)
		repo.AssertExpectations(t)
	})

	t.Run("non-positive officer id", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		_, err := NewService(repo, nopLogger{}).List(ctx, &models.ListAppointmentsRequest{OfficerID: ptr.Ptr(int64(0))})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_QRCode(t *testing.T) {
	ctx := context.Background()
	repo := new(mockAppointmentRepo)
	repo.On("GetDetailsByID", ctx, int64(7)).Return(sampleDetails(1), nil)

	out, err := NewService(repo, nopLogger{}).QRCode(ctx, 7, 1)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, qrSize, img.Bounds().Dx())
}

func TestService_Slip(t *testing.T) {
	ctx := context.Background()

	t.Run("renders pdf", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("GetDetailsByID", ctx, int64(7)).Return(sampleDetails(1), nil)

		out, err := NewService(repo, nopLogger{}).Slip(ctx, 7, 1)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("without officer", func(t *testing.T) {
		d := sampleDetails(1)
		d.Officer = nil
		d.Department.Address = nil
		repo := new(mockAppointmentRepo)
		repo.On("GetDetailsByID", ctx, int64(7)).Return(d, nil)

		out, err := NewService(repo, nopLogger{}).Slip(ctx, 7, 1)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})

	t.Run("other user is denied", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("GetDetailsByID", ctx, int64(7)).Return(sampleDetails(1), nil)

		_, err := NewService(repo, nopLogger{}).Slip(ctx, 7, 9)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
