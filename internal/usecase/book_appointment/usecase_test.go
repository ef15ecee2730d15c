package book_appointment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/service/booking"
	"github.com/m04kA/GovAppointmentService/pkg/ptr"
)

type mockPlacer struct {
	mock.Mock
}

func (m *mockPlacer) Place(ctx context.Context, req booking.PlaceRequest) (*domain.Appointment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

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

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, n domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordBooking(outcome string) {
	m.Called(outcome)
}

// passthroughTx выполняет fn без транзакции: commit-hook'и срабатывают сразу
type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	placer   *mockPlacer
	repo     *mockAppointmentRepo
	notifier *mockNotifier
	recorder *mockRecorder
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		placer:   &mockPlacer{},
		repo:     &mockAppointmentRepo{},
		notifier: &mockNotifier{},
		recorder: &mockRecorder{},
	}
	f.uc = NewUseCase(f.placer, f.repo, f.notifier, f.recorder, passthroughTx{}, nopLogger{})
	return f
}

func confirmed() *domain.Appointment {
	return &domain.Appointment{
		ID:               7,
		BookingReference: "A1B2C3D4E5",
		UserID:           1,
		ServiceID:        10,
		TimeSlotID:       20,
		OfficerID:        ptr.Ptr(int64(30)),
		Status:           domain.AppointmentConfirmed,
		AppointmentDate:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := &Request{UserID: 1, ServiceID: 10, TimeSlotID: 20, Notes: ptr.Ptr("first visit")}

	appointment := confirmed()
	details := &domain.AppointmentDetails{Appointment: *appointment}

	f.placer.On("Place", mock.Anything, booking.PlaceRequest{UserID: 1, ServiceID: 10, TimeSlotID: 20, Notes: req.Notes}).
		Return(appointment, nil).Once()
	f.notifier.On("Send", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.UserID == 1 && n.Title == "Appointment Confirmed" &&
			n.Type == domain.NotificationAppointmentConfirmation &&
			strings.Contains(n.Message, "A1B2C3D4E5")
	})).Return(nil).Once()
	f.recorder.On("RecordBooking", OutcomeConfirmed).Once()
	f.repo.On("GetDetailsByID", ctx, int64(7)).Return(details, nil).Once()

	resp, err := f.uc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Same(t, details, resp.Appointment)
	f.placer.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.recorder.AssertExpectations(t)
}

func TestExecute_NotificationFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.placer.On("Place", mock.Anything, mock.Anything).Return(confirmed(), nil)
	f.notifier.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	f.recorder.On("RecordBooking", OutcomeConfirmed)
	f.repo.On("GetDetailsByID", ctx, int64(7)).Return(&domain.AppointmentDetails{}, nil)

	_, err := f.uc.Execute(ctx, &Request{UserID: 1, ServiceID: 10, TimeSlotID: 20})
	assert.NoError(t, err)
}

func TestExecute_PlacementErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome string
		want    error
	}{
		{"fully booked", booking.ErrSlotFullyBooked, OutcomeFullyBooked, ErrSlotFullyBooked},
		{"no officers", booking.ErrNoOfficersAvailable, OutcomeNoOfficers, ErrNoOfficersAvailable},
		{"slot not found", booking.ErrTimeSlotNotFound, OutcomeRejected, ErrNotFound},
		{"already booked", booking.ErrAlreadyBooked, OutcomeRejected, ErrAlreadyBooked},
		{"internal", errors.New("connection refused"), OutcomeError, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.placer.On("Place", mock.Anything, mock.Anything).Return(nil, tt.err)
			f.recorder.On("RecordBooking", tt.outcome).Once()

			_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, ServiceID: 10, TimeSlotID: 20})

			assert.ErrorIs(t, err, tt.want)
			f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
			f.repo.AssertNotCalled(t, "GetDetailsByID", mock.Anything, mock.Anything)
			f.recorder.AssertExpectations(t)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"zero user", &Request{ServiceID: 1, TimeSlotID: 1}},
		{"negative service", &Request{UserID: 1, ServiceID: -1, TimeSlotID: 1}},
		{"zero slot", &Request{UserID: 1, ServiceID: 1}},
		{"long notes", &Request{UserID: 1, ServiceID: 1, TimeSlotID: 1, Notes: ptr.Ptr(strings.Repeat("я", domain.MaxNotesLength+1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			f.placer.AssertNotCalled(t, "Place", mock.Anything, mock.Anything)
		})
	}
}
