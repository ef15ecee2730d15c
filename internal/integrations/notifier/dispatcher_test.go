package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Send(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type panicSink struct{}

func (panicSink) Send(context.Context, domain.Notification) error { panic("broker gone") }

type countingRecorder struct {
	failures map[string]int
}

func (r *countingRecorder) RecordNotificationFailure(sink string) {
	if r.failures == nil {
		r.failures = make(map[string]int)
	}
	r.failures[sink]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestDispatcher_AllSinksReceive(t *testing.T) {
	n := domain.Notification{UserID: 5, Title: "Appointment Confirmed"}

	first := &mockSink{}
	first.On("Send", mock.Anything, n).Return(nil).Once()
	second := &mockSink{}
	second.On("Send", mock.Anything, n).Return(nil).Once()

	d := NewDispatcher(nopLogger{}, nil).Register("in_app", first).Register("kafka", second)

	require.NoError(t, d.Send(context.Background(), n))
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestDispatcher_FailuresAreIsolated(t *testing.T) {
	n := domain.Notification{UserID: 5}

	failing := &mockSink{}
	failing.On("Send", mock.Anything, n).Return(errors.New("smtp down")).Once()
	healthy := &mockSink{}
	healthy.On("Send", mock.Anything, n).Return(nil).Once()
	recorder := &countingRecorder{}

	d := NewDispatcher(nopLogger{}, recorder).
		Register("email", failing).
		Register("kafka", panicSink{}).
		Register("in_app", healthy)

	err := d.Send(context.Background(), n)

	assert.ErrorIs(t, err, ErrDelivery)
	assert.ErrorContains(t, err, "smtp down")
	assert.ErrorContains(t, err, "broker gone")
	healthy.AssertExpectations(t)
	assert.Equal(t, map[string]int{"email": 1, "kafka": 1}, recorder.failures)
}
