package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/pkg/ptr"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaPublisher_Send(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w, "appointments.notifications")

	err := p.Send(context.Background(), domain.Notification{
		UserID:        12,
		AppointmentID: ptr.Ptr(int64(99)),
		Title:         "Appointment Status Updated",
		Message:       "CONFIRMED → IN_PROGRESS",
		Type:          domain.NotificationStatusUpdate,
		Channel:       domain.ChannelInApp,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "12", string(msg.Key))

	var event Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "STATUS_UPDATE", event.EventType)
	assert.Equal(t, int64(99), *event.AppointmentID)
	assert.NotEmpty(t, event.EventID)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, event.EventID, headers["event_id"])
	assert.Equal(t, "STATUS_UPDATE", headers["event_type"])
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := NewKafkaPublisher(&recordingWriter{err: errors.New("leader not available")}, "t")
	err := p.Send(context.Background(), domain.Notification{UserID: 1})
	assert.ErrorIs(t, err, ErrPublish)
}
