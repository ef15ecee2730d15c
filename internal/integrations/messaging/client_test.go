package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_Send(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"message_id":"m-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, domain.ChannelEmail, time.Second, nil, nopLogger{})
	err := c.Send(context.Background(), domain.Notification{UserID: 7, Title: "Appointment Confirmed", Message: "see you"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "EMAIL", got.Channel)
	assert.Equal(t, "Appointment Confirmed", got.Subject)
}

func TestClient_SendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "recipient rejected", status: http.StatusUnprocessableEntity, wantErr: ErrRecipientRejected},
		{name: "gateway failure", status: http.StatusBadGateway, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, domain.ChannelSMS, time.Second, nil, nopLogger{})
			err := c.Send(context.Background(), domain.Notification{UserID: 1})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
