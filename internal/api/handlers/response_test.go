package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		ServiceID int64 `json:"serviceId"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"serviceId": 3}`, false},
		{"unknown field", `{"serviceId": 3, "extra": true}`, true},
		{"trailing object", `{"serviceId": 3}{"serviceId": 4}`, true},
		{"broken", `{"serviceId":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(3), p.ServiceID)
		})
	}
}

func TestPathInt64(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	v, err := PathInt64(mux.SetURLVars(r, map[string]string{"id": "42"}), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = PathInt64(mux.SetURLVars(r, map[string]string{"id": "abc"}), "id")
	assert.Error(t, err)

	_, err = PathInt64(mux.SetURLVars(r, map[string]string{"id": "0"}), "id")
	assert.Error(t, err)
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondConflict(w, "слот занят")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"слот занят"}`, w.Body.String())
}
