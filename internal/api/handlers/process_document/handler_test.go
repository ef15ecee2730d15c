package process_document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
	"github.com/m04kA/GovAppointmentService/internal/service/documents"
	"github.com/m04kA/GovAppointmentService/pkg/ptr"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Process(ctx context.Context, documentID, officerID int64, status string, notes *string) (*models.DocumentResponse, error) {
	args := m.Called(ctx, documentID, officerID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DocumentResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/documents/3/process", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return mux.SetURLVars(r, map[string]string{"documentId": "3"})
}

func TestHandler_Approves(t *testing.T) {
	svc := new(mockService)
	svc.On("Process", mock.Anything, int64(3), int64(31), "APPROVED", ptr.Ptr("ок")).
		Return(&models.DocumentResponse{ID: 3, Status: "APPROVED", ProcessedByID: ptr.Ptr(int64(31))}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, newRequest(`{"officerId":31,"status":"APPROVED","notes":"ок"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"processedById":31`)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"broken body", `{`, nil, http.StatusBadRequest},
		{"missing officer", `{"status":"APPROVED"}`, nil, http.StatusBadRequest},
		{"invalid decision", `{"officerId":31,"status":"PENDING"}`, documents.ErrInvalidDecision, http.StatusBadRequest},
		{"document not found", `{"officerId":31,"status":"APPROVED"}`, documents.ErrDocumentNotFound, http.StatusNotFound},
		{"officer not found", `{"officerId":99,"status":"APPROVED"}`, documents.ErrOfficerNotFound, http.StatusNotFound},
		{"internal", `{"officerId":31,"status":"APPROVED"}`, documents.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Process", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(w, newRequest(tt.body))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
