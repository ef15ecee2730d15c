package documents

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/GovAppointmentService/internal/infra/storage/document"
	"github.com/m04kA/GovAppointmentService/internal/infra/storage/officer"
	"github.com/m04kA/GovAppointmentService/internal/integrations/blobstore"
	"github.com/m04kA/GovAppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memAppointments map[int64]*domain.Appointment

func (m memAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := m[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return a, nil
}

type memDocuments struct {
	mu        sync.Mutex
	docs      map[int64]*domain.Document
	nextID    int64
	createErr error
}

func newMemDocuments() *memDocuments {
	return &memDocuments{docs: make(map[int64]*domain.Document)}
}

func (r *memDocuments) Create(_ context.Context, d *domain.Document) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	d.ID = r.nextID
	d.Status = domain.DocumentPending
	r.docs[d.ID] = d
	return d, nil
}

func (r *memDocuments) GetByID(_ context.Context, id int64) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, document.ErrDocumentNotFound
	}
	return d, nil
}

func (r *memDocuments) ListByAppointment(_ context.Context, appointmentID int64) ([]*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Document
	for _, d := range r.docs {
		if d.AppointmentID == appointmentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDocuments) UpdateProcessing(_ context.Context, id int64, status domain.DocumentStatus, officerID int64, notes *string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, document.ErrDocumentNotFound
	}
	now := time.Now()
	d.Status = status
	d.ProcessedByID = &officerID
	d.ProcessedAt = &now
	d.Notes = notes
	return d, nil
}

func (r *memDocuments) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return document.ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

type memOfficers map[int64]*domain.Officer

func (m memOfficers) GetByID(_ context.Context, id int64) (*domain.Officer, error) {
	o, ok := m[id]
	if !ok {
		return nil, officer.ErrOfficerNotFound
	}
	return o, nil
}

type memBlobs struct {
	stored    map[string][]byte
	uploadErr error
}

func (b *memBlobs) Upload(_ context.Context, data []byte, name, folder string) (*blobstore.UploadResult, error) {
	if b.uploadErr != nil {
		return nil, b.uploadErr
	}
	id := folder + "/" + name
	b.stored[id] = data
	return &blobstore.UploadResult{PublicID: id, URL: "/uploads/" + id, Size: int64(len(data))}, nil
}

func (b *memBlobs) Delete(_ context.Context, publicID string) error {
	if _, ok := b.stored[publicID]; !ok {
		return blobstore.ErrBlobNotFound
	}
	delete(b.stored, publicID)
	return nil
}

var limits = domain.DocumentLimits{
	MaxFiles:         2,
	MaxFileSize:      1024,
	AllowedMimeTypes: []string{"application/pdf"},
}

func setup() (*Service, *memDocuments, *memBlobs) {
	appts := memAppointments{
		1: {ID: 1, UserID: 10},
		2: {ID: 2, UserID: 20},
	}
	docs := newMemDocuments()
	blobs := &memBlobs{stored: make(map[string][]byte)}
	officers := memOfficers{
		31: {ID: 31, DepartmentID: 1, IsActive: true},
		32: {ID: 32, DepartmentID: 1, IsActive: false},
	}
	return NewService(appts, docs, officers, blobs, limits, nopLogger{}), docs, blobs
}

func pdfFile(name string) domain.UploadFile {
	return domain.UploadFile{Name: name, MimeType: "application/pdf", Data: []byte("%PDF-1.4")}
}

func TestService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores blob and row", func(t *testing.T) {
		svc, docs, blobs := setup()

		resp, err := svc.Upload(ctx, 1, 10, pdfFile("passport.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "appointments/1/passport.pdf", docs.docs[resp.ID].PublicID)
		assert.Contains(t, blobs.stored, "appointments/1/passport.pdf")
		assert.Equal(t, int64(8), resp.FileSize)
	})

	t.Run("rejects disallowed type", func(t *testing.T) {
		svc, _, blobs := setup()
		f := pdfFile("photo.gif")
		f.MimeType = "image/gif"

		_, err := svc.Upload(ctx, 1, 10, f)
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.Empty(t, blobs.stored)
	})

	t.Run("rejects file over count limit", func(t *testing.T) {
		svc, _, _ := setup()
		_, err := svc.Upload(ctx, 1, 10, pdfFile("a.pdf"))
		require.NoError(t, err)
		_, err = svc.Upload(ctx, 1, 10, pdfFile("b.pdf"))
		require.NoError(t, err)

		_, err = svc.Upload(ctx, 1, 10, pdfFile("c.pdf"))
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("foreign appointment", func(t *testing.T) {
		svc, _, _ := setup()
		_, err := svc.Upload(ctx, 2, 10, pdfFile("a.pdf"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing appointment", func(t *testing.T) {
		svc, _, _ := setup()
		_, err := svc.Upload(ctx, 99, 10, pdfFile("a.pdf"))
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("blob store failure", func(t *testing.T) {
		svc, _, blobs := setup()
		blobs.uploadErr = errors.New("disk full")

		_, err := svc.Upload(ctx, 1, 10, pdfFile("a.pdf"))
		assert.ErrorIs(t, err, ErrUploadFailure)
	})

	t.Run("row failure removes blob", func(t *testing.T) {
		svc, docs, blobs := setup()
		docs.createErr = errors.New("insert failed")

		_, err := svc.Upload(ctx, 1, 10, pdfFile("a.pdf"))
		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, blobs.stored)
	})
}

func TestService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, docs, blobs := setup()

	resp, err := svc.Upload(ctx, 1, 10, pdfFile("a.pdf"))
	require.NoError(t, err)

	list, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a.pdf", list[0].OriginalName)

	_, err = svc.List(ctx, 1, 20)
	assert.ErrorIs(t, err, ErrAccessDenied)

	assert.ErrorIs(t, svc.Delete(ctx, resp.ID, 20), ErrAccessDenied)
	require.NoError(t, svc.Delete(ctx, resp.ID, 10))
	assert.Empty(t, docs.docs)
	assert.Empty(t, blobs.stored)

	assert.ErrorIs(t, svc.Delete(ctx, resp.ID, 10), ErrDocumentNotFound)
}

func TestService_DeleteWithMissingBlob(t *testing.T) {
	ctx := context.Background()
	svc, docs, blobs := setup()

	resp, err := svc.Upload(ctx, 1, 10, pdfFile("a.pdf"))
	require.NoError(t, err)
	delete(blobs.stored, "appointments/1/a.pdf")

	require.NoError(t, svc.Delete(ctx, resp.ID, 10))
	assert.Empty(t, docs.docs)
}

func TestService_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("approve records officer and time", func(t *testing.T) {
		svc, docs, _ := setup()
		uploaded, err := svc.Upload(ctx, 1, 10, pdfFile("a.pdf"))
		require.NoError(t, err)
		assert.Equal(t, string(domain.DocumentPending), uploaded.Status)

		resp, err := svc.Process(ctx, uploaded.ID, 31, "approved", ptr.Ptr("подпись на месте"))
		require.NoError(t, err)
		assert.Equal(t, string(domain.DocumentApproved), resp.Status)
		require.NotNil(t, resp.ProcessedByID)
		assert.Equal(t, int64(31), *resp.ProcessedByID)
		assert.NotNil(t, resp.ProcessedAt)
		assert.Equal(t, "подпись на месте", *docs.docs[uploaded.ID].Notes)
	})

	t.Run("second decision overrides first", func(t *testing.T) {
		svc, docs, _ := setup()
		uploaded, err := svc.Upload(ctx, 1, 10, pdfFile("a.pdf"))
		require.NoError(t, err)

		_, err = svc.Process(ctx, uploaded.ID, 31, "APPROVED", nil)
		require.NoError(t, err)
		_, err = svc.Process(ctx, uploaded.ID, 31, "REJECTED", ptr.Ptr("скан нечитаем"))
		require.NoError(t, err)
		assert.Equal(t, domain.DocumentRejected, docs.docs[uploaded.ID].Status)
	})

	tests := []struct {
		name       string
		documentID int64
		officerID  int64
		status     string
		want       error
	}{
		{"pending is not a decision", 1, 31, "PENDING", ErrInvalidDecision},
		{"unknown decision", 1, 31, "LOST", ErrInvalidDecision},
		{"unknown officer", 1, 99, "APPROVED", ErrOfficerNotFound},
		{"inactive officer", 1, 32, "APPROVED", ErrOfficerNotFound},
		{"missing document", 42, 31, "APPROVED", ErrDocumentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, docs, _ := setup()
			_, err := svc.Upload(ctx, 1, 10, pdfFile("a.pdf"))
			require.NoError(t, err)

			_, err = svc.Process(ctx, tt.documentID, tt.officerID, tt.status, nil)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, domain.DocumentPending, docs.docs[1].Status)
		})
	}
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()

	uploaded, err := svc.Upload(ctx, 1, 10, pdfFile("a.pdf"))
	require.NoError(t, err)

	resp, err := svc.Get(ctx, uploaded.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", resp.OriginalName)
	assert.Equal(t, int64(1), resp.AppointmentID)

	_, err = svc.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
