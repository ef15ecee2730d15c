package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DocumentStatus результат проверки документа сотрудником
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentApproved DocumentStatus = "APPROVED"
	DocumentRejected DocumentStatus = "REJECTED"
)

// ParseDocumentDecision разбирает решение по документу.
// PENDING решением не считается.
func ParseDocumentDecision(s string) (DocumentStatus, error) {
	status := DocumentStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case DocumentApproved, DocumentRejected:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentStatus, s)
	}
}

// Document a file attached to an appointment, stored in the blob store
type Document struct {
	ID            int64
	AppointmentID int64
	UserID        int64
	PublicID      string
	OriginalName  string
	FileSize      int64
	MimeType      string
	URL           string
	DocumentType  *string
	Status        DocumentStatus
	ProcessedByID *int64
	ProcessedAt   *time.Time
	Notes         *string
	UploadedAt    time.Time
}

// UploadFile файл, пришедший в запросе
type UploadFile struct {
	Name         string
	MimeType     string
	Data         []byte
	DocumentType *string
}

// DocumentLimits ограничения на загружаемые документы
type DocumentLimits struct {
	MaxFiles         int
	MaxFileSize      int64 // байты
	AllowedMimeTypes []string
}

// CheckFile проверяет размер и тип одного файла
func (l DocumentLimits) CheckFile(f UploadFile) error {
	if len(f.Data) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidDocument, f.Name)
	}
	if l.MaxFileSize > 0 && int64(len(f.Data)) > l.MaxFileSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidDocument, f.Name, l.MaxFileSize)
	}
	if len(l.AllowedMimeTypes) > 0 && !slices.Contains(l.AllowedMimeTypes, f.MimeType) {
		return fmt.Errorf("%w: %s has unsupported type %q", ErrInvalidDocument, f.Name, f.MimeType)
	}
	return nil
}
