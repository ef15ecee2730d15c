package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/GovAppointmentService/internal/infra/storage/document"
	"github.com/m04kA/GovAppointmentService/internal/infra/storage/officer"
	"github.com/m04kA/GovAppointmentService/internal/integrations/blobstore"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
)

// Service документы приёма: список, догрузка, удаление и проверка сотрудником
type Service struct {
	appointmentRepo AppointmentRepository
	documentRepo    DocumentRepository
	officerRepo     OfficerRepository
	blobs           BlobStore
	limits          domain.DocumentLimits
	logger          Logger
}

// NewService создает новый экземпляр сервиса документов
func NewService(
	appointmentRepo AppointmentRepository,
	documentRepo DocumentRepository,
	officerRepo OfficerRepository,
	blobs BlobStore,
	limits domain.DocumentLimits,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		documentRepo:    documentRepo,
		officerRepo:     officerRepo,
		blobs:           blobs,
		limits:          limits,
		logger:          logger,
	}
}

// List документы приёма пользователя
func (s *Service) List(ctx context.Context, appointmentID, userID int64) ([]models.DocumentResponse, error) {
	if err := s.checkOwner(ctx, "List", appointmentID, userID); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		s.logger.Error("List: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDocuments(docs), nil
}

// Upload прикрепляет файл к существующему приёму.
// Если запись в БД не удалась, файл удаляется из хранилища.
func (s *Service) Upload(ctx context.Context, appointmentID, userID int64, file domain.UploadFile) (*models.DocumentResponse, error) {
	// 1. Проверка файла
	if err := s.limits.CheckFile(file); err != nil {
		s.logger.Warn("Upload: rejected file for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	// 2. Проверка владельца
	if err := s.checkOwner(ctx, "Upload", appointmentID, userID); err != nil {
		return nil, err
	}

	if s.limits.MaxFiles > 0 {
		existing, err := s.documentRepo.ListByAppointment(ctx, appointmentID)
		if err != nil {
			s.logger.Error("Upload: repository error for appointment id=%d: %v", appointmentID, err)
			return nil, fmt.Errorf("%w: Upload - list documents: %v", ErrInternal, err)
		}
		if len(existing) >= s.limits.MaxFiles {
			s.logger.Warn("Upload: appointment id=%d already has %d documents", appointmentID, len(existing))
			return nil, fmt.Errorf("%w: at most %d documents per appointment", ErrInvalidDocument, s.limits.MaxFiles)
		}
	}

	// 3. Загрузка в хранилище
	res, err := s.blobs.Upload(ctx, file.Data, file.Name, fmt.Sprintf("appointments/%d", appointmentID))
	if err != nil {
		s.logger.Error("Upload: blob store rejected %s for appointment id=%d: %v", file.Name, appointmentID, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrUploadFailure, file.Name, err)
	}

	// 4. Запись в БД
	doc, err := s.documentRepo.Create(ctx, &domain.Document{
		AppointmentID: appointmentID,
		UserID:        userID,
		PublicID:      res.PublicID,
		OriginalName:  file.Name,
		FileSize:      res.Size,
		MimeType:      file.MimeType,
		URL:           res.URL,
		DocumentType:  file.DocumentType,
	})
	if err != nil {
		s.logger.Error("Upload: failed to save document for appointment id=%d: %v", appointmentID, err)
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), res.PublicID); delErr != nil {
			s.logger.Warn("Upload: orphaned blob %s: %v", res.PublicID, delErr)
		}
		return nil, fmt.Errorf("%w: Upload - save document: %v", ErrInternal, err)
	}

	s.logger.Info("Upload: document id=%d attached to appointment id=%d", doc.ID, appointmentID)
	resp := models.FromDomainDocument(doc)
	return &resp, nil
}

// Delete удаляет документ: сначала файл, затем запись.
// Уже отсутствующий в хранилище файл не мешает удалить запись.
func (s *Service) Delete(ctx context.Context, documentID, userID int64) error {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			s.logger.Warn("Delete: document id=%d not found", documentID)
			return ErrDocumentNotFound
		}
		s.logger.Error("Delete: repository error for document id=%d: %v", documentID, err)
		return fmt.Errorf("%w: Delete - get document: %v", ErrInternal, err)
	}

	if doc.UserID != userID {
		s.logger.Warn("Delete: access denied for user=%d to document id=%d", userID, documentID)
		return ErrAccessDenied
	}

	if err := s.blobs.Delete(ctx, doc.PublicID); err != nil && !errors.Is(err, blobstore.ErrBlobNotFound) {
		s.logger.Error("Delete: blob store error for %s: %v", doc.PublicID, err)
		return fmt.Errorf("%w: Delete - blob: %v", ErrInternal, err)
	}

	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return ErrDocumentNotFound
		}
		s.logger.Error("Delete: repository error for document id=%d: %v", documentID, err)
		return fmt.Errorf("%w: Delete - delete row: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: document id=%d deleted by user=%d", documentID, userID)
	return nil
}

// Get карточка документа для сотрудника отдела
func (s *Service) Get(ctx context.Context, documentID int64) (*models.DocumentResponse, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			s.logger.Warn("Get: document id=%d not found", documentID)
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("Get: repository error for document id=%d: %v", documentID, err)
		return nil, fmt.Errorf("%w: Get - get document: %v", ErrInternal, err)
	}

	resp := models.FromDomainDocument(doc)
	return &resp, nil
}

// Process фиксирует решение офицера по документу: APPROVED или REJECTED.
// Повторное решение перезаписывает предыдущее.
func (s *Service) Process(ctx context.Context, documentID, officerID int64, status string, notes *string) (*models.DocumentResponse, error) {
	decision, err := domain.ParseDocumentDecision(status)
	if err != nil {
		s.logger.Warn("Process: invalid decision %q for document id=%d", status, documentID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDecision, err)
	}

	o, err := s.officerRepo.GetByID(ctx, officerID)
	if err != nil {
		if errors.Is(err, officer.ErrOfficerNotFound) {
			s.logger.Warn("Process: officer id=%d not found", officerID)
			return nil, ErrOfficerNotFound
		}
		s.logger.Error("Process: repository error for officer id=%d: %v", officerID, err)
		return nil, fmt.Errorf("%w: Process - get officer: %v", ErrInternal, err)
	}
	if !o.IsActive {
		s.logger.Warn("Process: officer id=%d is inactive", officerID)
		return nil, ErrOfficerNotFound
	}

	doc, err := s.documentRepo.UpdateProcessing(ctx, documentID, decision, officerID, notes)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			s.logger.Warn("Process: document id=%d not found", documentID)
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("Process: repository error for document id=%d: %v", documentID, err)
		return nil, fmt.Errorf("%w: Process - update document: %v", ErrInternal, err)
	}

	s.logger.Info("Process: document id=%d marked %s by officer id=%d", documentID, decision, officerID)
	resp := models.FromDomainDocument(doc)
	return &resp, nil
}

func (s *Service) checkOwner(ctx context.Context, op string, appointmentID, userID int64) error {
	a, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, appointmentID, err)
		return fmt.Errorf("%w: %s - get appointment: %v", ErrInternal, op, err)
	}
	if a.UserID != userID {
		s.logger.Warn("%s: access denied for user=%d to appointment id=%d", op, userID, appointmentID)
		return ErrAccessDenied
	}
	return nil
}
