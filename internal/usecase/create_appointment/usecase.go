package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/integrations/blobstore"
	"github.com/m04kA/GovAppointmentService/internal/service/booking"
	"github.com/m04kA/GovAppointmentService/pkg/txmanager"
)

// maxParallelUploads одновременных загрузок в хранилище на один запрос
const maxParallelUploads = 4

// UseCase use case создания приёма с приложенными документами
type UseCase struct {
	placer          AppointmentPlacer
	appointmentRepo AppointmentRepository
	documentRepo    DocumentRepository
	blobs           BlobStore
	notifier        Notifier
	recorder        BookingRecorder
	txManager       TransactionManager
	limits          domain.DocumentLimits
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	placer AppointmentPlacer,
	appointmentRepo AppointmentRepository,
	documentRepo DocumentRepository,
	blobs BlobStore,
	notifier Notifier,
	recorder BookingRecorder,
	txManager TransactionManager,
	limits domain.DocumentLimits,
	logger Logger,
) *UseCase {
	return &UseCase{
		placer:          placer,
		appointmentRepo: appointmentRepo,
		documentRepo:    documentRepo,
		blobs:           blobs,
		notifier:        notifier,
		recorder:        recorder,
		txManager:       txManager,
		limits:          limits,
		logger:          logger,
	}
}

// Execute размещает приём и загружает документы в одной транзакции.
// Ошибка загрузки любого файла откатывает бронирование, уже загруженные файлы удаляются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных и файлов
	if err := validateRequest(req, uc.limits); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: user=%d, service=%d, slot=%d, files=%d",
		req.UserID, req.ServiceID, req.TimeSlotID, len(req.Files))

	var (
		created   *domain.Appointment
		documents []*domain.Document
	)

	// 2. Транзакция: приём + документы
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := uc.placer.Place(txCtx, booking.PlaceRequest{
			UserID:     req.UserID,
			ServiceID:  req.ServiceID,
			TimeSlotID: req.TimeSlotID,
			OfficerID:  req.OfficerID,
			Notes:      req.Notes,
		})
		if err != nil {
			return err
		}

		// 2.1. Загружаем файлы параллельно
		uploads, err := uc.uploadAll(txCtx, appointment.ID, req.Files)
		if err != nil {
			return err
		}

		// 2.2. Записи документов (последовательно, в той же транзакции)
		docs := make([]*domain.Document, 0, len(uploads))
		for i, up := range uploads {
			doc, err := uc.documentRepo.Create(txCtx, &domain.Document{
				AppointmentID: appointment.ID,
				UserID:        req.UserID,
				PublicID:      up.PublicID,
				OriginalName:  req.Files[i].Name,
				FileSize:      up.Size,
				MimeType:      req.Files[i].MimeType,
				URL:           up.URL,
				DocumentType:  req.Files[i].DocumentType,
			})
			if err != nil {
				return fmt.Errorf("%w: CreateAppointment - create document: %v", ErrInternal, err)
			}
			docs = append(docs, doc)
		}

		notification := domain.Notification{
			UserID:        appointment.UserID,
			AppointmentID: &appointment.ID,
			Title:         "Appointment Confirmed",
			Message: fmt.Sprintf("Your appointment %s on %s is confirmed. %d document(s) received.",
				appointment.BookingReference, appointment.AppointmentDate.Format(domain.DateFormat+" "+domain.TimeFormat), len(docs)),
			Channel: domain.ChannelInApp,
			Type:    domain.NotificationAppointmentConfirmation,
		}
		txmanager.OnCommit(txCtx, "booking_confirmation", func(hookCtx context.Context) error {
			return uc.notifier.Send(hookCtx, notification)
		})

		created = appointment
		documents = docs
		return nil
	})

	uc.recorder.RecordBooking(outcome(err))
	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed for user=%d slot=%d: %v", req.UserID, req.TimeSlotID, err)
		return nil, fmt.Errorf("%w: CreateAppointment - transaction: %v", ErrInternal, err)
	}

	// 3. Загружаем приём со связанными сущностями
	details, err := uc.appointmentRepo.GetDetailsByID(ctx, created.ID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to load details for appointment id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: CreateAppointment - load details: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d with %d documents", created.ID, len(documents))
	return &Response{Appointment: details, Documents: documents}, nil
}

// uploadAll загружает файлы в папку приёма. Каждый загруженный файл регистрируется
// на удаление при откате транзакции.
func (uc *UseCase) uploadAll(txCtx context.Context, appointmentID int64, files []domain.UploadFile) ([]*blobstore.UploadResult, error) {
	folder := fmt.Sprintf("appointments/%d", appointmentID)
	results := make([]*blobstore.UploadResult, len(files))

	g, gctx := errgroup.WithContext(txCtx)
	g.SetLimit(maxParallelUploads)

	for i, f := range files {
		g.Go(func() error {
			res, err := uc.blobs.Upload(gctx, f.Data, f.Name, folder)
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			results[i] = res

			txmanager.OnRollback(txCtx, "delete_blob", func(hookCtx context.Context) error {
				cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(hookCtx), 10*time.Second)
				defer cancel()
				return uc.blobs.Delete(cleanupCtx, res.PublicID)
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("CreateAppointment: upload failed for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailure, err)
	}

	return results, nil
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSlotFullyBooked) ||
		errors.Is(err, ErrSlotNotBookable) ||
		errors.Is(err, ErrAlreadyBooked) ||
		errors.Is(err, ErrNoOfficersAvailable) ||
		errors.Is(err, ErrSlotDepartmentMismatch) ||
		errors.Is(err, ErrUploadFailure)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "confirmed"
	case errors.Is(err, ErrSlotFullyBooked):
		return "fully_booked"
	case errors.Is(err, ErrNoOfficersAvailable):
		return "no_officers"
	case errors.Is(err, ErrUploadFailure):
		return "upload_failed"
	case isBusinessError(err):
		return "rejected"
	default:
		return "error"
	}
}
