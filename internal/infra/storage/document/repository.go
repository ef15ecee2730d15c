package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GovAppointmentService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"appointment_id",
	"user_id",
	"public_id",
	"original_name",
	"file_size",
	"mime_type",
	"url",
	"document_type",
	"status",
	"processed_by_id",
	"processed_at",
	"notes",
	"uploaded_at",
}

// Repository репозиторий метаданных документов; сами файлы лежат в blob store
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория документов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет метаданные загруженного документа
func (r *Repository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("documents").
		Columns(
			"appointment_id",
			"user_id",
			"public_id",
			"original_name",
			"file_size",
			"mime_type",
			"url",
			"document_type",
		).
		Values(
			doc.AppointmentID,
			doc.UserID,
			doc.PublicID,
			doc.OriginalName,
			doc.FileSize,
			doc.MimeType,
			doc.URL,
			doc.DocumentType,
		).
		Suffix("RETURNING id, status, uploaded_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var (
		status     string
		uploadedAt sql.NullTime
	)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&doc.ID, &status, &uploadedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	doc.Status = domain.DocumentStatus(status)
	doc.UploadedAt = uploadedAt.Time

	return doc, nil
}

// GetByID получает документ по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	doc, err := scanDocument(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return doc, nil
}

// ListByAppointment документы приёма, новые первыми
func (r *Repository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*domain.Document, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("documents").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("uploaded_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	docs := make([]*domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByAppointment - scan row: %v", ErrScanRow, err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByAppointment - rows error: %v", ErrScanRow, err)
	}

	return docs, nil
}

// UpdateProcessing записывает решение сотрудника по документу
func (r *Repository) UpdateProcessing(ctx context.Context, id int64, status domain.DocumentStatus, officerID int64, notes *string) (*domain.Document, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("documents").
		Set("status", string(status)).
		Set("processed_by_id", officerID).
		Set("processed_at", squirrel.Expr("NOW()")).
		Set("notes", notes).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateProcessing - build update query: %v", ErrBuildQuery, err)
	}

	doc, err := scanDocument(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%w: UpdateProcessing - execute update: %v", ErrExecQuery, err)
	}

	return doc, nil
}

// Delete удаляет запись о документе
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var (
		doc          domain.Document
		documentType sql.NullString
		status       string
		processedBy  sql.NullInt64
		processedAt  sql.NullTime
		notes        sql.NullString
		uploadedAt   sql.NullTime
	)

	err := row.Scan(
		&doc.ID,
		&doc.AppointmentID,
		&doc.UserID,
		&doc.PublicID,
		&doc.OriginalName,
		&doc.FileSize,
		&doc.MimeType,
		&doc.URL,
		&documentType,
		&status,
		&processedBy,
		&processedAt,
		&notes,
		&uploadedAt,
	)
	if err != nil {
		return nil, err
	}

	if documentType.Valid {
		doc.DocumentType = &documentType.String
	}
	doc.Status = domain.DocumentStatus(status)
	if processedBy.Valid {
		doc.ProcessedByID = &processedBy.Int64
	}
	if processedAt.Valid {
		doc.ProcessedAt = &processedAt.Time
	}
	if notes.Valid {
		doc.Notes = &notes.String
	}
	doc.UploadedAt = uploadedAt.Time

	return &doc, nil
}
