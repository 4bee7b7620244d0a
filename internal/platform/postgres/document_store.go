package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/domain"
	"github.com/casemadad/courtflow/internal/platform/logger"
	"github.com/casemadad/courtflow/internal/store"
)

// PostgresDocumentStore implements the store.DocumentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDocumentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDocumentStore creates a new PostgreSQL implementation of the DocumentStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDocumentStore(db store.DBTX, log *slog.Logger) *PostgresDocumentStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresDocumentStore{
		db:     db,
		logger: log.With(slog.String("component", "document_store")),
	}
}

// Ensure PostgresDocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*PostgresDocumentStore)(nil)

// Create implements store.DocumentStore.Create
// Returns store.ErrInvalidEntity if the referenced case does not exist.
func (s *PostgresDocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := doc.Validate(); err != nil {
		log.Warn("document validation failed during create",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return err
	}

	query := `
		INSERT INTO documents (
			id, case_id, filename, original_name, mime_type,
			size_bytes, status, uploaded_by, uploaded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.CaseID,
		doc.Filename,
		doc.OriginalName,
		doc.MimeType,
		doc.SizeBytes,
		doc.Status,
		doc.UploadedBy,
		doc.UploadedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during document creation",
				slog.String("document_id", doc.ID.String()),
				slog.String("case_id", doc.CaseID.String()))
			return fmt.Errorf("%w: case with ID %s not found",
				store.ErrInvalidEntity, doc.CaseID)
		}
		log.Error("failed to create document",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return MapError(err)
	}

	log.Info("document created successfully",
		slog.String("document_id", doc.ID.String()),
		slog.String("case_id", doc.CaseID.String()))
	return nil
}

// GetByID implements store.DocumentStore.GetByID
// Returns store.ErrDocumentNotFound if the document does not exist.
func (s *PostgresDocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	query := `
		SELECT id, case_id, filename, original_name, mime_type,
		       size_bytes, status, uploaded_by, uploaded_at
		FROM documents
		WHERE id = $1
	`

	var doc domain.Document
	var status string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.CaseID,
		&doc.Filename,
		&doc.OriginalName,
		&doc.MimeType,
		&doc.SizeBytes,
		&status,
		&doc.UploadedBy,
		&doc.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDocumentNotFound
		}
		return nil, MapError(err)
	}

	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}

// ListByCase implements store.DocumentStore.ListByCase
func (s *PostgresDocumentStore) ListByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error) {
	query := `
		SELECT id, case_id, filename, original_name, mime_type,
		       size_bytes, status, uploaded_by, uploaded_at
		FROM documents
		WHERE case_id = $1
		ORDER BY uploaded_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*domain.Document
	for rows.Next() {
		var doc domain.Document
		var status string
		err := rows.Scan(
			&doc.ID,
			&doc.CaseID,
			&doc.Filename,
			&doc.OriginalName,
			&doc.MimeType,
			&doc.SizeBytes,
			&status,
			&doc.UploadedBy,
			&doc.UploadedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		doc.Status = domain.DocumentStatus(status)
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return docs, nil
}

// Delete implements store.DocumentStore.Delete
// Returns store.ErrDocumentNotFound if the document does not exist.
func (s *PostgresDocumentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete document",
			slog.String("error", err.Error()),
			slog.String("document_id", id.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrDocumentNotFound
	}

	log.Info("document deleted", slog.String("document_id", id.String()))
	return nil
}
