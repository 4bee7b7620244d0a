package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/domain"
)

// DocumentStore defines the interface for case document metadata
// persistence. File contents live in external storage and are out of
// scope here.
type DocumentStore interface {
	// Create saves a new document record.
	// Returns ErrInvalidEntity if the referenced case does not exist.
	Create(ctx context.Context, doc *domain.Document) error

	// GetByID retrieves a document by its unique ID.
	// Returns ErrDocumentNotFound if the document does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)

	// ListByCase retrieves all documents attached to a case, ordered
	// by upload time descending.
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]*domain.Document, error)

	// Delete removes a document record by its ID.
	// Returns ErrDocumentNotFound if the document does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
