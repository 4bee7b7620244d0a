package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DocumentStatus represents the processing state of a case document.
type DocumentStatus string

// Possible document status values
const (
	DocumentStatusUploaded   DocumentStatus = "uploaded"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Common validation errors for Document
var (
	ErrEmptyDocumentID       = errors.New("document ID cannot be empty")
	ErrEmptyDocumentCaseID   = errors.New("document case ID cannot be empty")
	ErrEmptyDocumentFilename = errors.New("document filename cannot be empty")
	ErrInvalidDocumentStatus = errors.New("invalid document status")
)

// Document is the metadata record for a file attached to a case. The
// binary itself lives in external storage; this entity only carries
// what the case views and the complexity scoring need.
type Document struct {
	ID           uuid.UUID      `json:"id"`
	CaseID       uuid.UUID      `json:"case_id"`
	Filename     string         `json:"filename"`
	OriginalName string         `json:"original_name"`
	MimeType     string         `json:"mime_type"`
	SizeBytes    int64          `json:"size_bytes"`
	Status       DocumentStatus `json:"status"`
	UploadedBy   uuid.UUID      `json:"uploaded_by"`
	UploadedAt   time.Time      `json:"uploaded_at"`
}

// NewDocument creates a new Document attached to the given case.
// Returns an error if validation fails.
func NewDocument(
	caseID uuid.UUID,
	filename, originalName, mimeType string,
	sizeBytes int64,
	uploadedBy uuid.UUID,
) (*Document, error) {
	doc := &Document{
		ID:           uuid.New(),
		CaseID:       caseID,
		Filename:     filename,
		OriginalName: originalName,
		MimeType:     mimeType,
		SizeBytes:    sizeBytes,
		Status:       DocumentStatusUploaded,
		UploadedBy:   uploadedBy,
		UploadedAt:   time.Now().UTC(),
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate checks if the Document has valid data.
func (d *Document) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDocumentID
	}

	if d.CaseID == uuid.Nil {
		return ErrEmptyDocumentCaseID
	}

	if d.Filename == "" {
		return ErrEmptyDocumentFilename
	}

	switch d.Status {
	case DocumentStatusUploaded, DocumentStatusProcessing,
		DocumentStatusCompleted, DocumentStatusFailed:
	default:
		return ErrInvalidDocumentStatus
	}

	return nil
}
