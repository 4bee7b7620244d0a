// Package similarity ranks cases related to a reference case by
// shared IPC tags and extracted entities.
package similarity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/domain"
)

// CandidateLimit caps how many related cases are fetched before
// scoring. The limit applies to the store query, so the ranking is
// only the best among the first matches in the store's default order,
// not a true global top-5.
const CandidateLimit = 5

// SimilarCase is one related case with its similarity score. The case
// fields marshal inline, so the wire shape is the case object plus a
// similarity_score field. The score is computed from tag overlap only,
// even though candidate selection also considers entity overlap; that
// asymmetry mirrors the standing policy.
type SimilarCase struct {
	*domain.Case
	SimilarityScore float64 `json:"similarity_score"`
}

// Service finds cases similar to a reference case.
type Service interface {
	// Similar returns up to CandidateLimit cases sharing at least one
	// IPC tag or entity with the reference case, ordered by descending
	// similarity score. The reference case itself is never included.
	// Returns ErrCaseNotFound if the reference case does not exist.
	Similar(ctx context.Context, caseID uuid.UUID) ([]SimilarCase, error)
}

// ErrCaseNotFound indicates that the reference case does not exist.
var ErrCaseNotFound = errors.New("case not found")

// ServiceError wraps errors from the similarity service with
// additional context.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
