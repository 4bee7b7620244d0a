package similarity

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/platform/logger"
	"github.com/casemadad/courtflow/internal/store"
)

// service is the production implementation of Service backed by the
// case store.
type service struct {
	caseStore store.CaseStore
	logger    *slog.Logger
}

// Ensure service implements Service interface
var _ Service = (*service)(nil)

// NewService creates a similarity service using the given case store.
// If log is nil, the default logger is used.
func NewService(caseStore store.CaseStore, log *slog.Logger) Service {
	if caseStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("caseStore cannot be nil for similarity service")
	}
	if log == nil {
		log = slog.Default()
	}

	return &service{
		caseStore: caseStore,
		logger:    log.With(slog.String("component", "similarity_service")),
	}
}

// Similar implements Service.Similar.
func (s *service) Similar(ctx context.Context, caseID uuid.UUID) ([]SimilarCase, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ref, err := s.caseStore.GetByID(ctx, caseID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCaseNotFound
		}
		log.Error("failed to load reference case",
			slog.String("case_id", caseID.String()),
			slog.String("error", err.Error()))
		return nil, &ServiceError{
			Operation: "similar",
			Message:   "failed to load reference case",
			Err:       err,
		}
	}

	candidates, err := s.caseStore.ListSimilarCandidates(ctx, ref, CandidateLimit)
	if err != nil {
		log.Error("failed to load candidate cases",
			slog.String("case_id", caseID.String()),
			slog.String("error", err.Error()))
		return nil, &ServiceError{
			Operation: "similar",
			Message:   "failed to load candidate cases",
			Err:       err,
		}
	}

	refTags := make(map[string]struct{}, len(ref.IPCTags))
	for _, tag := range ref.IPCTags {
		refTags[tag] = struct{}{}
	}

	results := make([]SimilarCase, 0, len(candidates))
	for _, candidate := range candidates {
		shared := 0
		for _, tag := range candidate.IPCTags {
			if _, ok := refTags[tag]; ok {
				shared++
			}
		}

		// Score is tag overlap only; entity overlap influences
		// candidate selection but not the score.
		denominator := len(ref.IPCTags)
		if denominator < 1 {
			denominator = 1
		}
		score := float64(shared) / float64(denominator) * 100

		results = append(results, SimilarCase{
			Case:            candidate,
			SimilarityScore: math.Round(score*10) / 10,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})

	log.Debug("ranked similar cases",
		slog.String("case_id", caseID.String()),
		slog.Int("candidates", len(results)))
	return results, nil
}
