package service

import (
	"context"

	"scireason-be/internal/entity"
	"scireason-be/internal/repository/contract"
	"scireason-be/internal/repository/memory"
	"scireason-be/pkg/reasoning/heuristic"

	"github.com/google/uuid"
)

// IAnalysisService derives the read-only summaries from a session's
// accumulated step data. Results are cheap to compute but the consumer warms
// the cache after every step so hot sessions answer without recomputing.
type IAnalysisService interface {
	ExecutiveSummary(ctx context.Context, userId uuid.UUID, sessionId string) (*heuristic.ExecutiveSummary, error)
	DecisionSummary(ctx context.Context, userId uuid.UUID, sessionId string) (*heuristic.DecisionSummary, error)
	ValidityScores(ctx context.Context, userId uuid.UUID, sessionId string) (*heuristic.ValidityScores, error)
	PhaseFeasibility(ctx context.Context, userId uuid.UUID, sessionId string) ([]heuristic.PhaseFeasibility, error)
}

type analysisService struct {
	store contract.SessionStore
	cache *memory.AnalysisCache
}

func NewAnalysisService(store contract.SessionStore, cache *memory.AnalysisCache) IAnalysisService {
	return &analysisService{store: store, cache: cache}
}

func (s *analysisService) ExecutiveSummary(ctx context.Context, userId uuid.UUID, sessionId string) (*heuristic.ExecutiveSummary, error) {
	if v, ok := s.cache.Get(sessionId, "summary"); ok {
		if summary, ok := v.(*heuristic.ExecutiveSummary); ok {
			return summary, nil
		}
	}
	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	summary := heuristic.ParseExecutiveSummary(session.StepData)
	s.cache.Set(sessionId, "summary", summary)
	return summary, nil
}

func (s *analysisService) DecisionSummary(ctx context.Context, userId uuid.UUID, sessionId string) (*heuristic.DecisionSummary, error) {
	if v, ok := s.cache.Get(sessionId, "decision"); ok {
		if decision, ok := v.(*heuristic.DecisionSummary); ok {
			return decision, nil
		}
	}
	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	decision := heuristic.ParseDecisionSummary(heuristic.SessionSnapshot{
		StepData:       session.StepData,
		CompletedSteps: len(session.CompletedSteps),
	})
	s.cache.Set(sessionId, "decision", decision)
	return decision, nil
}

func (s *analysisService) ValidityScores(ctx context.Context, userId uuid.UUID, sessionId string) (*heuristic.ValidityScores, error) {
	if v, ok := s.cache.Get(sessionId, "validity"); ok {
		if scores, ok := v.(*heuristic.ValidityScores); ok {
			return scores, nil
		}
	}
	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	scores := heuristic.ParseValidityScores(session.StepData)
	s.cache.Set(sessionId, "validity", scores)
	return scores, nil
}

func (s *analysisService) PhaseFeasibility(ctx context.Context, userId uuid.UUID, sessionId string) ([]heuristic.PhaseFeasibility, error) {
	// Static table, but the session must exist and belong to the caller.
	if _, err := s.ownedSession(ctx, userId, sessionId); err != nil {
		return nil, err
	}
	return heuristic.ParsePhaseFeasibility(), nil
}

func (s *analysisService) ownedSession(ctx context.Context, userId uuid.UUID, sessionId string) (*entity.ReasoningSession, error) {
	session, err := s.store.GetSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId != userId {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
