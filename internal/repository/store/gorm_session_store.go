package store

import (
	"context"

	"scireason-be/internal/entity"
	"scireason-be/internal/repository/contract"
	"scireason-be/internal/repository/specification"
	"scireason-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// GormSessionStore backs the orchestrator with postgres. Session row plus
// card rows written inside one transaction via the unit of work.
type GormSessionStore struct {
	uowFactory func() unitofwork.UnitOfWork
}

func NewGormSessionStore(uowFactory func() unitofwork.UnitOfWork) contract.SessionStore {
	return &GormSessionStore{uowFactory: uowFactory}
}

func (s *GormSessionStore) CreateSession(ctx context.Context, session *entity.ReasoningSession) error {
	uow := s.uowFactory()
	return uow.SessionRepository().Create(ctx, session)
}

func (s *GormSessionStore) GetSession(ctx context.Context, id string) (*entity.ReasoningSession, error) {
	uow := s.uowFactory()
	return uow.SessionRepository().FindOne(ctx, specification.ByStringID{ID: id})
}

func (s *GormSessionStore) ListSessionsByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.ReasoningSession, error) {
	uow := s.uowFactory()
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}
	return uow.SessionRepository().FindAll(ctx, specs...)
}

func (s *GormSessionStore) UpdateSession(ctx context.Context, session *entity.ReasoningSession) error {
	uow := s.uowFactory()
	return uow.SessionRepository().Update(ctx, session)
}

func (s *GormSessionStore) DeleteSession(ctx context.Context, id string) (bool, error) {
	uow := s.uowFactory()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	existing, err := uow.SessionRepository().FindOne(ctx, specification.ByStringID{ID: id})
	if err != nil {
		uow.Rollback()
		return false, err
	}
	if existing == nil {
		uow.Rollback()
		return false, nil
	}

	if err := uow.EvidenceCardRepository().DeleteBySessionId(ctx, id); err != nil {
		uow.Rollback()
		return false, err
	}
	if err := uow.HypothesisCardRepository().DeleteBySessionId(ctx, id); err != nil {
		uow.Rollback()
		return false, err
	}
	if err := uow.RoadmapCardRepository().DeleteBySessionId(ctx, id); err != nil {
		uow.Rollback()
		return false, err
	}
	if err := uow.SessionRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return false, err
	}

	if err := uow.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *GormSessionStore) SaveEvidenceCards(ctx context.Context, cards []*entity.EvidenceCard) error {
	uow := s.uowFactory()
	return uow.EvidenceCardRepository().CreateBatch(ctx, cards)
}

func (s *GormSessionStore) SaveHypothesisCards(ctx context.Context, cards []*entity.HypothesisCard) error {
	uow := s.uowFactory()
	return uow.HypothesisCardRepository().CreateBatch(ctx, cards)
}

func (s *GormSessionStore) SaveRoadmapCard(ctx context.Context, card *entity.RoadmapCard) error {
	uow := s.uowFactory()
	return uow.RoadmapCardRepository().Create(ctx, card)
}

func (s *GormSessionStore) GetEvidenceCard(ctx context.Context, id string) (*entity.EvidenceCard, error) {
	uow := s.uowFactory()
	return uow.EvidenceCardRepository().FindOne(ctx, specification.ByStringID{ID: id})
}

func (s *GormSessionStore) GetHypothesisCard(ctx context.Context, id string) (*entity.HypothesisCard, error) {
	uow := s.uowFactory()
	return uow.HypothesisCardRepository().FindOne(ctx, specification.ByStringID{ID: id})
}

func (s *GormSessionStore) GetRoadmapCard(ctx context.Context, id string) (*entity.RoadmapCard, error) {
	uow := s.uowFactory()
	return uow.RoadmapCardRepository().FindOne(ctx, specification.ByStringID{ID: id})
}

func (s *GormSessionStore) ListEvidenceCardsBySession(ctx context.Context, sessionId string) ([]*entity.EvidenceCard, error) {
	uow := s.uowFactory()
	return uow.EvidenceCardRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
}

func (s *GormSessionStore) ListHypothesisCardsBySession(ctx context.Context, sessionId string) ([]*entity.HypothesisCard, error) {
	uow := s.uowFactory()
	return uow.HypothesisCardRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
}
