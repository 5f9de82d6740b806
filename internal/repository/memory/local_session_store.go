package memory

import (
	"context"
	"sort"
	"time"

	"scireason-be/internal/entity"
	"scireason-be/internal/repository/contract"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// LocalSessionStore keeps sessions and cards in process memory. Used when no
// database DSN is configured, so the service still works for local single-user
// runs. Sessions created here are unowned (zero user id) and vanish on restart.
type LocalSessionStore struct {
	sessions   *gocache.Cache
	evidence   *gocache.Cache
	hypotheses *gocache.Cache
	roadmaps   *gocache.Cache
}

func NewLocalSessionStore() contract.SessionStore {
	return &LocalSessionStore{
		sessions:   gocache.New(gocache.NoExpiration, 10*time.Minute),
		evidence:   gocache.New(gocache.NoExpiration, 10*time.Minute),
		hypotheses: gocache.New(gocache.NoExpiration, 10*time.Minute),
		roadmaps:   gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func cloneSession(s *entity.ReasoningSession) *entity.ReasoningSession {
	cp := *s
	cp.CompletedSteps = append([]int(nil), s.CompletedSteps...)
	cp.EvidenceCardIds = append([]string(nil), s.EvidenceCardIds...)
	cp.HypothesisCardIds = append([]string(nil), s.HypothesisCardIds...)
	if s.StepData != nil {
		cp.StepData = make(map[string]any, len(s.StepData))
		for k, v := range s.StepData {
			cp.StepData[k] = v
		}
	}
	if s.StopReason != nil {
		reason := *s.StopReason
		cp.StopReason = &reason
	}
	if s.RoadmapCardId != nil {
		id := *s.RoadmapCardId
		cp.RoadmapCardId = &id
	}
	return &cp
}

func (s *LocalSessionStore) CreateSession(_ context.Context, session *entity.ReasoningSession) error {
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	s.sessions.Set(session.Id, cloneSession(session), gocache.NoExpiration)
	return nil
}

func (s *LocalSessionStore) GetSession(_ context.Context, id string) (*entity.ReasoningSession, error) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, nil
	}
	return cloneSession(v.(*entity.ReasoningSession)), nil
}

func (s *LocalSessionStore) ListSessionsByUser(_ context.Context, userId uuid.UUID, limit, offset int) ([]*entity.ReasoningSession, error) {
	var out []*entity.ReasoningSession
	for _, item := range s.sessions.Items() {
		sess := item.Object.(*entity.ReasoningSession)
		if sess.UserId == userId {
			out = append(out, cloneSession(sess))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *LocalSessionStore) UpdateSession(_ context.Context, session *entity.ReasoningSession) error {
	session.UpdatedAt = time.Now()
	s.sessions.Set(session.Id, cloneSession(session), gocache.NoExpiration)
	return nil
}

func (s *LocalSessionStore) DeleteSession(_ context.Context, id string) (bool, error) {
	if _, ok := s.sessions.Get(id); !ok {
		return false, nil
	}
	s.sessions.Delete(id)
	for cardId, item := range s.evidence.Items() {
		if item.Object.(*entity.EvidenceCard).SessionId == id {
			s.evidence.Delete(cardId)
		}
	}
	for cardId, item := range s.hypotheses.Items() {
		if item.Object.(*entity.HypothesisCard).SessionId == id {
			s.hypotheses.Delete(cardId)
		}
	}
	for cardId, item := range s.roadmaps.Items() {
		if item.Object.(*entity.RoadmapCard).SessionId == id {
			s.roadmaps.Delete(cardId)
		}
	}
	return true, nil
}

func (s *LocalSessionStore) SaveEvidenceCards(_ context.Context, cards []*entity.EvidenceCard) error {
	for _, c := range cards {
		cp := *c
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = time.Now()
		}
		s.evidence.Set(c.Id, &cp, gocache.NoExpiration)
	}
	return nil
}

func (s *LocalSessionStore) SaveHypothesisCards(_ context.Context, cards []*entity.HypothesisCard) error {
	for _, c := range cards {
		cp := *c
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = time.Now()
		}
		s.hypotheses.Set(c.Id, &cp, gocache.NoExpiration)
	}
	return nil
}

func (s *LocalSessionStore) SaveRoadmapCard(_ context.Context, card *entity.RoadmapCard) error {
	cp := *card
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.roadmaps.Set(card.Id, &cp, gocache.NoExpiration)
	return nil
}

func (s *LocalSessionStore) GetEvidenceCard(_ context.Context, id string) (*entity.EvidenceCard, error) {
	v, ok := s.evidence.Get(id)
	if !ok {
		return nil, nil
	}
	cp := *v.(*entity.EvidenceCard)
	return &cp, nil
}

func (s *LocalSessionStore) GetHypothesisCard(_ context.Context, id string) (*entity.HypothesisCard, error) {
	v, ok := s.hypotheses.Get(id)
	if !ok {
		return nil, nil
	}
	cp := *v.(*entity.HypothesisCard)
	return &cp, nil
}

func (s *LocalSessionStore) GetRoadmapCard(_ context.Context, id string) (*entity.RoadmapCard, error) {
	v, ok := s.roadmaps.Get(id)
	if !ok {
		return nil, nil
	}
	cp := *v.(*entity.RoadmapCard)
	return &cp, nil
}

func (s *LocalSessionStore) ListEvidenceCardsBySession(_ context.Context, sessionId string) ([]*entity.EvidenceCard, error) {
	var out []*entity.EvidenceCard
	for _, item := range s.evidence.Items() {
		card := item.Object.(*entity.EvidenceCard)
		if card.SessionId == sessionId {
			cp := *card
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (s *LocalSessionStore) ListHypothesisCardsBySession(_ context.Context, sessionId string) ([]*entity.HypothesisCard, error) {
	var out []*entity.HypothesisCard
	for _, item := range s.hypotheses.Items() {
		card := item.Object.(*entity.HypothesisCard)
		if card.SessionId == sessionId {
			cp := *card
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}
