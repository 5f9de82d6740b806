package contract

import (
	"context"

	"scireason-be/internal/entity"

	"github.com/google/uuid"
)

// SessionStore is the persistence surface the orchestrator works against.
// Two implementations exist: the gorm-backed store for normal operation and
// an in-memory store used when no database is configured. Selected once at
// bootstrap, never branched on per call.
type SessionStore interface {
	CreateSession(ctx context.Context, session *entity.ReasoningSession) error
	GetSession(ctx context.Context, id string) (*entity.ReasoningSession, error)
	// ListSessionsByUser returns the user's sessions ordered by most recently
	// updated first. The zero UUID lists unowned (local-mode) sessions.
	// A limit <= 0 returns the full list.
	ListSessionsByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.ReasoningSession, error)
	UpdateSession(ctx context.Context, session *entity.ReasoningSession) error
	// DeleteSession reports whether a session existed.
	DeleteSession(ctx context.Context, id string) (bool, error)

	// Card persistence. Cards are written once when a step mints them and
	// never mutated afterwards.
	SaveEvidenceCards(ctx context.Context, cards []*entity.EvidenceCard) error
	SaveHypothesisCards(ctx context.Context, cards []*entity.HypothesisCard) error
	SaveRoadmapCard(ctx context.Context, card *entity.RoadmapCard) error
	GetEvidenceCard(ctx context.Context, id string) (*entity.EvidenceCard, error)
	GetHypothesisCard(ctx context.Context, id string) (*entity.HypothesisCard, error)
	GetRoadmapCard(ctx context.Context, id string) (*entity.RoadmapCard, error)
	ListEvidenceCardsBySession(ctx context.Context, sessionId string) ([]*entity.EvidenceCard, error)
	ListHypothesisCardsBySession(ctx context.Context, sessionId string) ([]*entity.HypothesisCard, error)
}
