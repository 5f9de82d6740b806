package contract

import (
	"context"

	"scireason-be/internal/entity"
	"scireason-be/internal/repository/specification"
)

type EvidenceCardRepository interface {
	CreateBatch(ctx context.Context, cards []*entity.EvidenceCard) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EvidenceCard, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EvidenceCard, error)
	DeleteBySessionId(ctx context.Context, sessionId string) error
}

type HypothesisCardRepository interface {
	CreateBatch(ctx context.Context, cards []*entity.HypothesisCard) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HypothesisCard, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HypothesisCard, error)
	DeleteBySessionId(ctx context.Context, sessionId string) error
}

type RoadmapCardRepository interface {
	Create(ctx context.Context, card *entity.RoadmapCard) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RoadmapCard, error)
	DeleteBySessionId(ctx context.Context, sessionId string) error
}
