package contract

import (
	"context"

	"scireason-be/internal/entity"
	"scireason-be/internal/repository/specification"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.ReasoningSession) error
	Update(ctx context.Context, session *entity.ReasoningSession) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReasoningSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReasoningSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
