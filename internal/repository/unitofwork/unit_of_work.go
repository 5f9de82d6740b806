package unitofwork

import (
	"context"

	"scireason-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	EvidenceCardRepository() contract.EvidenceCardRepository
	HypothesisCardRepository() contract.HypothesisCardRepository
	RoadmapCardRepository() contract.RoadmapCardRepository
}
