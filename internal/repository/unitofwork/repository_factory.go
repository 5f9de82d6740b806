package unitofwork

import (
	"scireason-be/internal/repository/contract"

	"gorm.io/gorm"
)

// RepositoryFactory builds repositories bound to a specific gorm handle,
// either the root connection or an open transaction.
type RepositoryFactory interface {
	UserRepository(db *gorm.DB) contract.UserRepository
	SessionRepository(db *gorm.DB) contract.SessionRepository
	EvidenceCardRepository(db *gorm.DB) contract.EvidenceCardRepository
	HypothesisCardRepository(db *gorm.DB) contract.HypothesisCardRepository
	RoadmapCardRepository(db *gorm.DB) contract.RoadmapCardRepository
}
