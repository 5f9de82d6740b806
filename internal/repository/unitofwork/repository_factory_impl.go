package unitofwork

import (
	"scireason-be/internal/repository/contract"
	"scireason-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct{}

func NewRepositoryFactory() RepositoryFactory {
	return &RepositoryFactoryImpl{}
}

func (f *RepositoryFactoryImpl) UserRepository(db *gorm.DB) contract.UserRepository {
	return implementation.NewUserRepository(db)
}

func (f *RepositoryFactoryImpl) SessionRepository(db *gorm.DB) contract.SessionRepository {
	return implementation.NewSessionRepository(db)
}

func (f *RepositoryFactoryImpl) EvidenceCardRepository(db *gorm.DB) contract.EvidenceCardRepository {
	return implementation.NewEvidenceCardRepository(db)
}

func (f *RepositoryFactoryImpl) HypothesisCardRepository(db *gorm.DB) contract.HypothesisCardRepository {
	return implementation.NewHypothesisCardRepository(db)
}

func (f *RepositoryFactoryImpl) RoadmapCardRepository(db *gorm.DB) contract.RoadmapCardRepository {
	return implementation.NewRoadmapCardRepository(db)
}
