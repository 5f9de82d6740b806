package unitofwork

import (
	"context"
	"fmt"

	"scireason-be/internal/repository/contract"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db      *gorm.DB
	tx      *gorm.DB
	factory RepositoryFactory
}

func NewUnitOfWork(db *gorm.DB, factory RepositoryFactory) UnitOfWork {
	return &UnitOfWorkImpl{
		db:      db,
		factory: factory,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return u.factory.UserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SessionRepository() contract.SessionRepository {
	return u.factory.SessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EvidenceCardRepository() contract.EvidenceCardRepository {
	return u.factory.EvidenceCardRepository(u.getDB())
}

func (u *UnitOfWorkImpl) HypothesisCardRepository() contract.HypothesisCardRepository {
	return u.factory.HypothesisCardRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RoadmapCardRepository() contract.RoadmapCardRepository {
	return u.factory.RoadmapCardRepository(u.getDB())
}
