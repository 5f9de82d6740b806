package implementation

import (
	"context"
	"errors"

	"scireason-be/internal/entity"
	"scireason-be/internal/mapper"
	"scireason-be/internal/model"
	"scireason-be/internal/repository/contract"
	"scireason-be/internal/repository/specification"

	"gorm.io/gorm"
)

type EvidenceCardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CardMapper
}

func NewEvidenceCardRepository(db *gorm.DB) contract.EvidenceCardRepository {
	return &EvidenceCardRepositoryImpl{db: db, mapper: mapper.NewCardMapper()}
}

func (r *EvidenceCardRepositoryImpl) CreateBatch(ctx context.Context, cards []*entity.EvidenceCard) error {
	if len(cards) == 0 {
		return nil
	}
	models := make([]*model.EvidenceCard, len(cards))
	for i, c := range cards {
		models[i] = r.mapper.EvidenceToModel(c)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *EvidenceCardRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EvidenceCard, error) {
	var m model.EvidenceCard
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.EvidenceToEntity(&m), nil
}

func (r *EvidenceCardRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EvidenceCard, error) {
	var models []*model.EvidenceCard
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.EvidenceCard, len(models))
	for i, m := range models {
		entities[i] = r.mapper.EvidenceToEntity(m)
	}
	return entities, nil
}

func (r *EvidenceCardRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.EvidenceCard{}).Error
}

type HypothesisCardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CardMapper
}

func NewHypothesisCardRepository(db *gorm.DB) contract.HypothesisCardRepository {
	return &HypothesisCardRepositoryImpl{db: db, mapper: mapper.NewCardMapper()}
}

func (r *HypothesisCardRepositoryImpl) CreateBatch(ctx context.Context, cards []*entity.HypothesisCard) error {
	if len(cards) == 0 {
		return nil
	}
	models := make([]*model.HypothesisCard, len(cards))
	for i, c := range cards {
		models[i] = r.mapper.HypothesisToModel(c)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *HypothesisCardRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HypothesisCard, error) {
	var m model.HypothesisCard
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.HypothesisToEntity(&m), nil
}

func (r *HypothesisCardRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HypothesisCard, error) {
	var models []*model.HypothesisCard
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.HypothesisCard, len(models))
	for i, m := range models {
		entities[i] = r.mapper.HypothesisToEntity(m)
	}
	return entities, nil
}

func (r *HypothesisCardRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.HypothesisCard{}).Error
}

type RoadmapCardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CardMapper
}

func NewRoadmapCardRepository(db *gorm.DB) contract.RoadmapCardRepository {
	return &RoadmapCardRepositoryImpl{db: db, mapper: mapper.NewCardMapper()}
}

func (r *RoadmapCardRepositoryImpl) Create(ctx context.Context, card *entity.RoadmapCard) error {
	m := r.mapper.RoadmapToModel(card)
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *RoadmapCardRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RoadmapCard, error) {
	var m model.RoadmapCard
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RoadmapToEntity(&m), nil
}

func (r *RoadmapCardRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.RoadmapCard{}).Error
}
