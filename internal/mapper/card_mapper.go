package mapper

import (
	"encoding/json"

	"scireason-be/internal/entity"
	"scireason-be/internal/model"
)

type CardMapper struct{}

func NewCardMapper() *CardMapper {
	return &CardMapper{}
}

func (m *CardMapper) EvidenceToEntity(c *model.EvidenceCard) *entity.EvidenceCard {
	if c == nil {
		return nil
	}
	payload := map[string]any{}
	if len(c.Payload) > 0 {
		_ = json.Unmarshal(c.Payload, &payload)
	}
	return &entity.EvidenceCard{
		Id:        c.Id,
		SessionId: c.SessionId,
		Payload:   payload,
		CreatedAt: c.CreatedAt,
	}
}

func (m *CardMapper) EvidenceToModel(c *entity.EvidenceCard) *model.EvidenceCard {
	if c == nil {
		return nil
	}
	return &model.EvidenceCard{
		Id:        c.Id,
		SessionId: c.SessionId,
		Payload:   marshalJSON(c.Payload, "{}"),
		CreatedAt: c.CreatedAt,
	}
}

func (m *CardMapper) HypothesisToEntity(c *model.HypothesisCard) *entity.HypothesisCard {
	if c == nil {
		return nil
	}
	payload := map[string]any{}
	if len(c.Payload) > 0 {
		_ = json.Unmarshal(c.Payload, &payload)
	}
	return &entity.HypothesisCard{
		Id:        c.Id,
		SessionId: c.SessionId,
		Payload:   payload,
		CreatedAt: c.CreatedAt,
	}
}

func (m *CardMapper) HypothesisToModel(c *entity.HypothesisCard) *model.HypothesisCard {
	if c == nil {
		return nil
	}
	return &model.HypothesisCard{
		Id:        c.Id,
		SessionId: c.SessionId,
		Payload:   marshalJSON(c.Payload, "{}"),
		CreatedAt: c.CreatedAt,
	}
}

func (m *CardMapper) RoadmapToEntity(c *model.RoadmapCard) *entity.RoadmapCard {
	if c == nil {
		return nil
	}
	payload := map[string]any{}
	if len(c.Payload) > 0 {
		_ = json.Unmarshal(c.Payload, &payload)
	}
	return &entity.RoadmapCard{
		Id:        c.Id,
		SessionId: c.SessionId,
		Payload:   payload,
		CreatedAt: c.CreatedAt,
	}
}

func (m *CardMapper) RoadmapToModel(c *entity.RoadmapCard) *model.RoadmapCard {
	if c == nil {
		return nil
	}
	return &model.RoadmapCard{
		Id:        c.Id,
		SessionId: c.SessionId,
		Payload:   marshalJSON(c.Payload, "{}"),
		CreatedAt: c.CreatedAt,
	}
}
