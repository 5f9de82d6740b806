package mapper

import (
	"encoding/json"

	"scireason-be/internal/entity"
	"scireason-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.ReasoningSession) *entity.ReasoningSession {
	if s == nil {
		return nil
	}

	completedSteps := []int{}
	if len(s.CompletedSteps) > 0 {
		_ = json.Unmarshal(s.CompletedSteps, &completedSteps)
	}
	stepData := map[string]any{}
	if len(s.StepData) > 0 {
		_ = json.Unmarshal(s.StepData, &stepData)
	}
	evidenceIds := []string{}
	if len(s.EvidenceCardIds) > 0 {
		_ = json.Unmarshal(s.EvidenceCardIds, &evidenceIds)
	}
	hypothesisIds := []string{}
	if len(s.HypothesisCardIds) > 0 {
		_ = json.Unmarshal(s.HypothesisCardIds, &hypothesisIds)
	}

	return &entity.ReasoningSession{
		Id:                s.Id,
		UserId:            s.UserId,
		ProblemStatement:  s.ProblemStatement,
		Mode:              s.Mode,
		Status:            s.Status,
		CurrentStep:       s.CurrentStep,
		CompletedSteps:    completedSteps,
		StopReason:        s.StopReason,
		StepData:          stepData,
		EvidenceCardIds:   evidenceIds,
		HypothesisCardIds: hypothesisIds,
		RoadmapCardId:     s.RoadmapCardId,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.ReasoningSession) *model.ReasoningSession {
	if s == nil {
		return nil
	}

	return &model.ReasoningSession{
		Id:                s.Id,
		UserId:            s.UserId,
		ProblemStatement:  s.ProblemStatement,
		Mode:              s.Mode,
		Status:            s.Status,
		CurrentStep:       s.CurrentStep,
		CompletedSteps:    marshalJSON(s.CompletedSteps, "[]"),
		StopReason:        s.StopReason,
		StepData:          marshalJSON(s.StepData, "{}"),
		EvidenceCardIds:   marshalJSON(s.EvidenceCardIds, "[]"),
		HypothesisCardIds: marshalJSON(s.HypothesisCardIds, "[]"),
		RoadmapCardId:     s.RoadmapCardId,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func marshalJSON(v any, fallback string) datatypes.JSON {
	if v == nil {
		return datatypes.JSON(fallback)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON(fallback)
	}
	return datatypes.JSON(b)
}
