package dto

import (
	"time"
)

type CreateSessionRequest struct {
	ProblemStatement string `json:"problemStatement" validate:"required,min=10"`
	Mode             string `json:"mode" validate:"required,oneof=evidence roadmap"`
}

type SessionResponse struct {
	Id                string         `json:"id"`
	ProblemStatement  string         `json:"problemStatement"`
	Mode              string         `json:"mode"`
	Status            string         `json:"status"`
	CurrentStep       int            `json:"currentStep"`
	CompletedSteps    []int          `json:"completedSteps"`
	StopReason        *string        `json:"stopReason,omitempty"`
	StepData          map[string]any `json:"stepData"`
	EvidenceCardIds   []string       `json:"evidenceCardIds"`
	HypothesisCardIds []string       `json:"hypothesisCardIds"`
	RoadmapCardId     *string        `json:"roadmapCardId,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

type SessionListItemResponse struct {
	Id               string    `json:"id"`
	ProblemStatement string    `json:"problemStatement"`
	Mode             string    `json:"mode"`
	Status           string    `json:"status"`
	CurrentStep      int       `json:"currentStep"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type SessionCardsResponse struct {
	EvidenceCards   []*CardResponse `json:"evidenceCards"`
	HypothesisCards []*CardResponse `json:"hypothesisCards"`
}

type CardResponse struct {
	Id        string         `json:"id"`
	SessionId string         `json:"sessionId"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}
