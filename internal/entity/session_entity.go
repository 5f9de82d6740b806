package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReasoningSession is one run of the step pipeline for one research question.
// StepData maps step ids ("step0".."step9") to that step's raw payload; the
// orchestrator treats the payloads as opaque beyond the chaining it needs.
type ReasoningSession struct {
	Id                string
	UserId            uuid.UUID // zero UUID when the session is local/unowned
	ProblemStatement  string
	Mode              string
	Status            string
	CurrentStep       int
	CompletedSteps    []int
	StopReason        *string
	StepData          map[string]any
	EvidenceCardIds   []string
	HypothesisCardIds []string
	RoadmapCardId     *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Terminal reports whether the session can no longer advance.
func (s *ReasoningSession) Terminal() bool {
	return s.Status != "in_progress"
}

// HasCompleted reports whether a step index is already recorded. Guards the
// completedSteps at-most-once invariant against reprocessing.
func (s *ReasoningSession) HasCompleted(step int) bool {
	for _, done := range s.CompletedSteps {
		if done == step {
			return true
		}
	}
	return false
}
