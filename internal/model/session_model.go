package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReasoningSession keeps the variable-shape collections (step data, completed
// steps, card id lists) as JSON columns; the session id is app-assigned
// because card ids embed it before the row exists.
type ReasoningSession struct {
	Id                string         `gorm:"type:varchar(64);primaryKey"`
	UserId            uuid.UUID      `gorm:"type:uuid;index"`
	ProblemStatement  string         `gorm:"type:text;not null"`
	Mode              string         `gorm:"type:varchar(20);not null"`
	Status            string         `gorm:"type:varchar(20);not null;default:'in_progress'"`
	CurrentStep       int            `gorm:"not null;default:0"`
	CompletedSteps    datatypes.JSON `gorm:"not null;default:'[]'"`
	StopReason        *string        `gorm:"type:text"`
	StepData          datatypes.JSON `gorm:"not null;default:'{}'"`
	EvidenceCardIds   datatypes.JSON `gorm:"not null;default:'[]'"`
	HypothesisCardIds datatypes.JSON `gorm:"not null;default:'[]'"`
	RoadmapCardId     *string        `gorm:"type:varchar(80)"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime;index"`
}

func (ReasoningSession) TableName() string {
	return "reasoning_sessions"
}
