package model

import (
	"time"

	"gorm.io/datatypes"
)

type EvidenceCard struct {
	Id        string         `gorm:"type:varchar(80);primaryKey"`
	SessionId string         `gorm:"type:varchar(64);not null;index"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (EvidenceCard) TableName() string {
	return "evidence_cards"
}

type HypothesisCard struct {
	Id        string         `gorm:"type:varchar(80);primaryKey"`
	SessionId string         `gorm:"type:varchar(64);not null;index"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (HypothesisCard) TableName() string {
	return "hypothesis_cards"
}

type RoadmapCard struct {
	Id        string         `gorm:"type:varchar(80);primaryKey"`
	SessionId string         `gorm:"type:varchar(64);not null;index"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (RoadmapCard) TableName() string {
	return "roadmap_cards"
}
