package entity

import "time"

// Cards are immutable once minted by the step processor. The payload keeps
// the model-produced structure (source/context/intervention/outcome for
// evidence, statement/mechanism/predictions for hypotheses, phases for
// roadmaps); the id carries the stable {sessionId}_EV{NNN} / _HYP{NNN} form.

type EvidenceCard struct {
	Id        string
	SessionId string
	Payload   map[string]any
	CreatedAt time.Time
}

type HypothesisCard struct {
	Id        string
	SessionId string
	Payload   map[string]any
	CreatedAt time.Time
}

type RoadmapCard struct {
	Id        string
	SessionId string
	Payload   map[string]any
	CreatedAt time.Time
}
