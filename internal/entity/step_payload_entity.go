package entity

import "encoding/json"

// Typed views over the step payloads whose shape downstream code relies on.
// Step data stays a raw map on the session (the model can and does drift);
// these decoders give callers a typed window with an explicit ok flag instead
// of a closed union.

type ProblemConstraint struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type ProblemDefinition struct {
	Condition     string              `json:"condition"`
	UnmetNeed     string              `json:"unmetNeed"`
	ObservableGap string              `json:"observableGap"`
	Constraints   []ProblemConstraint `json:"constraints"`
}

type Contradiction struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Note string `json:"note"`
}

type EvidenceMap struct {
	ConsistentFindings []string        `json:"consistentFindings"`
	Contradictions     []Contradiction `json:"contradictions"`
	Gaps               []string        `json:"gaps"`
}

type RoadmapPhase struct {
	PhaseId         string `json:"phaseId"`
	Goal            string `json:"goal"`
	Method          string `json:"method"`
	SuccessCriteria string `json:"successCriteria"`
	FailureCriteria string `json:"failureCriteria"`
	Decision        string `json:"decision"` // proceed|stop|pivot
}

type RoadmapPayload struct {
	Id               string         `json:"id"`
	Objective        string         `json:"objective"`
	LinkedHypotheses []string       `json:"linkedHypotheses"`
	Phases           []RoadmapPhase `json:"phases"`
	GlobalRisks      []RoadmapRisk  `json:"globalRisks"`
	ExitConditions   []RoadmapExit  `json:"exitConditions"`
}

type RoadmapRisk struct {
	Description string `json:"description"`
	Mitigation  string `json:"mitigation"`
}

type RoadmapExit struct {
	Description string `json:"description"`
}

// DecodeStepField decodes stepData[stepId][field] into T via a JSON
// round-trip. Returns false when the path is missing or does not match T.
func DecodeStepField[T any](stepData map[string]any, stepId, field string) (*T, bool) {
	stepPayload, ok := stepData[stepId].(map[string]any)
	if !ok {
		return nil, false
	}
	raw, ok := stepPayload[field]
	if !ok || raw == nil {
		return nil, false
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false
	}
	return &out, true
}
