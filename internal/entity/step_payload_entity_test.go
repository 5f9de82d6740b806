package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeStepField(t *testing.T) {
	stepData := map[string]any{
		"step1": map[string]any{
			"problemDefinition": map[string]any{
				"condition": "chronic pain",
				"unmetNeed": "opioid-free management",
				"constraints": []any{
					map[string]any{"type": "clinical", "description": "outpatient only"},
				},
			},
		},
		"step9": map[string]any{
			"roadmapCard": "not an object",
		},
	}

	def, ok := DecodeStepField[ProblemDefinition](stepData, "step1", "problemDefinition")
	if assert.True(t, ok) {
		assert.Equal(t, "chronic pain", def.Condition)
		assert.Equal(t, "opioid-free management", def.UnmetNeed)
		if assert.Len(t, def.Constraints, 1) {
			assert.Equal(t, "clinical", def.Constraints[0].Type)
		}
	}

	_, ok = DecodeStepField[ProblemDefinition](stepData, "step2", "problemDefinition")
	assert.False(t, ok, "missing step")

	_, ok = DecodeStepField[ProblemDefinition](stepData, "step1", "missing")
	assert.False(t, ok, "missing field")

	_, ok = DecodeStepField[RoadmapPayload](stepData, "step9", "roadmapCard")
	assert.False(t, ok, "shape mismatch")
}
