package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testProblem = "Can transcranial stimulation reduce migraine frequency?"

func TestRenderAllSteps(t *testing.T) {
	for step := 0; step <= MaxStep; step++ {
		t.Run(fmt.Sprintf("step%d", step), func(t *testing.T) {
			out, err := Render(step, testProblem, map[string]any{})
			assert.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestRenderUnknownStep(t *testing.T) {
	for _, step := range []int{-1, 10, 42} {
		_, err := Render(step, testProblem, nil)
		assert.Error(t, err, "step %d", step)
	}
}

func TestRenderEmbedsProblemStatement(t *testing.T) {
	// Steps that take the raw question embed it verbatim.
	for _, step := range []int{0, 1, 2, 6} {
		out, err := Render(step, testProblem, map[string]any{})
		assert.NoError(t, err)
		assert.Contains(t, out, testProblem, "step %d", step)
	}
}

func TestRenderStep2ChainsProblemDefinition(t *testing.T) {
	previous := map[string]any{
		"step1": map[string]any{
			"problemDefinition": map[string]any{"condition": "migraine"},
		},
	}

	out, err := Render(2, testProblem, previous)
	assert.NoError(t, err)
	assert.Contains(t, out, `"condition":"migraine"`)

	// Without step1 the context block is omitted entirely.
	bare, err := Render(2, testProblem, map[string]any{})
	assert.NoError(t, err)
	assert.NotContains(t, bare, "Context:")
}

func TestRenderChainingFallbacks(t *testing.T) {
	// Later steps fall back to empty JSON literals when the chain is missing.
	tests := []struct {
		step     int
		fallback string
	}{
		{3, "[]"},  // step2.evidenceCards
		{4, "[]"},  // step2.evidenceCards
		{5, "{}"},  // step4.evidenceMap
		{7, "[]"},  // step6.hypothesisCards
		{8, "{}"},  // whole step7 payload
		{9, "[]"},  // step8.selectedForRoadmap
	}

	for _, tt := range tests {
		out, err := Render(tt.step, testProblem, map[string]any{})
		assert.NoError(t, err, "step %d", tt.step)
		assert.Contains(t, out, tt.fallback, "step %d", tt.step)
	}
}

func TestRenderStep7EmbedsHypotheses(t *testing.T) {
	previous := map[string]any{
		"step6": map[string]any{
			"hypothesisCards": []any{
				map[string]any{"id": "HYP001", "statement": "Cortical excitability drives attacks"},
			},
		},
	}

	out, err := Render(7, testProblem, previous)
	assert.NoError(t, err)
	assert.Contains(t, out, "Cortical excitability drives attacks")
}

func TestRenderStep0MentionsValidityGate(t *testing.T) {
	out, err := Render(0, testProblem, nil)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, `"valid": true`))
	assert.True(t, strings.Contains(out, `"valid": false`))
	assert.Contains(t, out, "suggestion")
}
