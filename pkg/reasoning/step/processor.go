// Package step executes one step of one reasoning session against the model
// collaborator. Every failure mode is absorbed here and returned as a
// structured STOP result; Process never returns an error and never panics up
// to the caller.
package step

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"scireason-be/pkg/llm"
	"scireason-be/pkg/reasoning/prompt"
)

const (
	StatusSuccess = "SUCCESS"
	StatusStop    = "STOP"

	// Stop reason taxonomy. InvalidStep is a programming/index error,
	// SafetyConstraint is the step-0 gate rejecting the question,
	// MissingEvidence is a failed model call or unparseable response.
	ReasonInvalidStep      = "InvalidStep"
	ReasonSafetyConstraint = "SafetyConstraint"
	ReasonMissingEvidence  = "MissingEvidence"

	retryMessage = "Failed to process this step. Please try again."

	maxResponseTokens = 8192
)

// Params identifies one step of one session plus the context it needs.
type Params struct {
	SessionID        string         `json:"sessionId"`
	CurrentStep      int            `json:"currentStep"`
	ProblemStatement string         `json:"problemStatement"`
	Mode             string         `json:"mode"`
	PreviousStepData map[string]any `json:"previousStepData"`
}

// Result is the wire shape of one processed step.
type Result struct {
	Status           string           `json:"status"`
	StepID           string           `json:"stepId"`
	Data             map[string]any   `json:"data,omitempty"`
	EvidenceCards    []map[string]any `json:"evidenceCards,omitempty"`
	HypothesisCards  []map[string]any `json:"hypothesisCards,omitempty"`
	Reason           string           `json:"reason,omitempty"`
	WhatIsNeededNext []string         `json:"whatIsNeededNext,omitempty"`
	SuggestedQueries []string         `json:"suggestedQueries,omitempty"`
}

type Processor struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewProcessor(provider llm.LLMProvider, logger *log.Logger) *Processor {
	return &Processor{
		provider: provider,
		logger:   logger,
	}
}

// Process runs exactly one step. All paths yield a well-formed Result with
// Status set; the step pointer is never advanced here, that is the
// orchestrator's job.
func (p *Processor) Process(ctx context.Context, params Params) *Result {
	stepId := fmt.Sprintf("step%d", params.CurrentStep)

	userPrompt, err := prompt.Render(params.CurrentStep, params.ProblemStatement, params.PreviousStepData)
	if err != nil {
		return &Result{
			Status:           StatusStop,
			StepID:           stepId,
			Reason:           ReasonInvalidStep,
			WhatIsNeededNext: []string{"Invalid step number"},
		}
	}

	data, err := p.invoke(ctx, userPrompt)
	if err != nil {
		p.logf("step %s failed: %v", stepId, err)
		return &Result{
			Status:           StatusStop,
			StepID:           stepId,
			Reason:           ReasonMissingEvidence,
			WhatIsNeededNext: []string{retryMessage},
		}
	}

	// Step 0 is the validity gate: a rejected question stops the session
	// without advancing, surfacing the model's rephrasing suggestion.
	if params.CurrentStep == 0 {
		if valid, ok := data["valid"].(bool); !ok || !valid {
			suggestion, _ := data["suggestion"].(string)
			return &Result{
				Status:           StatusStop,
				StepID:           stepId,
				Reason:           ReasonSafetyConstraint,
				Data:             map[string]any{"summary": suggestion},
				WhatIsNeededNext: []string{suggestion},
			}
		}
	}

	result := &Result{
		Status: StatusSuccess,
		StepID: stepId,
		Data:   data,
	}
	result.EvidenceCards = assignCardIds(data, "evidenceCards", params.SessionID, "EV")
	result.HypothesisCards = assignCardIds(data, "hypothesisCards", params.SessionID, "HYP")
	return result
}

func (p *Processor) invoke(ctx context.Context, userPrompt string) (map[string]any, error) {
	response, err := p.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: prompt.SystemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.WithMaxTokens(maxResponseTokens))
	if err != nil {
		return nil, fmt.Errorf("model invocation: %w", err)
	}

	raw, err := ExtractJSONObject(response)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("parse step response: %w", err)
	}
	return data, nil
}

// assignCardIds relabels generated cards with stable session-scoped ids
// ({sessionId}_EV001, ...), 1-based in array order. The raw step data keeps
// the model's local ids; only the returned cards carry the durable ones.
func assignCardIds(data map[string]any, field, sessionId, prefix string) []map[string]any {
	raw, ok := data[field].([]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	cards := make([]map[string]any, 0, len(raw))
	for i, entry := range raw {
		card, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		relabeled := make(map[string]any, len(card))
		for k, v := range card {
			relabeled[k] = v
		}
		relabeled["id"] = fmt.Sprintf("%s_%s%03d", sessionId, prefix, i+1)
		cards = append(cards, relabeled)
	}
	return cards
}

func (p *Processor) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
