package dto

// ProcessStepRequest mirrors the stateless step endpoint's wire contract.
// previousStepData carries everything the prompt templates embed, so the
// endpoint needs no session row to answer.
type ProcessStepRequest struct {
	SessionID        string         `json:"sessionId" validate:"required"`
	ProblemStatement string         `json:"problemStatement" validate:"required"`
	Mode             string         `json:"mode" validate:"required,oneof=evidence roadmap"`
	// CurrentStep is range-checked by the processor, which answers an
	// out-of-range step with a STOP result rather than a plain 400.
	CurrentStep      int            `json:"currentStep"`
	PreviousStepData map[string]any `json:"previousStepData"`
}

type WorkflowStepResponse struct {
	Step        int    `json:"step"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
