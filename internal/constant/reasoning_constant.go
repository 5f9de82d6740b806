package constant

const (
	SessionModeEvidence = "evidence"
	SessionModeRoadmap  = "roadmap"

	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
	SessionStatusStopped    = "stopped"

	// Single source of truth for the completion boundary. Evidence mode runs
	// steps 0..6, roadmap mode runs the full 0..9 pipeline; a session is
	// completed the moment currentStep reaches the cutoff.
	MaxStepsEvidence = 7
	MaxStepsRoadmap  = 10

	GenericStopReason = "Failed to process. Please try again."
)

// MaxSteps returns the step cutoff for the given mode. Unknown modes get the
// roadmap cutoff; mode is validated at the API boundary.
func MaxSteps(mode string) int {
	if mode == SessionModeEvidence {
		return MaxStepsEvidence
	}
	return MaxStepsRoadmap
}

// WorkflowStep describes one stage of the pipeline for UI consumers.
type WorkflowStep struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var WorkflowSteps = []WorkflowStep{
	{Id: "step0", Name: "Input", Description: "Research question or problem statement"},
	{Id: "step1", Name: "Problem Definition", Description: "Formalize the scientific problem with observable gaps"},
	{Id: "step2", Name: "Evidence Mapping", Description: "Retrieve and structure evidence from literature"},
	{Id: "step3", Name: "Validity Assessment", Description: "Evaluate evidence quality across 4 dimensions"},
	{Id: "step4", Name: "Evidence Map", Description: "Identify consistencies, contradictions, and gaps"},
	{Id: "step5", Name: "Gap List", Description: "Formalize numbered gaps in knowledge"},
	{Id: "step6", Name: "Hypothesis Generation", Description: "Generate 3-5 falsifiable hypotheses"},
	{Id: "step7", Name: "Critic & Falsification", Description: "Attack hypotheses and add counter-evidence"},
	{Id: "step8", Name: "Decision Gating", Description: "Select testable hypotheses by plausibility"},
	{Id: "step9", Name: "R&D Roadmap", Description: "Create gated research development plan"},
}
