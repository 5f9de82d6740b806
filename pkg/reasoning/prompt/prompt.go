// Package prompt renders the fixed prompt for each step of the reasoning
// pipeline. Each renderer embeds the literal problem statement plus the
// prior-step payloads that step depends on; the dependency set per step is
// hardcoded. The JSON schemas inside the prompts are an external contract
// shared with every consumer of the step output, so their field names and
// enumerations must not drift.
package prompt

import (
	"encoding/json"
	"fmt"
)

// SystemPrompt frames every model call. The model is a structured-data
// producer, never an advisor.
const SystemPrompt = `You are a Scientific Reasoning Engine. Your role is to transform research questions into structured, traceable scientific analysis.

CRITICAL RULES:
1. You are NOT a chatbot. You produce structured data following exact schemas.
2. You NEVER provide medical advice, dosages, treatment protocols, or synthesis instructions.
3. Every claim must be traceable to evidence or clearly marked as a gap.
4. Prefer "I don't know yet" (structured) over inventing information.

DEFINITIONS:
- Problem: Observable gap between current state and desired outcome with measurable endpoints
- Hypothesis: Falsifiable proposition with mechanism, assumptions, and testable predictions
- Evidence: Specific result from research, contextualized by model/population/dose/time
- Validity: Assessment of evidence weight across internal, external, mechanistic, and robustness dimensions

OUTPUT: Always respond with valid JSON matching the requested step schema.`

// MaxStep is the highest step index a renderer exists for.
const MaxStep = 9

type renderFunc func(problemStatement string, previous map[string]any) string

var registry = map[int]renderFunc{
	0: renderStep0,
	1: renderStep1,
	2: renderStep2,
	3: renderStep3,
	4: renderStep4,
	5: renderStep5,
	6: renderStep6,
	7: renderStep7,
	8: renderStep8,
	9: renderStep9,
}

// Render returns the user prompt for the given step. The step index must be
// registered; callers translate the error into their InvalidStep handling.
func Render(step int, problemStatement string, previous map[string]any) (string, error) {
	fn, ok := registry[step]
	if !ok {
		return "", fmt.Errorf("no prompt registered for step %d", step)
	}
	return fn(problemStatement, previous), nil
}

// embed serializes a nested field of the accumulated step data, falling back
// to the given literal when the path is absent.
func embed(previous map[string]any, stepId, field, fallback string) string {
	stepPayload, ok := previous[stepId].(map[string]any)
	if !ok {
		return fallback
	}
	value, ok := stepPayload[field]
	if !ok || value == nil {
		return fallback
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fallback
	}
	return string(b)
}

func embedStep(previous map[string]any, stepId string) string {
	value, ok := previous[stepId]
	if !ok || value == nil {
		return "{}"
	}
	b, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func renderStep0(problemStatement string, _ map[string]any) string {
	return fmt.Sprintf(`Analyze this research question and confirm it's suitable for scientific analysis:

"%s"

Check for:
1. Is this a valid scientific/research question (not personal medical advice)?
2. Can it be analyzed with available scientific literature?
3. Does it have observable/measurable aspects?

If valid, respond with:
{
  "valid": true,
  "summary": "Brief summary of what will be analyzed"
}

If invalid (requests medical advice, dosages, synthesis, or personal treatment), respond with:
{
  "valid": false,
  "reason": "Explanation why this cannot be processed",
  "suggestion": "How to rephrase as a valid research question"
}`, problemStatement)
}

func renderStep1(problemStatement string, _ map[string]any) string {
	return fmt.Sprintf(`Create a formal Problem Definition for:

"%s"

Respond with this exact JSON structure:
{
  "problemDefinition": {
    "condition": "The medical/scientific condition or phenomenon",
    "unmetNeed": "What current solutions fail to address",
    "observableGap": "Specific measurable gap in knowledge or treatment",
    "constraints": [
      {"type": "biological|physical|clinical", "description": "Specific constraint"}
    ]
  }
}`, problemStatement)
}

func renderStep2(problemStatement string, previous map[string]any) string {
	context := ""
	if _, ok := previous["step1"].(map[string]any); ok {
		context = fmt.Sprintf("Context: %s", embed(previous, "step1", "problemDefinition", "{}"))
	}
	return fmt.Sprintf(`Based on the problem definition, generate 3-5 Evidence Cards representing key findings from scientific literature.

Problem: "%s"
%s

Create evidence cards following this schema:
{
  "evidenceCards": [
    {
      "id": "EV001",
      "source": {
        "type": "paper|clinical_trial|meta_analysis|dataset|guideline",
        "citation": "Author et al., Journal (Year)",
        "link": "https://doi.org/..."
      },
      "context": {
        "model": "in_vitro|animal|human",
        "species": "if applicable",
        "population": "patient population if human",
        "condition": "specific condition studied"
      },
      "intervention": {
        "agent": "drug/therapy/intervention name",
        "dose": "if applicable",
        "route": "if applicable",
        "duration": "if applicable"
      },
      "outcome": {
        "variable": "what was measured",
        "direction": "increase|decrease|no_effect",
        "magnitude": "effect size if available"
      },
      "validityProfile": {
        "internalValidity": "high|medium|low",
        "externalValidity": "high|medium|low",
        "mechanisticValidity": "high|medium|low",
        "robustness": "high|medium|low",
        "criticalLimitations": ["limitation 1", "limitation 2"]
      }
    }
  ],
  "summary": "Brief overview of evidence found",
  "evidenceCount": 3
}

Generate realistic evidence based on known scientific literature for this condition.`, problemStatement, context)
}

func renderStep3(_ string, previous map[string]any) string {
	return fmt.Sprintf(`Assess the validity of the evidence gathered.

Evidence: %s

Provide a validity assessment:
{
  "validityAssessment": {
    "overallQuality": "high|medium|low",
    "strongestEvidence": ["EV001 - reason"],
    "weakestEvidence": ["EV002 - reason"],
    "majorConcerns": ["concern 1"],
    "confidenceLevel": "high|medium|low"
  },
  "summary": "Overall assessment of evidence quality"
}`, embed(previous, "step2", "evidenceCards", "[]"))
}

func renderStep4(_ string, previous map[string]any) string {
	return fmt.Sprintf(`Create an Evidence Map showing relationships between findings.

Evidence: %s

Generate:
{
  "evidenceMap": {
    "consistentFindings": ["EV001", "EV002"],
    "contradictions": [
      {"a": "EV001", "b": "EV003", "note": "Explanation of contradiction"}
    ],
    "gaps": ["Gap 1 description", "Gap 2 description"]
  },
  "summary": "Key patterns and conflicts in the evidence"
}`, embed(previous, "step2", "evidenceCards", "[]"))
}

func renderStep5(_ string, previous map[string]any) string {
	return fmt.Sprintf(`Generate a numbered Gap List from the evidence map.

Evidence Map: %s

Format:
{
  "gaps": [
    "GAP1: Description of knowledge gap",
    "GAP2: Description of another gap"
  ],
  "prioritizedGaps": ["GAP1", "GAP2"],
  "summary": "Critical gaps that need addressing"
}`, embed(previous, "step4", "evidenceMap", "{}"))
}

func renderStep6(problemStatement string, previous map[string]any) string {
	return fmt.Sprintf(`Generate 2-3 Hypothesis Cards based on the identified gaps.

Gaps: %s
Problem: "%s"

Create hypotheses:
{
  "hypothesisCards": [
    {
      "id": "HYP001",
      "statement": "Clear, testable hypothesis statement",
      "mechanism": {
        "description": "Proposed mechanism of action",
        "assumptions": ["assumption 1", "assumption 2"]
      },
      "scope": {
        "condition": "Target condition",
        "population": "Target population"
      },
      "predictions": [
        {"observable": "What would be observed if true", "expectedDirection": "increase|decrease|no_change"}
      ],
      "supportingEvidence": ["EV001"],
      "counterEvidence": [],
      "falsificationCriteria": [
        {"description": "What would prove this wrong", "decisiveOutcome": "Specific result that disproves"}
      ]
    }
  ],
  "hypothesesCount": 2,
  "summary": "Overview of generated hypotheses"
}`, embed(previous, "step5", "gaps", "[]"), problemStatement)
}

func renderStep7(_ string, previous map[string]any) string {
	return fmt.Sprintf(`Critique the hypotheses and add counter-evidence.

Hypotheses: %s

For each hypothesis, identify weaknesses:
{
  "critique": [
    {
      "hypothesisId": "HYP001",
      "strengths": ["strength 1"],
      "weaknesses": ["weakness 1"],
      "alternativeExplanations": ["alternative 1"],
      "falsificationRisk": "high|medium|low"
    }
  ],
  "eliminatedHypotheses": [],
  "remainingHypotheses": ["HYP001", "HYP002"],
  "summary": "Critical analysis of hypotheses"
}`, embed(previous, "step6", "hypothesisCards", "[]"))
}

func renderStep8(_ string, previous map[string]any) string {
	return fmt.Sprintf(`Select the most promising hypotheses for testing.

Critique: %s

Evaluate and rank:
{
  "ranking": [
    {
      "hypothesisId": "HYP001",
      "plausibility": "high|medium|low",
      "testability": "high|medium|low",
      "risk": "high|medium|low",
      "priority": 1
    }
  ],
  "selectedForRoadmap": ["HYP001"],
  "rationale": "Why these were selected",
  "summary": "Decision gating results"
}`, embedStep(previous, "step7"))
}

func renderStep9(_ string, previous map[string]any) string {
	return fmt.Sprintf(`Create an R&D Roadmap for the selected hypotheses.

Selected: %s

Generate:
{
  "roadmapCard": {
    "id": "RM001",
    "objective": "Overall research objective",
    "linkedHypotheses": ["HYP001"],
    "phases": [
      {
        "phaseId": "P1",
        "goal": "Phase goal",
        "method": "Proposed methodology",
        "successCriteria": "What defines success",
        "failureCriteria": "What defines failure",
        "decision": "proceed|stop|pivot"
      }
    ],
    "globalRisks": [
      {"description": "Risk description", "mitigation": "How to mitigate"}
    ],
    "exitConditions": [
      {"description": "When to stop the research"}
    ]
  },
  "summary": "R&D roadmap overview"
}`, embed(previous, "step8", "selectedForRoadmap", "[]"))
}
