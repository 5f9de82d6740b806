package heuristic

import (
	"encoding/json"
	"fmt"
)

// The parsers below derive human-facing summaries from step output that the
// model already produced, without another model call. They are documented to
// the end user as heuristic, not ground truth. The thresholds (2x, 1.5x, 3x),
// weights and clamp bounds ARE the definition of HIGH/MEDIUM/LOW here, so
// they must not be retuned casually.

type EvidenceStrength string
type ConfidenceLevel string

const (
	StrengthLow    EvidenceStrength = "LOW"
	StrengthMedium EvidenceStrength = "MEDIUM"
	StrengthHigh   EvidenceStrength = "HIGH"

	ConfidenceLow    ConfidenceLevel = "LOW"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceHigh   ConfidenceLevel = "HIGH"
)

type CoreTakeaways struct {
	CanClaim    []string `json:"can_claim"`
	CannotClaim []string `json:"cannot_claim"`
}

type ExecutiveSummary struct {
	CoreTakeaways         CoreTakeaways    `json:"core_takeaways"`
	EvidenceStrength      EvidenceStrength `json:"evidence_strength"`
	EvidenceJustification string           `json:"evidence_justification"`
	Limitations           []string         `json:"limitations"`
	NextActions           []string         `json:"next_actions"`
}

type RejectedHypothesis struct {
	Hypothesis string `json:"hypothesis"`
	Reason     string `json:"reason"`
}

type DecisionSummary struct {
	BestCurrentAnswer  string               `json:"best_current_answer"`
	Unknowns           []string             `json:"unknowns"`
	SelectedHypothesis string               `json:"selected_hypothesis,omitempty"`
	RejectedHypotheses []RejectedHypothesis `json:"rejected_hypotheses"`
	ConfidenceLevel    ConfidenceLevel      `json:"confidence_level"`
	NextDecisions      []string             `json:"next_decisions"`
}

type ValidityScore struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

type ValidityScores struct {
	InternalValidity      ValidityScore `json:"internal_validity"`
	ExternalValidity      ValidityScore `json:"external_validity"`
	MeasurementValidity   ValidityScore `json:"measurement_validity"`
	StatisticalRobustness ValidityScore `json:"statistical_robustness"`
}

type PhaseFeasibility struct {
	Phase                 string   `json:"phase"`
	Duration              string   `json:"duration"`
	CostRange             string   `json:"cost_range"`
	FailureRisks          []string `json:"failure_risks"`
	GoNoGoDecisions       []string `json:"go_no_go_decisions"`
	RegulatoryBottlenecks []string `json:"regulatory_bottlenecks"`
}

// SessionSnapshot carries the two session fields the decision summary needs.
// Keeps this package free of the entity layer.
type SessionSnapshot struct {
	StepData       map[string]any
	CompletedSteps int
}

func serialize(v any) string {
	if v == nil {
		return "{}"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ParseExecutiveSummary classifies evidence strength for the accumulated step
// data and extracts claim/limitation sentences, with fixed fallbacks so the
// lists are never empty.
func ParseExecutiveSummary(stepData map[string]any) *ExecutiveSummary {
	text := serialize(stepData)

	skepticalCount := CountKeywords(text, SkepticalKeywords)
	positiveCount := CountKeywords(text, PositiveKeywords)

	strength := StrengthLow
	if positiveCount > skepticalCount*2 {
		strength = StrengthHigh
	} else if positiveCount > skepticalCount {
		strength = StrengthMedium
	}

	canClaim := ExtractPositiveClaims(text, 3)
	cannotClaim := ExtractNegativeClaims(text, 3)
	if len(canClaim) == 0 {
		canClaim = append(canClaim, "Preliminary observations require further validation")
	}
	if len(cannotClaim) == 0 {
		cannotClaim = append(cannotClaim, "Definitive conclusions pending additional evidence")
	}

	limitations := ExtractBullets(text, 5)
	if len(limitations) == 0 {
		limitations = append(limitations,
			"Limited sample size and generalizability",
			"Potential confounding variables not controlled",
		)
	}

	justification := "Insufficient evidence for confident conclusions"
	switch strength {
	case StrengthHigh:
		justification = "Multiple consistent findings with minimal contradictions"
	case StrengthMedium:
		justification = "Some supporting evidence but notable gaps remain"
	}

	return &ExecutiveSummary{
		CoreTakeaways:         CoreTakeaways{CanClaim: canClaim, CannotClaim: cannotClaim},
		EvidenceStrength:      strength,
		EvidenceJustification: justification,
		Limitations:           limitations,
		NextActions: []string{
			"Validate primary findings with independent dataset",
			"Address identified limitations in study design",
			"Quantify uncertainty ranges for key estimates",
		},
	}
}

// ParseDecisionSummary synthesizes a go/no-go style read of the whole session.
func ParseDecisionSummary(snapshot SessionSnapshot) *DecisionSummary {
	stepData := snapshot.StepData
	if stepData == nil {
		stepData = map[string]any{}
	}
	text := serialize(stepData)

	skepticalCount := CountKeywords(text, SkepticalKeywords)
	positiveCount := CountKeywords(text, PositiveKeywords)

	confidence := ConfidenceLow
	if positiveCount > skepticalCount*3 && snapshot.CompletedSteps > 5 {
		confidence = ConfidenceHigh
	} else if float64(positiveCount) > float64(skepticalCount)*1.5 {
		confidence = ConfidenceMedium
	}

	bestCurrentAnswer := "Preliminary investigation in progress"
	if problemDef := childMap(stepData, "step1", "problemDefinition"); problemDef != nil {
		condition := stringField(problemDef, "condition")
		unmetNeed := stringField(problemDef, "unmetNeed")
		bestCurrentAnswer = fmt.Sprintf("Investigating %s: %s", condition, unmetNeed)
	}

	unknowns := []string{}
	if step5, ok := stepData["step5"].(map[string]any); ok {
		for _, gap := range stringSlice(step5, "gaps") {
			unknowns = append(unknowns, gap)
			if len(unknowns) >= 3 {
				break
			}
		}
	}
	if len(unknowns) == 0 {
		unknowns = append(unknowns,
			"Mechanism of action not fully characterized",
			"Optimal dosing parameters undefined",
			"Long-term safety profile unknown",
		)
	}

	selected := ""
	if step8, ok := stepData["step8"].(map[string]any); ok {
		selected = stringField(step8, "selectedHypothesis")
	}

	rejected := []RejectedHypothesis{}
	if step7, ok := stepData["step7"].(map[string]any); ok {
		if critiques, ok := step7["critiques"].([]any); ok {
			for _, c := range critiques {
				critique, ok := c.(map[string]any)
				if !ok {
					continue
				}
				hypothesis := stringField(critique, "hypothesis")
				if hypothesis == "" {
					hypothesis = "Alternative hypothesis"
				}
				reason := stringField(critique, "reason")
				if reason == "" {
					reason = "Failed falsification criteria"
				}
				rejected = append(rejected, RejectedHypothesis{Hypothesis: hypothesis, Reason: reason})
				if len(rejected) >= 2 {
					break
				}
			}
		}
	}

	return &DecisionSummary{
		BestCurrentAnswer:  bestCurrentAnswer,
		Unknowns:           unknowns,
		SelectedHypothesis: selected,
		RejectedHypotheses: rejected,
		ConfidenceLevel:    confidence,
		NextDecisions: []string{
			"Determine if current evidence justifies proceeding to next phase",
			"Identify critical experiments to address key unknowns",
			"Assess resource requirements vs. probability of success",
		},
	}
}

var (
	biasWords    = []string{"bias", "confound", "control"}
	generalWords = []string{"population", "sample", "generaliz"}
	measureWords = []string{"measur", "valid", "reliab", "accuracy"}
	statWords    = []string{"statistic", "power", "significan", "p-value", "sample size"}
)

func clampScore(val int) int {
	if val < 10 {
		return 10
	}
	if val > 90 {
		return 90
	}
	return val
}

// ParseValidityScores scores the four validity dimensions on 10..90. Bias and
// generalizability mentions subtract (they flag threats), measurement and
// statistics mentions add (they flag that the dimension was addressed at all).
func ParseValidityScores(stepData map[string]any) *ValidityScores {
	text := serialize(stepData)

	biasCount := CountKeywords(text, biasWords)
	generalCount := CountKeywords(text, generalWords)
	measureCount := CountKeywords(text, measureWords)
	statCount := CountKeywords(text, statWords)

	baseScore := 50
	positiveBoost := CountKeywords(text, PositiveKeywords) * 5
	skepticalPenalty := CountKeywords(text, SkepticalKeywords) * 8

	tier := func(count int, high, some, none string) string {
		if count > 2 {
			return high
		}
		if count > 0 {
			return some
		}
		return none
	}

	return &ValidityScores{
		InternalValidity: ValidityScore{
			Score: clampScore(baseScore + positiveBoost - skepticalPenalty - biasCount*10),
			Explanation: tier(biasCount,
				"Multiple potential sources of bias identified",
				"Some bias concerns noted",
				"Limited bias assessment available"),
		},
		ExternalValidity: ValidityScore{
			Score: clampScore(baseScore + positiveBoost - skepticalPenalty - generalCount*8),
			Explanation: tier(generalCount,
				"Generalizability concerns across populations",
				"Population specificity may limit applicability",
				"External validity not explicitly addressed"),
		},
		MeasurementValidity: ValidityScore{
			Score: clampScore(baseScore + positiveBoost - skepticalPenalty + measureCount*5),
			Explanation: tier(measureCount,
				"Measurement methods discussed with some validation",
				"Limited measurement validation reported",
				"Measurement validity not assessed"),
		},
		StatisticalRobustness: ValidityScore{
			Score: clampScore(baseScore + positiveBoost - skepticalPenalty + statCount*5),
			Explanation: tier(statCount,
				"Statistical methods addressed with varying rigor",
				"Basic statistical considerations present",
				"Statistical robustness not evaluated"),
		},
	}
}

// ParsePhaseFeasibility returns industry-benchmark figures for the four
// clinical development phases. Static reference data; independent of the
// session, but served alongside the other analyses.
func ParsePhaseFeasibility() []PhaseFeasibility {
	return []PhaseFeasibility{
		{
			Phase:     "Preclinical",
			Duration:  "12-24 months",
			CostRange: "$2M - $10M",
			FailureRisks: []string{
				"Target not druggable (30-40% failure rate)",
				"Toxicity in animal models",
				"Lack of efficacy signal",
				"Manufacturing challenges",
			},
			GoNoGoDecisions: []string{
				"Demonstrate target engagement in relevant model",
				"Acceptable safety margin (>10x therapeutic dose)",
				"Reproducible efficacy across 2+ models",
			},
			RegulatoryBottlenecks: []string{
				"IND-enabling studies requirements",
				"GLP toxicology package",
				"CMC documentation",
			},
		},
		{
			Phase:     "Phase I",
			Duration:  "12-18 months",
			CostRange: "$5M - $15M",
			FailureRisks: []string{
				"Dose-limiting toxicity (10-15% failure)",
				"Poor PK/bioavailability",
				"Unexpected safety signals",
				"Enrollment challenges",
			},
			GoNoGoDecisions: []string{
				"MTD established with acceptable safety",
				"PK supports target exposure",
				"Preliminary biomarker activity",
			},
			RegulatoryBottlenecks: []string{
				"IND approval",
				"IRB/ethics approval",
				"Site qualification",
			},
		},
		{
			Phase:     "Phase II",
			Duration:  "24-36 months",
			CostRange: "$20M - $50M",
			FailureRisks: []string{
				"Lack of efficacy (50-60% failure rate)",
				"Inadequate therapeutic window",
				"Patient selection challenges",
				"Competitive landscape changes",
			},
			GoNoGoDecisions: []string{
				"Statistically significant efficacy signal",
				"Acceptable benefit-risk profile",
				"Clear dose-response relationship",
			},
			RegulatoryBottlenecks: []string{
				"End-of-Phase-2 meeting",
				"Endpoint agreement",
				"Biomarker qualification",
			},
		},
		{
			Phase:     "Phase III",
			Duration:  "36-60 months",
			CostRange: "$100M - $500M+",
			FailureRisks: []string{
				"Failed primary endpoint (40-50% failure)",
				"Safety signal in larger population",
				"Operational execution failures",
				"Regulatory rejection",
			},
			GoNoGoDecisions: []string{
				"Met primary efficacy endpoint",
				"Positive benefit-risk assessment",
				"Sufficient safety database",
			},
			RegulatoryBottlenecks: []string{
				"NDA/BLA submission",
				"Advisory committee",
				"Manufacturing inspection",
			},
		},
	}
}

// --- untyped step data helpers ---

func childMap(m map[string]any, keys ...string) map[string]any {
	current := m
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func stringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
