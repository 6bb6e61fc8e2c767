package models

import "time"

// Verdict is the terminal human/machine call for one account.
type Verdict string

const (
	VerdictAIAgent          Verdict = "AI_AGENT"
	VerdictHumanOperator    Verdict = "HUMAN_OPERATOR"
	VerdictMixed            Verdict = "MIXED"
	VerdictScriptedBot      Verdict = "SCRIPTED_BOT"
	VerdictUnknown          Verdict = "UNKNOWN"
	VerdictInsufficientData Verdict = "INSUFFICIENT_DATA"
)

// ValidVerdict reports whether v is one of the terminal verdicts.
func ValidVerdict(v Verdict) bool {
	switch v {
	case VerdictAIAgent, VerdictHumanOperator, VerdictMixed,
		VerdictScriptedBot, VerdictUnknown, VerdictInsufficientData:
		return true
	}
	return false
}

// Quality tags how well-supported an analyzer's feature vector is, driven by
// sample counts. Insufficient is distinct from a real zero score.
type Quality string

const (
	QualityHigh         Quality = "high"
	QualityMedium       Quality = "medium"
	QualityLow          Quality = "low"
	QualityInsufficient Quality = "insufficient"
)

// Evidence is one signal's contribution to a verdict.
type Evidence struct {
	Signal       string  `json:"signal"`
	Label        string  `json:"label"`
	Contribution float64 `json:"contribution"`
}

// Classification is the terminal entity for one author. It is a pure function
// of the current corpus snapshot: recomputed in full every run, never updated
// incrementally.
//
// Verdict and ModelFamily are independent axes. A MIXED account can still
// carry a confident model-family attribution for its machine-written share.
type Classification struct {
	Author          string             `json:"author"`
	Verdict         Verdict            `json:"verdict"`
	Confidence      float64            `json:"confidence"`
	ModelFamily     string             `json:"model_family"`
	ModelConfidence float64            `json:"model_confidence"`
	Evidence        []Evidence         `json:"evidence"`
	SubScores       map[string]float64 `json:"sub_scores"`
}

// RunReport is the artifact one pipeline run produces. Downstream reporting
// consumes it as-is; the pipeline writes it new-then-swap so a crashed run
// never clobbers the last good report.
type RunReport struct {
	RunID        string               `json:"run_id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	AccountCount int                  `json:"account_count"`
	Capabilities map[string]bool      `json:"capabilities"`
	Counts       map[Verdict]int      `json:"verdict_counts"`
	Results      []Classification     `json:"results"`
}
