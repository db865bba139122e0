package explain

import (
	"math"

	"github.com/nexis-platform/trust-cli/internal/model"
	"github.com/nexis-platform/trust-cli/internal/rules"
)

// complianceMax is the fixed points denominator shown in the rule evaluation
// summary.
const complianceMax = 360

// topFactorCount is how many factors the dashboard surfaces.
const topFactorCount = 3

// Summary aggregates per-rule outcomes for the rule evaluation panel.
type Summary struct {
	TotalRules         int `json:"total_rules"`
	Satisfied          int `json:"satisfied"`
	PartiallySatisfied int `json:"partially_satisfied"`
	NotMet             int `json:"not_met"`
	NotEvaluated       int `json:"not_evaluated"`
	CompliancePoints   int `json:"compliance_points"`
	ComplianceMax      int `json:"compliance_max"`
}

// Display is the fully reconciled, renderable explanation of one assessment.
// Views (CLI, HTTP facade) consume it without further decision logic.
type Display struct {
	Score          int              `json:"score"`
	Classification Classification   `json:"classification"`
	Summary        Summary          `json:"summary"`
	Rules          []ReconciledRule `json:"rules"`
	TopFactors     []model.Factor   `json:"top_factors"`
}

// BuildDisplay runs the full engine over one assessment: classification,
// reconciliation against the shared catalog, and summary aggregation.
func BuildDisplay(score int, factors []model.Factor) Display {
	reconciled := Reconcile(rules.Catalog(), factors)

	s := Summary{
		TotalRules:       len(reconciled),
		CompliancePoints: int(math.Round(float64(score) * 0.4)),
		ComplianceMax:    complianceMax,
	}
	for _, r := range reconciled {
		switch r.Satisfaction {
		case Satisfied:
			s.Satisfied++
		case Partial:
			s.PartiallySatisfied++
		case Unsatisfied:
			s.NotMet++
		default:
			s.NotEvaluated++
		}
	}

	top := factors
	if len(top) > topFactorCount {
		top = top[:topFactorCount]
	}

	return Display{
		Score:          score,
		Classification: Classify(score),
		Summary:        s,
		Rules:          reconciled,
		TopFactors:     top,
	}
}
