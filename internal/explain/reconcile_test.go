package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexis-platform/trust-cli/internal/model"
	"github.com/nexis-platform/trust-cli/internal/rules"
)

func satisfiedFactor(title, desc string) model.Factor {
	return model.Factor{
		ID: "f-" + title, Title: title, Description: desc,
		Type: model.FactorPositive, Impact: model.ImpactHigh,
	}
}

func TestReconcileEmptyFactors(t *testing.T) {
	recs := Reconcile(rules.Catalog(), nil)
	require.Len(t, recs, rules.Count)

	for _, r := range recs {
		assert.False(t, r.Evaluated)
		assert.Nil(t, r.Factor)
		assert.Equal(t, NotEvaluated, r.Satisfaction)
		assert.Equal(t, "N/A", r.CurrentValue)
		assert.Equal(t, r.Rule.Threshold, r.RequiredValue)
		assert.Equal(t, 0, r.ProgressPercent)
		assert.Empty(t, r.GapDescription)
	}
}

func TestReconcileSatisfiedRule(t *testing.T) {
	factors := []model.Factor{
		satisfiedFactor("Strong Utility Payment Consistency", sampleDescription),
	}
	recs := Reconcile(rules.Catalog(), factors)

	var a1 *ReconciledRule
	for i := range recs {
		if recs[i].Rule.ID == "A1" {
			a1 = &recs[i]
		}
	}
	require.NotNil(t, a1)
	assert.True(t, a1.Evaluated)
	assert.Equal(t, Satisfied, a1.Satisfaction)
	assert.Equal(t, "18 months", a1.CurrentValue)
	assert.Equal(t, 100, a1.ProgressPercent)
	assert.Empty(t, a1.GapDescription)
	assert.Equal(t, "✓ Satisfied", a1.StatusLabel)
}

func TestReconcilePartialAndUnsatisfied(t *testing.T) {
	tests := []struct {
		name         string
		factorType   model.FactorType
		description  string
		wantSat      Satisfaction
		wantProgress int
		wantGap      string
	}{
		{
			name:       "partial with derivable numeric gap",
			factorType: model.FactorNeutral,
			description: "Rule D1: Account Tenure\n" +
				"Your Value: 14 months\nRequired Threshold: 18 months\nStatus: ◐ Partial",
			wantSat:      Partial,
			wantProgress: 50,
			wantGap:      "14 of 18 months",
		},
		{
			name:       "partial with percentage progress",
			factorType: model.FactorNeutral,
			description: "Rule A2: Payment Reliability Score\n" +
				"Your Value: documented\nRequired Threshold: strong reliability\n" +
				"Status: ◐ Partial\nCurrently at 68% of expectation.",
			wantSat:      Partial,
			wantProgress: 68,
			wantGap:      "Additional progress needed",
		},
		{
			name:       "unsatisfied without numbers falls back to label",
			factorType: model.FactorNegative,
			description: "Rule B1: Digital Transaction Activity\n" +
				"Your Value: See statement\nRequired Threshold: consistent activity\nStatus: ✗ Not Met",
			wantSat:      Partial, // overwritten below per factorType
			wantProgress: 50,
			wantGap:      "Requirements not met",
		},
		{
			name:       "status claiming exceeds is capped below satisfied",
			factorType: model.FactorNeutral,
			description: "Rule C3: Income Regularity\n" +
				"Your Value: irregular\nRequired Threshold: steady deposits\nStatus: slightly above baseline",
			wantSat:      Partial,
			wantProgress: 99,
			wantGap:      "Additional progress needed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := model.Factor{
				ID: "f1", Title: "factor", Description: tt.description,
				Type: tt.factorType, Impact: model.ImpactMedium,
			}
			recs := Reconcile(rules.Catalog(), []model.Factor{f})

			var matched *ReconciledRule
			for i := range recs {
				if recs[i].Evaluated {
					require.Nil(t, matched, "expected exactly one evaluated rule")
					matched = &recs[i]
				}
			}
			require.NotNil(t, matched)
			if tt.factorType == model.FactorNegative {
				assert.Equal(t, Unsatisfied, matched.Satisfaction)
			} else {
				assert.Equal(t, tt.wantSat, matched.Satisfaction)
			}
			assert.Equal(t, tt.wantProgress, matched.ProgressPercent)
			assert.Equal(t, tt.wantGap, matched.GapDescription)
		})
	}
}

func TestReconcileMatchByTitleOrDescription(t *testing.T) {
	byTitle := model.Factor{ID: "t", Title: "Excellent Spending Stability", Type: model.FactorPositive}
	byDesc := model.Factor{
		ID: "d", Title: "Savings pattern",
		Description: "Rule C2: Savings Discipline\nYour Value: 12%\nStatus: ✓ Satisfied",
		Type:        model.FactorPositive,
	}
	recs := Reconcile(rules.Catalog(), []model.Factor{byTitle, byDesc})

	evaluated := map[string]bool{}
	for _, r := range recs {
		if r.Evaluated {
			evaluated[r.Rule.ID] = true
		}
	}
	assert.True(t, evaluated["C1"], "C1 should match via title")
	assert.True(t, evaluated["C2"], "C2 should match via description")
	assert.Len(t, evaluated, 2)
}

func TestReconcileMultipleMatchFirstWins(t *testing.T) {
	// Two factors both mention Account Tenure: the first in server order is
	// the one the rule binds to. Best-effort join, not a strict one.
	first := model.Factor{ID: "first", Title: "Account Tenure strong", Type: model.FactorPositive}
	second := model.Factor{ID: "second", Title: "Account Tenure weak", Type: model.FactorNegative}
	recs := Reconcile(rules.Catalog(), []model.Factor{first, second})

	for _, r := range recs {
		if r.Rule.ID == "D1" {
			require.NotNil(t, r.Factor)
			assert.Equal(t, "first", r.Factor.ID)
			assert.Equal(t, Satisfied, r.Satisfaction)
		}
	}
}

func TestReconcileSingleFactorCanMatchSeveralRules(t *testing.T) {
	f := model.Factor{
		ID:    "multi",
		Title: "Account Tenure and Financial History Depth both documented",
		Type:  model.FactorPositive,
	}
	recs := Reconcile(rules.Catalog(), []model.Factor{f})

	var matched []string
	for _, r := range recs {
		if r.Evaluated {
			matched = append(matched, r.Rule.ID)
		}
	}
	assert.Equal(t, []string{"D1", "D2"}, matched)
}

func TestReconcileNoMatchDegrades(t *testing.T) {
	// A factor whose wording matches no catalog rule leaves every rule
	// not-evaluated; no error, no fabricated values.
	f := model.Factor{ID: "x", Title: "Entirely rephrased signal", Description: "free text", Type: model.FactorPositive}
	recs := Reconcile(rules.Catalog(), []model.Factor{f})
	for _, r := range recs {
		assert.Equal(t, NotEvaluated, r.Satisfaction)
	}
}

func TestReconcileDeterministic(t *testing.T) {
	factors := []model.Factor{
		satisfiedFactor("Utility Payment Consistency", sampleDescription),
		{ID: "n", Title: "Spending Stability", Type: model.FactorNeutral, Description: "Status: ◐ Partial\nAt 40% of target."},
	}
	a := Reconcile(rules.Catalog(), factors)
	b := Reconcile(rules.Catalog(), factors)
	assert.Equal(t, a, b)
}

func TestProgressSatisfiedInvariant(t *testing.T) {
	// ProgressPercent == 100 iff satisfied, even when a non-satisfied
	// factor's status text claims full compliance.
	f := model.Factor{
		ID: "p", Title: "Mobile Recharge Consistency",
		Description: "Status: ✓ Satisfied on paper",
		Type:        model.FactorNeutral,
	}
	recs := Reconcile(rules.Catalog(), []model.Factor{f})
	for _, r := range recs {
		if r.Rule.ID == "B3" {
			assert.Equal(t, Partial, r.Satisfaction)
			assert.Equal(t, 99, r.ProgressPercent)
		}
		if r.Satisfaction == Satisfied {
			assert.Equal(t, 100, r.ProgressPercent)
		} else {
			assert.Less(t, r.ProgressPercent, 100)
		}
	}
}
