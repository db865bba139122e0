package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexis-platform/trust-cli/internal/model"
	"github.com/nexis-platform/trust-cli/internal/rules"
)

func TestBuildDisplay(t *testing.T) {
	factors := []model.Factor{
		satisfiedFactor("Utility Payment Consistency", sampleDescription),
		{ID: "p", Title: "Spending Stability", Type: model.FactorNeutral,
			Description: "Status: ◐ Partial\nAt 40% of target.", Impact: model.ImpactMedium},
		{ID: "n", Title: "Digital Transaction Activity", Type: model.FactorNegative,
			Description: "Status: ✗ Not Met", Impact: model.ImpactLow},
		{ID: "x", Title: "Mobile Recharge Consistency", Type: model.FactorPositive, Impact: model.ImpactLow},
	}

	d := BuildDisplay(745, factors)

	assert.Equal(t, 745, d.Score)
	assert.Equal(t, BandStrong, d.Classification.Band)
	require.Len(t, d.Rules, rules.Count)

	assert.Equal(t, rules.Count, d.Summary.TotalRules)
	assert.Equal(t, 2, d.Summary.Satisfied)
	assert.Equal(t, 1, d.Summary.PartiallySatisfied)
	assert.Equal(t, 1, d.Summary.NotMet)
	assert.Equal(t, 8, d.Summary.NotEvaluated)
	// round(745 * 0.4) of the fixed 360-point denominator.
	assert.Equal(t, 298, d.Summary.CompliancePoints)
	assert.Equal(t, 360, d.Summary.ComplianceMax)

	// Dashboard surfaces only the first three factors, in server order.
	require.Len(t, d.TopFactors, 3)
	assert.Equal(t, factors[0].ID, d.TopFactors[0].ID)
	assert.Equal(t, factors[2].ID, d.TopFactors[2].ID)
}

func TestBuildDisplayNoFactors(t *testing.T) {
	d := BuildDisplay(500, nil)
	assert.Equal(t, BandBuilding, d.Classification.Band)
	assert.Equal(t, rules.Count, d.Summary.NotEvaluated)
	assert.Zero(t, d.Summary.Satisfied)
	assert.Empty(t, d.TopFactors)
	require.Len(t, d.Rules, rules.Count)
	for _, r := range d.Rules {
		assert.Equal(t, 0, r.ProgressPercent)
	}
}
