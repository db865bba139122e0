package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDescription = "Rule A1: Utility Payment Consistency\n" +
	"Your Value: 18 months\n" +
	"Required Threshold: 12+ consecutive months\n" +
	"Status: ✓ Satisfied\n" +
	"Consistent payments show discipline.\n" +
	"Based on documented account history."

func TestParseStructuredDescription(t *testing.T) {
	parsed := Parse(sampleDescription)
	require.NotNil(t, parsed)

	assert.Equal(t, "A1", parsed.RuleID)
	assert.Equal(t, "Utility Payment Consistency", parsed.RuleName)
	assert.Equal(t, "18 months", parsed.YourValue)
	assert.Equal(t, "12+ consecutive months", parsed.RequiredThreshold)
	assert.Equal(t, "✓ Satisfied", parsed.Status)
	assert.Equal(t, []string{"Consistent payments show discipline."}, parsed.Explanation)
	assert.Equal(t, "Based on documented account history.", parsed.Insight)
}

func TestParseEmpty(t *testing.T) {
	assert.Nil(t, Parse(""))
}

func TestParseFreeTextOnly(t *testing.T) {
	// No recognized prefixes: all fields stay empty, and nothing lands in
	// the explanation because no Status line was ever seen.
	parsed := Parse("This factor reflects general account activity.\nNothing structured here.")
	require.NotNil(t, parsed)
	assert.Empty(t, parsed.RuleID)
	assert.Empty(t, parsed.Status)
	assert.Empty(t, parsed.Explanation)
	assert.Empty(t, parsed.Insight)
}

func TestParseExplanationGatedOnStatus(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{
			name:        "free text before status is ignored",
			description: "Preamble line.\nStatus: ◐ Partial\nAfter one.\nAfter two.",
			want:        []string{"After one.", "After two."},
		},
		{
			name:        "no status means no explanation",
			description: "Your Value: 5 months\nSome narrative line.",
			want:        nil,
		},
		{
			name:        "insight line is terminal and never explanation",
			description: "Status: ✗ Not Met\nNarrative.\nBased on documented spending records.",
			want:        []string{"Narrative."},
		},
		{
			name:        "malformed rule header line is still excluded",
			description: "Status: ◐ Partial\nRule without a proper header\nReal narrative.",
			want:        []string{"Real narrative."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Parse(tt.description)
			require.NotNil(t, parsed)
			assert.Equal(t, tt.want, parsed.Explanation)
		})
	}
}

func TestParseMalformedRuleHeader(t *testing.T) {
	// "Rule " prefix without the ID:Name shape extracts nothing.
	parsed := Parse("Rule number one applies here\nStatus: ✓ Satisfied")
	require.NotNil(t, parsed)
	assert.Empty(t, parsed.RuleID)
	assert.Empty(t, parsed.RuleName)
	assert.Equal(t, "✓ Satisfied", parsed.Status)
}

func TestParseIdempotent(t *testing.T) {
	// Re-parsing any extracted field never changes previously parsed fields.
	first := Parse(sampleDescription)
	second := Parse(sampleDescription)
	assert.Equal(t, first, second)

	// Parsing a single extracted line in isolation yields the same field.
	again := Parse("Your Value: 18 months")
	require.NotNil(t, again)
	assert.Equal(t, first.YourValue, again.YourValue)
}

func TestParseBlankLinesAndWhitespace(t *testing.T) {
	parsed := Parse("\n\n  Status:   ◐ Partial  \n\n  trailing note  \n")
	require.NotNil(t, parsed)
	assert.Equal(t, "◐ Partial", parsed.Status)
	assert.Equal(t, []string{"trailing note"}, parsed.Explanation)
}
