package explain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nexis-platform/trust-cli/internal/model"
	"github.com/nexis-platform/trust-cli/internal/rules"
)

// Satisfaction is the per-rule evaluation outcome.
type Satisfaction string

const (
	Satisfied    Satisfaction = "satisfied"
	Partial      Satisfaction = "partial"
	Unsatisfied  Satisfaction = "unsatisfied"
	NotEvaluated Satisfaction = "not_evaluated"
)

// Gap labels used when no numeric gap can be derived from the factor text.
const (
	gapPartial     = "Additional progress needed"
	gapUnsatisfied = "Requirements not met"
)

// ReconciledRule is one catalog rule cross-referenced against the
// server-supplied factors. Rebuilt, never mutated, whenever fresh factor
// data arrives.
type ReconciledRule struct {
	Rule            rules.Definition `json:"rule"`
	Evaluated       bool             `json:"evaluated"`
	Factor          *model.Factor    `json:"factor,omitempty"`
	Parsed          *ParsedRule      `json:"parsed,omitempty"`
	Satisfaction    Satisfaction     `json:"satisfaction"`
	StatusLabel     string           `json:"status_label"`
	CurrentValue    string           `json:"current_value"`
	RequiredValue   string           `json:"required_value"`
	ProgressPercent int              `json:"progress_percent"`
	GapDescription  string           `json:"gap_description,omitempty"`
}

var descPercentRe = regexp.MustCompile(`(\d+)%`)

// Reconcile matches factors against the catalog and produces one record per
// catalog rule, in catalog order. Matching is a best-effort join by name
// containment in the factor's title or description — first match wins, and a
// single factor may legitimately match several rules. Deterministic: the
// same inputs always produce identical output.
func Reconcile(catalog []rules.Definition, factors []model.Factor) []ReconciledRule {
	out := make([]ReconciledRule, 0, len(catalog))
	for _, rule := range catalog {
		out = append(out, reconcileOne(rule, factors))
	}
	return out
}

func reconcileOne(rule rules.Definition, factors []model.Factor) ReconciledRule {
	factor := matchFactor(rule, factors)
	if factor == nil {
		return ReconciledRule{
			Rule:          rule,
			Satisfaction:  NotEvaluated,
			StatusLabel:   "○ Not Evaluated",
			CurrentValue:  "N/A",
			RequiredValue: rule.Threshold,
		}
	}

	rec := ReconciledRule{
		Rule:          rule,
		Evaluated:     true,
		Factor:        factor,
		Parsed:        Parse(factor.Description),
		RequiredValue: rule.Threshold,
	}

	rec.CurrentValue = "See details"
	if rec.Parsed != nil && rec.Parsed.YourValue != "" {
		rec.CurrentValue = rec.Parsed.YourValue
	}

	switch factor.Type {
	case model.FactorPositive:
		rec.Satisfaction = Satisfied
		rec.StatusLabel = "✓ Satisfied"
	case model.FactorNeutral:
		rec.Satisfaction = Partial
		rec.StatusLabel = "◐ Partially Satisfied"
	default:
		rec.Satisfaction = Unsatisfied
		rec.StatusLabel = "✗ Not Satisfied"
	}

	rec.ProgressPercent = progressFor(rec.Satisfaction, rec.Parsed, factor.Description)
	if rec.Satisfaction != Satisfied {
		rec.GapDescription = gapFor(rec)
	}
	return rec
}

// matchFactor returns the first factor whose title or description contains
// the rule name. No exclusivity check: reconciliation is a documented
// best-effort join, not a strict one.
func matchFactor(rule rules.Definition, factors []model.Factor) *model.Factor {
	for i := range factors {
		if strings.Contains(factors[i].Title, rule.Name) ||
			strings.Contains(factors[i].Description, rule.Name) {
			return &factors[i]
		}
	}
	return nil
}

// progressFor derives the rule-compliance percentage. Satisfied rules are
// always exactly 100; everything else is capped at 99 so that
// ProgressPercent == 100 holds iff the rule is satisfied.
func progressFor(sat Satisfaction, parsed *ParsedRule, description string) int {
	if sat == Satisfied {
		return 100
	}

	status := ""
	if parsed != nil {
		status = parsed.Status
	}
	if strings.Contains(status, "✓") || strings.Contains(status, "Satisfied") ||
		strings.Contains(status, "exceeds") || strings.Contains(status, "above") {
		return 99
	}
	if m := descPercentRe.FindStringSubmatch(description); m != nil {
		pct, err := strconv.Atoi(m[1])
		if err == nil {
			return clampProgress(pct)
		}
	}
	return 50
}

func clampProgress(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 99 {
		return 99
	}
	return pct
}

// gapFor builds the points-gap text for a partial or unsatisfied rule. When
// both the current and required values carry comparable quantities the gap is
// derived from them ("14 of 18 months"); otherwise a fixed label is used.
func gapFor(rec ReconciledRule) string {
	required := rec.RequiredValue
	if rec.Parsed != nil && rec.Parsed.RequiredThreshold != "" {
		required = rec.Parsed.RequiredThreshold
	}
	if gap := deriveGap(rec.CurrentValue, required); gap != "" {
		return gap
	}
	if rec.Satisfaction == Partial {
		return gapPartial
	}
	return gapUnsatisfied
}

// deriveGap formats a numeric gap when current and required express the same
// unit. Returns "" when the quantities are absent, incomparable, or the
// current value already meets the requirement.
func deriveGap(current, required string) string {
	curNum, curUnit, ok := quantity(current)
	if !ok {
		return ""
	}
	reqNum, reqUnit, ok := quantity(required)
	if !ok || !sameUnit(curUnit, reqUnit) {
		return ""
	}
	if curNum >= reqNum {
		return ""
	}
	if curUnit == "%" {
		return fmt.Sprintf("%s%% of %s%%", trimNum(curNum), trimNum(reqNum))
	}
	return fmt.Sprintf("%s of %s %s", trimNum(curNum), trimNum(reqNum), reqUnit)
}

// quantity splits an extracted value into its number and unit token.
func quantity(text string) (float64, string, bool) {
	m := valuePatterns[0].FindStringSubmatch(text)
	if m == nil {
		// Bare percentage family.
		if p := valuePatterns[1].FindStringSubmatch(text); p != nil {
			n, err := strconv.ParseFloat(strings.TrimSuffix(p[1], "%"), 64)
			if err != nil {
				return 0, "", false
			}
			return n, "%", true
		}
		return 0, "", false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, "", false
	}
	return n, strings.ToLower(m[2]), true
}

func sameUnit(a, b string) bool {
	norm := func(u string) string {
		u = strings.ToLower(u)
		u = strings.TrimSuffix(u, "s")
		if u == "rupee" || u == "₹" || u == "$" {
			return "currency"
		}
		return u
	}
	return norm(a) == norm(b)
}

func trimNum(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
