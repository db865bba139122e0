// Package explain is the assessment explanation engine: it parses the
// semi-structured factor descriptions returned by the scoring service,
// reconciles them against the fixed rule catalog, and classifies scores into
// bands. Everything in this package is pure and deterministic; the rendered
// explanation must be exactly reproducible for audit.
package explain

import (
	"regexp"
	"strings"
)

// ParsedRule is the structured form of a factor description. Every non-nil
// field was extracted verbatim (trimmed) from the source text; parsing never
// fabricates values. A description that matches none of the recognized line
// prefixes parses to the zero value, not an error.
type ParsedRule struct {
	RuleID            string   `json:"rule_id,omitempty"`
	RuleName          string   `json:"rule_name,omitempty"`
	YourValue         string   `json:"your_value,omitempty"`
	RequiredThreshold string   `json:"required_threshold,omitempty"`
	Status            string   `json:"status,omitempty"`
	Explanation       []string `json:"explanation,omitempty"`
	Insight           string   `json:"insight,omitempty"`
}

// Recognized line prefixes, in priority order. insightPrefix is terminal: a
// matching line becomes the insight and is never also an explanation line.
const (
	rulePrefix      = "Rule "
	valuePrefix     = "Your Value:"
	thresholdPrefix = "Required Threshold:"
	statusPrefix    = "Status:"
	insightPrefix   = "Based on documented"
)

var ruleHeaderRe = regexp.MustCompile(`Rule ([A-Z]\d+):\s*(.+)`)

// Parse extracts the structured fields embedded in a factor description.
// Returns nil for an empty description.
//
// Free-text lines are collected into Explanation only once a Status: line has
// been seen; free text before Status is ignored. This gating matches the
// wire format produced by the scoring service and must not be loosened: it
// determines exactly which lines appear in the rendered explanation.
func Parse(description string) *ParsedRule {
	if description == "" {
		return nil
	}

	parsed := &ParsedRule{}
	for _, raw := range strings.Split(description, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, rulePrefix) {
			if m := ruleHeaderRe.FindStringSubmatch(line); m != nil {
				parsed.RuleID = m[1]
				parsed.RuleName = m[2]
			}
		}
		if strings.HasPrefix(line, valuePrefix) {
			parsed.YourValue = strings.TrimSpace(strings.TrimPrefix(line, valuePrefix))
		}
		if strings.HasPrefix(line, thresholdPrefix) {
			parsed.RequiredThreshold = strings.TrimSpace(strings.TrimPrefix(line, thresholdPrefix))
		}
		if strings.HasPrefix(line, statusPrefix) {
			parsed.Status = strings.TrimSpace(strings.TrimPrefix(line, statusPrefix))
		}
		if parsed.Status != "" &&
			!strings.HasPrefix(line, rulePrefix) &&
			!strings.HasPrefix(line, valuePrefix) &&
			!strings.HasPrefix(line, thresholdPrefix) &&
			!strings.HasPrefix(line, statusPrefix) &&
			!strings.HasPrefix(line, insightPrefix) {
			parsed.Explanation = append(parsed.Explanation, line)
		}
		if strings.HasPrefix(line, insightPrefix) {
			parsed.Insight = line
		}
	}

	return parsed
}
