package model

// FactorType classifies a behavioral factor's contribution to the score.
type FactorType string

const (
	FactorPositive FactorType = "positive"
	FactorNeutral  FactorType = "neutral"
	FactorNegative FactorType = "negative"
)

// Impact is the server-assigned weight of a factor.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Factor is a server-supplied reason contributing to the trust score,
// ordered by relevance. Description carries semi-structured rule-evaluation
// text (see the explain package for the line grammar).
type Factor struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        FactorType `json:"type"`
	Impact      Impact     `json:"impact"`
	Icon        string     `json:"icon"`
}

// ImportanceLabel maps a factor's impact to the rule-importance label shown
// alongside it.
func (f Factor) ImportanceLabel() string {
	switch f.Impact {
	case ImpactHigh:
		return "Core Rule"
	case ImpactMedium:
		return "Supporting Rule"
	default:
		return "Auxiliary Rule"
	}
}
