package explain

// Band is a narrative score range. Bands are contiguous and exhaustive over
// [300,900]: Building [300,550), Developing [550,700), Strong [700,850),
// Exceptional [850,900]. A boundary score belongs to the higher band.
type Band string

const (
	BandBuilding    Band = "Building"
	BandDeveloping  Band = "Developing"
	BandStrong      Band = "Strong"
	BandExceptional Band = "Exceptional"
)

// Band boundaries.
const (
	ScoreMin             = 300
	DevelopingThreshold  = 550
	StrongThreshold      = 700
	ExceptionalThreshold = 850
	ScoreMax             = 900
)

// Classification is the narrative classification of a trust score. All three
// fields are a pure function of the band.
type Classification struct {
	Band    Band   `json:"band"`
	Range   string `json:"range"`
	Risk    string `json:"risk_level"`
	Summary string `json:"summary"`
}

// Classify maps a trust score to its band, risk label and assessment
// summary. Total and side-effect-free; scores outside [300,900] are not
// validated here, the external service's contract bounds them.
func Classify(score int) Classification {
	switch {
	case score >= ExceptionalThreshold:
		return Classification{
			Band:    BandExceptional,
			Range:   "850–900",
			Risk:    "Low",
			Summary: "Exceptional Assessment – All documented behavioral rules satisfied with sustained excellence",
		}
	case score >= StrongThreshold:
		return Classification{
			Band:    BandStrong,
			Range:   "700–849",
			Risk:    "Low",
			Summary: "Strong Assessment – Majority of documented behavioral rules satisfied",
		}
	case score >= DevelopingThreshold:
		return Classification{
			Band:    BandDeveloping,
			Range:   "550–699",
			Risk:    "Moderate",
			Summary: "Developing Assessment – Partial satisfaction of behavioral rules",
		}
	default:
		return Classification{
			Band:    BandBuilding,
			Range:   "300–549",
			Risk:    "High",
			Summary: "Building Assessment – Early-stage rule documentation",
		}
	}
}
