package nexis

import "github.com/nexis-platform/trust-cli/internal/model"

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
}

// Profile is the GET /auth/me payload.
type Profile struct {
	UserID           string  `json:"user_id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	ConsentGiven     bool    `json:"consent_given"`
	HasScore         bool    `json:"has_score"`
	ProfileCompleted bool    `json:"profile_completed"`
	TrustScore       *int    `json:"trust_score,omitempty"`
	RiskLevel        *string `json:"risk_level,omitempty"`
	LastScoredAt     *string `json:"last_scored_at,omitempty"`
}

// ConsentRequest is the body for POST /consent.
type ConsentRequest struct {
	ConsentGiven bool `json:"consent_given"`
}

// ScoreRequest is the body for POST /score.
type ScoreRequest struct {
	UserID         string               `json:"user_id"`
	BehavioralData model.BehavioralData `json:"behavioral_data"`
}

// ScoreResponse is the score computation result.
type ScoreResponse struct {
	TrustScore int     `json:"trust_score"`
	RiskLevel  string  `json:"risk_level"`
	RiskColor  string  `json:"risk_color"`
	Percentile float64 `json:"percentile"`
	Confidence float64 `json:"confidence"`
}

// Explainability is the GET /explainability/{user_id} payload.
type Explainability struct {
	TrustScore           int            `json:"trust_score"`
	Factors              []model.Factor `json:"factors"`
	TotalSignalsAnalyzed int            `json:"total_signals_analyzed"`
}

// RoadmapStep is one improvement milestone.
type RoadmapStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Roadmap is the GET /roadmap/{user_id} payload.
type Roadmap struct {
	UserID string        `json:"user_id"`
	Steps  []RoadmapStep `json:"roadmap"`
}

// Recommendation is one improvement-plan entry.
type Recommendation struct {
	Category               string `json:"category"`
	Title                  string `json:"title"`
	Description            string `json:"description"`
	EstimatedScoreIncrease int    `json:"estimated_score_increase"`
	Timeframe              string `json:"timeframe"`
}

// ImprovementPlan is the GET /improvement/{user_id} payload.
type ImprovementPlan struct {
	CurrentScore    int              `json:"current_score"`
	TargetScore     int              `json:"target_score"`
	Recommendations []Recommendation `json:"recommendations"`
}

// BehavioralMetric is one lender-view metric row.
type BehavioralMetric struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Status string `json:"status"`
}

// LenderView is the GET /lender-view/{user_id} payload.
type LenderView struct {
	UserID               string             `json:"user_id"`
	Name                 string             `json:"name"`
	TrustScore           int                `json:"trust_score"`
	RiskLevel            string             `json:"risk_level"`
	AIRecommendationText string             `json:"ai_recommendation_text"`
	TopTrustSignal       string             `json:"top_trust_signal"`
	KeyObservation       string             `json:"key_observation"`
	BehavioralMetrics    []BehavioralMetric `json:"behavioral_metrics"`
	ProgramNote          string             `json:"program_note,omitempty"`
}

// LenderDecision is the body for POST /lender-decision.
type LenderDecision struct {
	UserID        string   `json:"user_id"`
	LenderID      string   `json:"lender_id"`
	Decision      string   `json:"decision"`
	Justification string   `json:"justification"`
	LoanAmount    *float64 `json:"loan_amount,omitempty"`
	InterestRate  *float64 `json:"interest_rate,omitempty"`
	TermMonths    *int     `json:"term_months,omitempty"`
}
