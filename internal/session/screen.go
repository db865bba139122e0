package session

// Screen identifies which view may currently render. Navigation is gated by
// the controller: unauthenticated sessions only ever see login or register.
type Screen string

const (
	ScreenLogin          Screen = "login"
	ScreenRegister       Screen = "register"
	ScreenConsent        Screen = "consent"
	ScreenDashboard      Screen = "dashboard"
	ScreenExplainability Screen = "explainability"
	ScreenImprovement    Screen = "improvement"
	ScreenLender         Screen = "lender"
	ScreenProfile        Screen = "profile"
)

// authenticatedScreens are reachable only with a live session.
var authenticatedScreens = map[Screen]bool{
	ScreenConsent:        true,
	ScreenDashboard:      true,
	ScreenExplainability: true,
	ScreenImprovement:    true,
	ScreenLender:         true,
	ScreenProfile:        true,
}

// Resource keys for lazily fetched, session-cached data. One in-flight fetch
// per key at any time; late callers await the existing fetch.
const (
	resAssessment  = "assessment"
	resImprovement = "improvement"
	resLender      = "lender"
)
