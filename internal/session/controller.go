// Package session owns the client-side state machine: which screen is
// active, who is logged in, and the per-session caches of fetched data.
// All state mutations go through the controller under one mutex; fetches
// run outside the lock and are deduplicated per resource key.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/nexis-platform/trust-cli/internal/behavior"
	"github.com/nexis-platform/trust-cli/internal/explain"
	"github.com/nexis-platform/trust-cli/internal/model"
	"github.com/nexis-platform/trust-cli/internal/resilience"
	"github.com/nexis-platform/trust-cli/pkg/nexis"
)

// TokenKeeper persists and clears the session bearer token.
type TokenKeeper interface {
	nexis.TokenSource
	Set(token string) error
	Clear() error
}

// Assessment aggregates the scored state for the current user: the raw
// score, the rule factors behind it, and the roadmap.
type Assessment struct {
	TrustScore   int
	RiskLevel    string
	RiskColor    string
	Percentile   float64
	Confidence   float64
	Factors      []model.Factor
	TotalSignals int
	Roadmap      []nexis.RoadmapStep
}

// Controller drives the session lifecycle against the scoring service.
type Controller struct {
	api    nexis.Client
	tokens TokenKeeper
	gen    *behavior.Generator
	retry  resilience.Policy
	log    *zap.Logger

	flights singleflight.Group

	mu            sync.Mutex
	sessionID     string
	screen        Screen
	authenticated bool
	userID        string
	userName      string
	profile       *nexis.Profile
	assessment    *Assessment
	improvement   *nexis.ImprovementPlan
	lender        *nexis.LenderView
	loading       map[string]bool
	lastError     string
}

// ControllerOption configures the controller.
type ControllerOption func(*Controller)

// WithGenerator overrides the behavioral-data generator used by the consent
// flow.
func WithGenerator(gen *behavior.Generator) ControllerOption {
	return func(c *Controller) { c.gen = gen }
}

// WithRetryPolicy overrides the retry policy applied to fetches.
func WithRetryPolicy(p resilience.Policy) ControllerOption {
	return func(c *Controller) { c.retry = p }
}

// NewController creates a controller in the anonymous state on the login
// screen.
func NewController(api nexis.Client, tokens TokenKeeper, opts ...ControllerOption) *Controller {
	c := &Controller{
		api:       api,
		tokens:    tokens,
		gen:       behavior.NewGenerator(nil),
		retry:     defaultRetryPolicy(),
		sessionID: uuid.NewString(),
		screen:    ScreenLogin,
		loading:   map[string]bool{},
	}
	for _, o := range opts {
		o(c)
	}
	c.log = zap.L().With(zap.String("session_id", c.sessionID))
	return c
}

// defaultRetryPolicy retries transient transport failures and retryable HTTP
// statuses. Auth and validation errors pass through untouched.
func defaultRetryPolicy() resilience.Policy {
	p := resilience.DefaultPolicy()
	p.Retryable = func(err error) bool {
		if apiErr, ok := nexis.IsAPIError(err); ok {
			return resilience.IsTransientStatus(apiErr.StatusCode)
		}
		return resilience.IsTransient(err)
	}
	return p
}

// Restore resumes a prior session from a persisted token. With no stored
// token, or a token the service rejects, the session stays anonymous.
func (c *Controller) Restore(ctx context.Context) error {
	if c.tokens.Token() == "" {
		return nil
	}

	profile, err := c.api.Me(ctx)
	if err != nil {
		if nexis.IsAuthError(err) {
			c.log.Info("stored token rejected, clearing")
			c.forceLogout("")
			return nil
		}
		return c.fail(err)
	}

	c.enterSession(profile.UserID, profile.Name, profile)
	if profile.HasScore {
		return c.ensureAssessment(ctx)
	}
	return nil
}

// Login authenticates and routes: scored users land on the dashboard with
// assessment data fetched eagerly, consented-but-unscored users land on the
// dashboard degraded, everyone else is sent to consent.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	if err := requireFields(map[string]string{"email": email, "password": password}); err != nil {
		return c.fail(err)
	}

	auth, err := c.api.Login(ctx, nexis.LoginRequest{Email: email, Password: password})
	if err != nil {
		return c.fail(err)
	}
	if err := c.tokens.Set(auth.AccessToken); err != nil {
		return c.fail(err)
	}

	profile, err := c.api.Me(ctx)
	if err != nil {
		return c.fail(err)
	}

	c.enterSession(auth.UserID, auth.Name, profile)
	c.log.Info("login",
		zap.String("user_id", auth.UserID),
		zap.Bool("has_score", profile.HasScore),
		zap.Bool("consent_given", profile.ConsentGiven),
	)

	if profile.HasScore {
		return c.ensureAssessment(ctx)
	}
	return nil
}

// Register creates an account and routes to the consent screen.
func (c *Controller) Register(ctx context.Context, name, email, phone, password string) error {
	if err := requireFields(map[string]string{"name": name, "email": email, "password": password}); err != nil {
		return c.fail(err)
	}

	auth, err := c.api.Register(ctx, nexis.RegisterRequest{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password,
	})
	if err != nil {
		return c.fail(err)
	}
	if err := c.tokens.Set(auth.AccessToken); err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.authenticated = true
	c.userID = auth.UserID
	c.userName = auth.Name
	c.screen = ScreenConsent
	c.lastError = ""
	c.mu.Unlock()

	c.log.Info("registered", zap.String("user_id", auth.UserID))
	return nil
}

// SubmitConsent runs the ordered onboarding pipeline: record consent, compute
// the score from a sampled behavioral profile, then fetch explainability and
// the roadmap. Any failure leaves the session on the consent screen with the
// error surfaced; a rerun restarts from the top.
func (c *Controller) SubmitConsent(ctx context.Context) error {
	c.mu.Lock()
	if !c.authenticated {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	userID := c.userID
	c.loading[resAssessment] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.loading, resAssessment)
		c.mu.Unlock()
	}()

	if err := c.api.SubmitConsent(ctx, true); err != nil {
		return c.fail(err)
	}

	score, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*nexis.ScoreResponse, error) {
		return c.api.ComputeScore(ctx, nexis.ScoreRequest{
			UserID:         userID,
			BehavioralData: c.gen.Sample(),
		})
	})
	if err != nil {
		return c.fail(err)
	}

	assessment, err := c.fetchAssessmentDetail(ctx, userID, score)
	if err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	if c.authenticated && c.userID == userID {
		c.assessment = assessment
		if c.profile != nil {
			c.profile.ConsentGiven = true
			c.profile.HasScore = true
		}
		c.screen = ScreenDashboard
		c.lastError = ""
	}
	c.mu.Unlock()

	c.log.Info("consent pipeline complete",
		zap.String("user_id", userID),
		zap.Int("trust_score", score.TrustScore),
	)
	return nil
}

// Navigate switches screens. Screens backed by lazily fetched resources
// trigger the fetch on first entry; the cache lives for the session and is
// never invalidated.
func (c *Controller) Navigate(ctx context.Context, screen Screen) error {
	c.mu.Lock()
	if authenticatedScreens[screen] && !c.authenticated {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	hasScore := c.profile != nil && c.profile.HasScore
	c.screen = screen
	c.mu.Unlock()

	switch screen {
	case ScreenDashboard, ScreenExplainability:
		if hasScore {
			return c.ensureAssessment(ctx)
		}
	case ScreenImprovement:
		return c.ensureImprovement(ctx)
	case ScreenLender:
		return c.ensureLender(ctx)
	}
	return nil
}

// Logout tears the session down. The server call is best-effort; local state
// and the stored token are always cleared.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.api.Logout(ctx); err != nil {
		c.log.Warn("server logout failed", zap.Error(err))
	}
	c.forceLogout("")
}

// SubmitLenderDecision records a lender's decision for the current user.
func (c *Controller) SubmitLenderDecision(ctx context.Context, decision nexis.LenderDecision) error {
	c.mu.Lock()
	if !c.authenticated {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	decision.UserID = c.userID
	c.mu.Unlock()

	if decision.Decision == "" {
		return c.fail(&ValidationError{Field: "decision", Reason: "must not be empty"})
	}
	if err := c.api.SubmitLenderDecision(ctx, decision); err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	c.lastError = ""
	c.mu.Unlock()
	return nil
}

// ensureAssessment fetches score, explainability and roadmap once per
// session. Concurrent callers share a single in-flight fetch.
func (c *Controller) ensureAssessment(ctx context.Context) error {
	c.mu.Lock()
	if c.assessment != nil {
		c.mu.Unlock()
		return nil
	}
	userID := c.userID
	profile := c.profile
	c.loading[resAssessment] = true
	c.mu.Unlock()

	v, err, _ := c.flights.Do(resAssessment, func() (any, error) {
		if a := c.Assessment(); a != nil {
			return a, nil
		}
		return resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*Assessment, error) {
			score := scoreFromProfile(profile)
			return c.fetchAssessmentDetail(ctx, userID, score)
		})
	})

	c.mu.Lock()
	delete(c.loading, resAssessment)
	c.mu.Unlock()

	if err != nil {
		return c.fail(err)
	}
	c.store(userID, func() { c.assessment = v.(*Assessment) })
	return nil
}

// fetchAssessmentDetail pulls explainability and roadmap for userID and
// merges them with the score. score may be nil when only the profile's
// cached score is known; explainability then supplies the number.
func (c *Controller) fetchAssessmentDetail(ctx context.Context, userID string, score *nexis.ScoreResponse) (*Assessment, error) {
	exp, err := c.api.Explainability(ctx, userID)
	if err != nil {
		return nil, err
	}
	roadmap, err := c.api.Roadmap(ctx, userID)
	if err != nil {
		return nil, err
	}

	a := &Assessment{
		TrustScore:   exp.TrustScore,
		Factors:      exp.Factors,
		TotalSignals: exp.TotalSignalsAnalyzed,
		Roadmap:      roadmap.Steps,
	}
	if score != nil {
		a.TrustScore = score.TrustScore
		a.RiskLevel = score.RiskLevel
		a.RiskColor = score.RiskColor
		a.Percentile = score.Percentile
		a.Confidence = score.Confidence
	}
	if a.RiskLevel == "" {
		a.RiskLevel = explain.Classify(a.TrustScore).Risk
	}
	return a, nil
}

func (c *Controller) ensureImprovement(ctx context.Context) error {
	c.mu.Lock()
	if c.improvement != nil {
		c.mu.Unlock()
		return nil
	}
	userID := c.userID
	c.loading[resImprovement] = true
	c.mu.Unlock()

	v, err, _ := c.flights.Do(resImprovement, func() (any, error) {
		if p := c.Improvement(); p != nil {
			return p, nil
		}
		return resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*nexis.ImprovementPlan, error) {
			return c.api.ImprovementPlan(ctx, userID)
		})
	})

	c.mu.Lock()
	delete(c.loading, resImprovement)
	c.mu.Unlock()

	if err != nil {
		return c.fail(err)
	}
	c.store(userID, func() { c.improvement = v.(*nexis.ImprovementPlan) })
	return nil
}

func (c *Controller) ensureLender(ctx context.Context) error {
	c.mu.Lock()
	if c.lender != nil {
		c.mu.Unlock()
		return nil
	}
	userID := c.userID
	c.loading[resLender] = true
	c.mu.Unlock()

	v, err, _ := c.flights.Do(resLender, func() (any, error) {
		if l := c.Lender(); l != nil {
			return l, nil
		}
		return resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*nexis.LenderView, error) {
			return c.api.LenderView(ctx, userID)
		})
	})

	c.mu.Lock()
	delete(c.loading, resLender)
	c.mu.Unlock()

	if err != nil {
		return c.fail(err)
	}
	c.store(userID, func() { c.lender = v.(*nexis.LenderView) })
	return nil
}

// store applies set only if the session still belongs to userID. A fetch
// that outlives a logout must not repopulate the fresh session.
func (c *Controller) store(userID string, set func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authenticated && c.userID == userID {
		set()
	}
}

// enterSession installs an authenticated session and picks the landing
// screen from the profile's progress markers.
func (c *Controller) enterSession(userID, name string, profile *nexis.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.authenticated = true
	c.userID = userID
	c.userName = name
	c.profile = profile
	c.lastError = ""

	switch {
	case profile.HasScore, profile.ConsentGiven:
		c.screen = ScreenDashboard
	default:
		c.screen = ScreenConsent
	}
}

// fail records err for display. A 401 from any call tears the whole session
// down and returns to login.
func (c *Controller) fail(err error) error {
	if nexis.IsAuthError(err) {
		c.log.Info("session expired")
		c.forceLogout("Session expired. Please log in again.")
		return err
	}

	c.mu.Lock()
	if IsValidationError(err) {
		c.lastError = err.Error()
	} else {
		c.lastError = nexis.UserMessage(err)
	}
	c.mu.Unlock()
	return err
}

// forceLogout resets to the anonymous state and clears the stored token.
func (c *Controller) forceLogout(message string) {
	if err := c.tokens.Clear(); err != nil {
		c.log.Warn("clear token failed", zap.Error(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.authenticated = false
	c.userID = ""
	c.userName = ""
	c.profile = nil
	c.assessment = nil
	c.improvement = nil
	c.lender = nil
	c.loading = map[string]bool{}
	c.lastError = message
	c.screen = ScreenLogin
}

// scoreFromProfile lifts the profile's cached score fields into a
// ScoreResponse, or nil when the profile carries none.
func scoreFromProfile(p *nexis.Profile) *nexis.ScoreResponse {
	if p == nil || p.TrustScore == nil {
		return nil
	}
	s := &nexis.ScoreResponse{TrustScore: *p.TrustScore}
	if p.RiskLevel != nil {
		s.RiskLevel = *p.RiskLevel
	}
	return s
}

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return &ValidationError{Field: name, Reason: "must not be empty"}
		}
	}
	return nil
}

// Accessors below return snapshots under the lock. Slices and pointers are
// shared; callers treat them as read-only.

// Screen returns the active screen.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Authenticated reports whether a user is logged in.
func (c *Controller) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated
}

// UserID returns the logged-in user's id, or "".
func (c *Controller) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// UserName returns the logged-in user's display name, or "".
func (c *Controller) UserName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userName
}

// Profile returns the cached profile, or nil.
func (c *Controller) Profile() *nexis.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Assessment returns the cached assessment, or nil before the fetch.
func (c *Controller) Assessment() *Assessment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.assessment
}

// Improvement returns the cached improvement plan, or nil before the fetch.
func (c *Controller) Improvement() *nexis.ImprovementPlan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.improvement
}

// Lender returns the cached lender view, or nil before the fetch.
func (c *Controller) Lender() *nexis.LenderView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lender
}

// Loading reports whether the named resource fetch is in flight.
func (c *Controller) Loading(resource string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading[resource]
}

// LastError returns the most recent user-facing error message, or "".
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// Display renders the cached assessment through the rule engine. Nil when no
// assessment is cached yet.
func (c *Controller) Display() *explain.Display {
	c.mu.Lock()
	score := 0
	var factors []model.Factor
	if c.assessment != nil {
		score = c.assessment.TrustScore
		factors = c.assessment.Factors
	}
	cached := c.assessment != nil
	c.mu.Unlock()

	if !cached {
		return nil
	}
	d := explain.BuildDisplay(score, factors)
	return &d
}
