// Package nexis wraps the remote NEXIS scoring service REST API.
package nexis

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:8000/api/v1"

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means the session is anonymous and no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource, mostly for tests.
type StaticToken string

// Token returns the fixed token value.
func (s StaticToken) Token() string { return string(s) }

// Client performs calls against the NEXIS scoring service.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Me(ctx context.Context) (*Profile, error)
	Logout(ctx context.Context) error
	SubmitConsent(ctx context.Context, consentGiven bool) error
	ComputeScore(ctx context.Context, req ScoreRequest) (*ScoreResponse, error)
	Explainability(ctx context.Context, userID string) (*Explainability, error)
	Roadmap(ctx context.Context, userID string) (*Roadmap, error)
	ImprovementPlan(ctx context.Context, userID string) (*ImprovementPlan, error)
	LenderView(ctx context.Context, userID string) (*LenderView, error)
	SubmitLenderDecision(ctx context.Context, req LenderDecision) error
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default service base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit throttles outbound calls to rps requests per second.
// Zero disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a NEXIS API client. tokens supplies the bearer token for
// authenticated calls and may return "" while anonymous.
func NewClient(tokens TokenSource, opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		tokens:  tokens,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Me(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout is best-effort on the server side; callers clear the local token
// regardless of the outcome.
func (c *httpClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *httpClient) SubmitConsent(ctx context.Context, consentGiven bool) error {
	return c.do(ctx, http.MethodPost, "/consent", ConsentRequest{ConsentGiven: consentGiven}, nil)
}

func (c *httpClient) ComputeScore(ctx context.Context, req ScoreRequest) (*ScoreResponse, error) {
	var out ScoreResponse
	if err := c.do(ctx, http.MethodPost, "/score", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Explainability(ctx context.Context, userID string) (*Explainability, error) {
	var out Explainability
	if err := c.do(ctx, http.MethodGet, "/explainability/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Roadmap(ctx context.Context, userID string) (*Roadmap, error) {
	var out Roadmap
	if err := c.do(ctx, http.MethodGet, "/roadmap/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) ImprovementPlan(ctx context.Context, userID string) (*ImprovementPlan, error) {
	var out ImprovementPlan
	if err := c.do(ctx, http.MethodGet, "/improvement/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) LenderView(ctx context.Context, userID string) (*LenderView, error) {
	var out LenderView
	if err := c.do(ctx, http.MethodGet, "/lender-view/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) SubmitLenderDecision(ctx context.Context, req LenderDecision) error {
	return c.do(ctx, http.MethodPost, "/lender-decision", req, nil)
}

// do issues one request. body and out may be nil. Non-2xx responses become
// *APIError with the body's detail field when the body parses.
func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "nexis: rate limit wait")
		}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return eris.Wrap(err, "nexis: marshal request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return eris.Wrap(err, "nexis: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "nexis: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "nexis: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(respBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "nexis: unmarshal response")
	}
	return nil
}

// extractDetail pulls the detail field out of an error body. An absent or
// unparseable body yields "" and the caller falls back to a generic message.
func extractDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
