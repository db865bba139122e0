package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nexis-platform/trust-cli/internal/session"
	"github.com/nexis-platform/trust-cli/pkg/nexis"
)

// newController wires the API client, token store and session controller
// from the loaded config.
func newController() (*session.Controller, error) {
	tokens, err := session.NewTokenStore(cfg.Session.TokenPath)
	if err != nil {
		return nil, err
	}

	api := nexis.NewClient(tokens,
		nexis.WithBaseURL(cfg.API.BaseURL),
		nexis.WithRateLimit(cfg.API.RateLimit),
		nexis.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second,
		}),
	)

	return session.NewController(api, tokens), nil
}

// resumeSession builds a controller and restores a prior session from the
// stored token. Commands that need a logged-in user call this and check
// Authenticated.
func resumeSession(ctx context.Context) (*session.Controller, error) {
	ctrl, err := newController()
	if err != nil {
		return nil, err
	}
	if err := ctrl.Restore(ctx); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// requireLogin resumes the session and fails with a friendly message when no
// one is logged in.
func requireLogin(ctx context.Context) (*session.Controller, error) {
	ctrl, err := resumeSession(ctx)
	if err != nil {
		return nil, err
	}
	if !ctrl.Authenticated() {
		return nil, fmt.Errorf("not logged in: run 'nexis login' first")
	}
	return ctrl, nil
}
