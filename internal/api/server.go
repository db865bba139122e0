// Package api exposes the explanation engine over HTTP so other NEXIS
// surfaces can render the same rule breakdowns without reimplementing the
// parsing and reconciliation logic.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nexis-platform/trust-cli/internal/explain"
	"github.com/nexis-platform/trust-cli/internal/model"
	"github.com/nexis-platform/trust-cli/internal/rules"
)

// ExplainRequest is the body for POST /v1/explain.
type ExplainRequest struct {
	TrustScore int            `json:"trust_score"`
	Factors    []model.Factor `json:"factors"`
}

// NewRouter builds the HTTP handler for the explanation API.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/rules", handleRules)
		r.Get("/rules/{id}", handleRule)
		r.Get("/classify/{score}", handleClassify)
		r.Post("/explain", handleExplain)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"rules":      rules.Catalog(),
		"categories": rules.Categories(),
		"max_points": rules.MaxTotalPoints(),
	})
}

func handleRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rule, ok := rules.ByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown rule id")
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func handleClassify(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(chi.URLParam(r, "score"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "score must be an integer")
		return
	}
	writeJSON(w, http.StatusOK, explain.Classify(score))
}

func handleExplain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	display := explain.BuildDisplay(req.TrustScore, req.Factors)
	writeJSON(w, http.StatusOK, display)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// requestLogger logs one line per request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
