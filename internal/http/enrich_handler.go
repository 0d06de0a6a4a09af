package http

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/steebus/notion-book-fetch/internal/enrich"
	"github.com/steebus/notion-book-fetch/internal/httpx"
)

const webhookTokenHeader = "X-Notion-Token"

// PassRunner runs one enrichment pass over the database.
type PassRunner interface {
	Run(ctx context.Context) (*enrich.Report, error)
}

type EnrichHandler struct {
	runner PassRunner
	secret string
}

func NewEnrichHandler(runner PassRunner, webhookSecret string) *EnrichHandler {
	return &EnrichHandler{runner: runner, secret: webhookSecret}
}

// Webhook triggers a pass when called by a Notion automation. The caller
// must present the shared secret in the X-Notion-Token header.
func (h *EnrichHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token := r.Header.Get(webhookTokenHeader)
	if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) != 1 {
		httpx.JSONError(r, w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	h.runPass(w, r)
}

// Fetch triggers a pass from a scheduled caller such as cron-job.org.
func (h *EnrichHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	h.runPass(w, r)
}

func (h *EnrichHandler) runPass(w http.ResponseWriter, r *http.Request) {
	report, err := h.runner.Run(r.Context())
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "pass_failed", "Enrichment pass failed")
		return
	}

	httpx.JSONSuccess(r, w, map[string]any{
		"run_id":        report.RunID,
		"matched":       report.Matched,
		"resolved":      report.Resolved,
		"unresolved":    report.Unresolved,
		"updated":       report.Updated,
		"update_failed": report.UpdateFailed,
	})
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
