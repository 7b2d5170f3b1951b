package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"dashboard/internal/models"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// handleIndex returns basic dashboard information
// GET / - Returns service info and available endpoints
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"service":     "Pakana Ledger Dashboard",
		"version":     "0.5.0",
		"description": "Live ledger activity from the Pakana reporting API",
		"endpoints": map[string]string{
			"GET /":                  "This page - Service information",
			"GET /health":            "Health check endpoint",
			"GET /metrics":           "Prometheus metrics for monitoring",
			"GET /dashboard":         "Full dashboard snapshot",
			"GET /dashboard/ledgers": "Recent ledgers and transaction series",
			"GET /dashboard/log":     "System event log, newest first",
			"POST /dashboard/lookup": "Look up an account ID or transaction hash",
			"POST /dashboard/anchor": "Save a lockb0x anchor draft",
			"GET /dashboard/consent": "Analytics consent choice",
			"PUT /dashboard/consent": "Set analytics consent (accepted or declined)",
		},
	}

	s.sendJSON(w, http.StatusOK, info)
}

// handleHealth returns health status
// GET /health - Health check including the preferences store
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if err := s.repository.Ping(r.Context()); err != nil {
		slog.Error("Preferences store unhealthy", "error", err)
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	health := map[string]interface{}{
		"status":    status,
		"mode":      s.dash.Mode(),
		"timestamp": time.Now().UTC(),
		"service":   "pakana-dashboard",
	}

	s.sendJSON(w, code, health)
}

// handleMetrics returns Prometheus metrics
// GET /metrics - Prometheus scraping endpoint
func (s *Server) handleMetrics() http.Handler {
	return promhttp.Handler()
}

// =============================================================================
// DASHBOARD ENDPOINTS
// =============================================================================

// handleSnapshot returns the whole dashboard state
// GET /dashboard
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, s.dash.Snapshot())
}

// handleLedgers returns the history window and chart series
// GET /dashboard/ledgers
func (s *Server) handleLedgers(w http.ResponseWriter, r *http.Request) {
	snap := s.dash.Snapshot()
	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"mode":               snap.Mode,
		"latest_ledger":      snap.Latest,
		"ledgers":            snap.Ledgers,
		"total_tx_series":    snap.TotalSeries,
		"filtered_tx_series": snap.FilteredSeries,
	})
}

// handleLog returns the event log, newest first
// GET /dashboard/log
func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	entries := s.dash.Log().Entries()
	s.sendJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}

// handleLookup resolves an account ID or transaction hash
// POST /dashboard/lookup {"query": "G..."}
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req models.LookupRequest
	if err := decodeBody(r, &req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// A lookup that started runs to completion even if the client goes away.
	account, err := s.looker.Lookup(context.WithoutCancel(r.Context()), req.Query)
	if err != nil {
		s.sendError(w, err.Error(), StatusForError(err))
		return
	}

	s.sendJSON(w, http.StatusOK, account)
}

// handleAnchor saves a lockb0x anchor draft and returns the unsigned envelope
// POST /dashboard/anchor {"url": "...", "provider_id": "...", "description": "..."}
func (s *Server) handleAnchor(w http.ResponseWriter, r *http.Request) {
	if s.anchorer == nil {
		s.sendError(w, "Anchoring is not configured", http.StatusNotImplemented)
		return
	}

	var req models.AnchorRequest
	if err := decodeBody(r, &req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := s.anchorer.Anchor(r.Context(), req)
	if err != nil {
		s.sendError(w, err.Error(), StatusForError(err))
		return
	}

	s.sendJSON(w, http.StatusCreated, resp)
}

// handleGetConsent returns the analytics consent choice
// GET /dashboard/consent
func (s *Server) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, models.ConsentRequest{Consent: s.dash.Consent()})
}

// handlePutConsent stores a new analytics consent choice
// PUT /dashboard/consent {"consent": "accepted"}
func (s *Server) handlePutConsent(w http.ResponseWriter, r *http.Request) {
	var req models.ConsentRequest
	if err := decodeBody(r, &req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Consent.Valid() {
		s.sendError(w, `consent must be "accepted" or "declined"`, http.StatusBadRequest)
		return
	}

	if err := s.repository.SaveConsent(r.Context(), req.Consent); err != nil {
		slog.Error("Failed to save consent", "error", err)
		s.sendError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.dash.SetConsent(r.Context(), req.Consent)

	s.sendJSON(w, http.StatusOK, req)
}
