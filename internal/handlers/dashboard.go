package handlers

import (
	"net/http"

	"bidbeacon/internal/tracker"
)

func (h *Handler) DashboardSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := tracker.Summary(r.Context(), h.Store)
	if err != nil {
		h.serverError(w, "dashboard summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) DashboardEmailStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := tracker.EmailTypeStats(r.Context(), h.Store)
	if err != nil {
		h.serverError(w, "dashboard email stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
