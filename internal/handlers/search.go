package handlers

import (
	"net/http"

	"bidbeacon/internal/tracker"
)

// searchQuery pulls the q parameter; a missing or empty q is a client error.
func searchQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return "", false
	}
	return q, true
}

func (h *Handler) SearchProjectsHandler(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}
	projects, err := h.Store.SearchProjects(r.Context(), q)
	if err != nil {
		h.serverError(w, "search projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) SearchContractorsHandler(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}
	contractors, err := h.Store.SearchContractors(r.Context(), q)
	if err != nil {
		h.serverError(w, "search contractors", err)
		return
	}
	writeJSON(w, http.StatusOK, contractors)
}

func (h *Handler) SearchEmailsHandler(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}
	emails, err := h.Store.SearchEmails(r.Context(), q)
	if err != nil {
		h.serverError(w, "search emails", err)
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

// SearchBidsHandler runs the federated bid search and returns assembled views.
func (h *Handler) SearchBidsHandler(w http.ResponseWriter, r *http.Request) {
	q, ok := searchQuery(w, r)
	if !ok {
		return
	}
	views, err := tracker.SearchBids(r.Context(), h.Store, q)
	if err != nil {
		h.serverError(w, "search bids", err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}
