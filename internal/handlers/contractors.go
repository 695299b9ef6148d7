package handlers

import (
	"encoding/json"
	"net/http"

	"bidbeacon/db"
	"bidbeacon/internal/tracker"
)

func validateContractorRequest(c *db.Contractor) []FieldError {
	var errs []FieldError
	if c.Name == "" {
		errs = append(errs, FieldError{"name", "name is required"})
	}
	if c.Email == "" {
		errs = append(errs, FieldError{"email", "email is required"})
	}
	return errs
}

func (h *Handler) GetContractorsHandler(w http.ResponseWriter, r *http.Request) {
	contractors, err := h.Store.GetContractors(r.Context(), parseLimit(r))
	if err != nil {
		h.serverError(w, "list contractors", err)
		return
	}
	writeJSON(w, http.StatusOK, contractors)
}

func (h *Handler) GetContractorHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contractor id")
		return
	}
	contractor, err := h.Store.GetContractorByID(r.Context(), id)
	if err != nil {
		h.serverError(w, "get contractor", err)
		return
	}
	if contractor == nil {
		writeError(w, http.StatusNotFound, "Contractor not found")
		return
	}
	writeJSON(w, http.StatusOK, contractor)
}

func (h *Handler) CreateContractorHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var contractor db.Contractor
	if err := json.Unmarshal(body, &contractor); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if errs := validateContractorRequest(&contractor); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := h.Store.CreateContractor(r.Context(), &contractor); err != nil {
		h.serverError(w, "create contractor", err)
		return
	}
	writeJSON(w, http.StatusCreated, contractor)
}

func (h *Handler) UpdateContractorHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contractor id")
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var in db.UpdateContractor
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	contractor, err := h.Store.UpdateContractor(r.Context(), id, in)
	if err != nil {
		h.serverError(w, "update contractor", err)
		return
	}
	if contractor == nil {
		writeError(w, http.StatusNotFound, "Contractor not found")
		return
	}
	writeJSON(w, http.StatusOK, contractor)
}

func (h *Handler) DeleteContractorHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contractor id")
		return
	}
	deleted, err := h.Store.DeleteContractor(r.Context(), id)
	if err != nil {
		h.serverError(w, "delete contractor", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Contractor not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetContractorBidsHandler returns the contractor's bids with relations resolved.
func (h *Handler) GetContractorBidsHandler(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := urlUUID(r, "contractorId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contractor id")
		return
	}
	bids, err := h.Store.GetBidsByContractorID(r.Context(), contractorID)
	if err != nil {
		h.serverError(w, "list contractor bids", err)
		return
	}
	views, err := tracker.BidViews(r.Context(), h.Store, bids)
	if err != nil {
		h.serverError(w, "assemble contractor bids", err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}
