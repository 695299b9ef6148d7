package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bidbeacon/db"
)

func validateClassificationRequest(c *db.Classification) []FieldError {
	var errs []FieldError
	if c.Name == "" {
		errs = append(errs, FieldError{"name", "name is required"})
	}
	if c.Category == "" {
		errs = append(errs, FieldError{"category", "category is required"})
	}
	return errs
}

func (h *Handler) GetClassificationsHandler(w http.ResponseWriter, r *http.Request) {
	classifications, err := h.Store.GetClassifications(r.Context(), parseLimit(r))
	if err != nil {
		h.serverError(w, "list classifications", err)
		return
	}
	writeJSON(w, http.StatusOK, classifications)
}

func (h *Handler) GetClassificationsByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	classifications, err := h.Store.GetClassificationsByCategory(r.Context(), category)
	if err != nil {
		h.serverError(w, "list classifications by category", err)
		return
	}
	writeJSON(w, http.StatusOK, classifications)
}

func (h *Handler) CreateClassificationHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var classification db.Classification
	if err := json.Unmarshal(body, &classification); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if errs := validateClassificationRequest(&classification); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := h.Store.CreateClassification(r.Context(), &classification); err != nil {
		h.serverError(w, "create classification", err)
		return
	}
	writeJSON(w, http.StatusCreated, classification)
}

func (h *Handler) UpdateClassificationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid classification id")
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var in db.UpdateClassification
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	classification, err := h.Store.UpdateClassification(r.Context(), id, in)
	if err != nil {
		h.serverError(w, "update classification", err)
		return
	}
	if classification == nil {
		writeError(w, http.StatusNotFound, "Classification not found")
		return
	}
	writeJSON(w, http.StatusOK, classification)
}

func (h *Handler) DeleteClassificationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid classification id")
		return
	}
	deleted, err := h.Store.DeleteClassification(r.Context(), id)
	if err != nil {
		h.serverError(w, "delete classification", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Classification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Bid classifications (join rows)

func validateBidClassificationRequest(bc *db.BidClassification) []FieldError {
	var errs []FieldError
	if bc.BidID == uuid.Nil {
		errs = append(errs, FieldError{"bidId", "bidId is required"})
	}
	if bc.ClassificationID == uuid.Nil {
		errs = append(errs, FieldError{"classificationId", "classificationId is required"})
	}
	if bc.ConfidenceScore.Valid {
		score := bc.ConfidenceScore.Decimal
		if score.LessThan(decimal.Zero) || score.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, FieldError{"confidenceScore", "confidenceScore must be between 0 and 100"})
		}
	}
	return errs
}

func (h *Handler) GetBidClassificationsHandler(w http.ResponseWriter, r *http.Request) {
	bidID, ok := urlUUID(r, "bidId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}
	tags, err := h.Store.GetBidClassifications(r.Context(), bidID)
	if err != nil {
		h.serverError(w, "list bid classifications", err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *Handler) CreateBidClassificationHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var bc db.BidClassification
	if err := json.Unmarshal(body, &bc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if errs := validateBidClassificationRequest(&bc); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := h.Store.AddBidClassification(r.Context(), &bc); err != nil {
		h.serverError(w, "create bid classification", err)
		return
	}
	writeJSON(w, http.StatusCreated, bc)
}

func (h *Handler) DeleteBidClassificationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid bid classification id")
		return
	}
	deleted, err := h.Store.RemoveBidClassification(r.Context(), id)
	if err != nil {
		h.serverError(w, "delete bid classification", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Bid classification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
