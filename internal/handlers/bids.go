package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"bidbeacon/db"
	"bidbeacon/internal/tracker"
)

var bidStatuses = map[string]bool{
	db.BidStatusSubmitted:       true,
	db.BidStatusUnderReview:     true,
	db.BidStatusApproved:        true,
	db.BidStatusRejected:        true,
	db.BidStatusContractPending: true,
	db.BidStatusContractSigned:  true,
	db.BidStatusWithdrawn:       true,
}

func validateBidRequest(b *db.Bid) []FieldError {
	var errs []FieldError
	if !b.BidAmount.Valid {
		errs = append(errs, FieldError{"bidAmount", "bidAmount is required"})
	}
	if b.Status != "" && !bidStatuses[b.Status] {
		errs = append(errs, FieldError{"status", "invalid status"})
	}
	return errs
}

// GetBidsHandler returns the newest bids with every relation resolved.
func (h *Handler) GetBidsHandler(w http.ResponseWriter, r *http.Request) {
	bids, err := h.Store.GetBids(r.Context(), parseLimit(r))
	if err != nil {
		h.serverError(w, "list bids", err)
		return
	}
	views, err := tracker.BidViews(r.Context(), h.Store, bids)
	if err != nil {
		h.serverError(w, "assemble bids", err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) GetBidHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}
	bid, err := h.Store.GetBidByID(r.Context(), id)
	if err != nil {
		h.serverError(w, "get bid", err)
		return
	}
	if bid == nil {
		writeError(w, http.StatusNotFound, "Bid not found")
		return
	}
	view, err := tracker.BidView(r.Context(), h.Store, *bid)
	if err != nil {
		h.serverError(w, "assemble bid", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) CreateBidHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var bid db.Bid
	if err := json.Unmarshal(body, &bid); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if errs := validateBidRequest(&bid); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := h.Store.CreateBid(r.Context(), &bid); err != nil {
		h.serverError(w, "create bid", err)
		return
	}
	writeJSON(w, http.StatusCreated, bid)
}

func (h *Handler) UpdateBidHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var in db.UpdateBid
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if in.Status != nil && !bidStatuses[*in.Status] {
		writeValidationErrors(w, []FieldError{{"status", "invalid status"}})
		return
	}
	bid, err := h.Store.UpdateBid(r.Context(), id, in)
	if err != nil {
		h.serverError(w, "update bid", err)
		return
	}
	if bid == nil {
		writeError(w, http.StatusNotFound, "Bid not found")
		return
	}
	writeJSON(w, http.StatusOK, bid)
}

func (h *Handler) DeleteBidHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}
	deleted, err := h.Store.DeleteBid(r.Context(), id)
	if err != nil {
		h.serverError(w, "delete bid", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Bid not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Bid documents

func validateBidDocumentRequest(d *db.BidDocument) []FieldError {
	var errs []FieldError
	if d.BidID == uuid.Nil {
		errs = append(errs, FieldError{"bidId", "bidId is required"})
	}
	if d.DocumentName == "" {
		errs = append(errs, FieldError{"documentName", "documentName is required"})
	}
	if d.DocumentURL == "" {
		errs = append(errs, FieldError{"documentUrl", "documentUrl is required"})
	}
	return errs
}

func (h *Handler) GetBidDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	bidID, ok := urlUUID(r, "bidId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}
	docs, err := h.Store.GetBidDocuments(r.Context(), bidID)
	if err != nil {
		h.serverError(w, "list bid documents", err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) CreateBidDocumentHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var doc db.BidDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if errs := validateBidDocumentRequest(&doc); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := h.Store.AddBidDocument(r.Context(), &doc); err != nil {
		h.serverError(w, "create bid document", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *Handler) DeleteBidDocumentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid document id")
		return
	}
	deleted, err := h.Store.DeleteBidDocument(r.Context(), id)
	if err != nil {
		h.serverError(w, "delete bid document", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Bid document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBidContractHandler returns the contract tied to a bid, if any.
func (h *Handler) GetBidContractHandler(w http.ResponseWriter, r *http.Request) {
	bidID, ok := urlUUID(r, "bidId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid bid id")
		return
	}
	contract, err := h.Store.GetContractByBidID(r.Context(), bidID)
	if err != nil {
		h.serverError(w, "get bid contract", err)
		return
	}
	if contract == nil {
		writeError(w, http.StatusNotFound, "Contract not found for this bid")
		return
	}
	writeJSON(w, http.StatusOK, contract)
}
