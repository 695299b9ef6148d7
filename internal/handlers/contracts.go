package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"bidbeacon/db"
)

var contractStatuses = map[string]bool{
	db.ContractStatusDraft:      true,
	db.ContractStatusSent:       true,
	db.ContractStatusSigned:     true,
	db.ContractStatusActive:     true,
	db.ContractStatusExpired:    true,
	db.ContractStatusTerminated: true,
}

func validateContractRequest(c *db.Contract) []FieldError {
	var errs []FieldError
	if c.BidID == uuid.Nil {
		errs = append(errs, FieldError{"bidId", "bidId is required"})
	}
	if c.Status != "" && !contractStatuses[c.Status] {
		errs = append(errs, FieldError{"status", "invalid status"})
	}
	return errs
}

func (h *Handler) GetContractsHandler(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Store.GetContracts(r.Context(), parseLimit(r))
	if err != nil {
		h.serverError(w, "list contracts", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts)
}

func (h *Handler) GetContractHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contract id")
		return
	}
	contract, err := h.Store.GetContractByID(r.Context(), id)
	if err != nil {
		h.serverError(w, "get contract", err)
		return
	}
	if contract == nil {
		writeError(w, http.StatusNotFound, "Contract not found")
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *Handler) CreateContractHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var contract db.Contract
	if err := json.Unmarshal(body, &contract); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if errs := validateContractRequest(&contract); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := h.Store.CreateContract(r.Context(), &contract); err != nil {
		h.serverError(w, "create contract", err)
		return
	}
	writeJSON(w, http.StatusCreated, contract)
}

func (h *Handler) UpdateContractHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contract id")
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var in db.UpdateContract
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if in.Status != nil && !contractStatuses[*in.Status] {
		writeValidationErrors(w, []FieldError{{"status", "invalid status"}})
		return
	}
	contract, err := h.Store.UpdateContract(r.Context(), id, in)
	if err != nil {
		h.serverError(w, "update contract", err)
		return
	}
	if contract == nil {
		writeError(w, http.StatusNotFound, "Contract not found")
		return
	}
	writeJSON(w, http.StatusOK, contract)
}

func (h *Handler) DeleteContractHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid contract id")
		return
	}
	deleted, err := h.Store.DeleteContract(r.Context(), id)
	if err != nil {
		h.serverError(w, "delete contract", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Contract not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
