package handlers

import (
	"encoding/json"
	"net/http"

	"bidbeacon/db"
)

var emailTypes = map[string]bool{
	db.EmailTypeBidSubmission:   true,
	db.EmailTypeBidInquiry:      true,
	db.EmailTypeFollowUp:        true,
	db.EmailTypeContractRelated: true,
	db.EmailTypeProjectUpdate:   true,
	db.EmailTypeGeneralInquiry:  true,
	db.EmailTypeUnknown:         true,
}

var processingStatuses = map[string]bool{
	db.ProcessingUnprocessed: true,
	db.ProcessingProcessing:  true,
	db.ProcessingProcessed:   true,
	db.ProcessingFailed:      true,
	db.ProcessingNeedsReview: true,
}

func validateEmailRequest(e *db.EmailRecord) []FieldError {
	var errs []FieldError
	if e.Subject == "" {
		errs = append(errs, FieldError{"subject", "subject is required"})
	}
	if e.SenderEmail == "" {
		errs = append(errs, FieldError{"senderEmail", "senderEmail is required"})
	}
	if e.RecipientEmail == "" {
		errs = append(errs, FieldError{"recipientEmail", "recipientEmail is required"})
	}
	if e.EmailType != nil && !emailTypes[*e.EmailType] {
		errs = append(errs, FieldError{"emailType", "invalid emailType"})
	}
	if e.ProcessingStatus != "" && !processingStatuses[e.ProcessingStatus] {
		errs = append(errs, FieldError{"processingStatus", "invalid processingStatus"})
	}
	return errs
}

func (h *Handler) GetEmailsHandler(w http.ResponseWriter, r *http.Request) {
	emails, err := h.Store.GetEmailRecords(r.Context(), parseLimit(r))
	if err != nil {
		h.serverError(w, "list emails", err)
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

func (h *Handler) GetUnprocessedEmailsHandler(w http.ResponseWriter, r *http.Request) {
	emails, err := h.Store.GetUnprocessedEmails(r.Context())
	if err != nil {
		h.serverError(w, "list unprocessed emails", err)
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

func (h *Handler) GetEmailHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid email id")
		return
	}
	email, err := h.Store.GetEmailRecordByID(r.Context(), id)
	if err != nil {
		h.serverError(w, "get email", err)
		return
	}
	if email == nil {
		writeError(w, http.StatusNotFound, "Email not found")
		return
	}
	writeJSON(w, http.StatusOK, email)
}

func (h *Handler) CreateEmailHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var email db.EmailRecord
	if err := json.Unmarshal(body, &email); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if errs := validateEmailRequest(&email); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := h.Store.CreateEmailRecord(r.Context(), &email); err != nil {
		h.serverError(w, "create email", err)
		return
	}
	writeJSON(w, http.StatusCreated, email)
}

func (h *Handler) UpdateEmailHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid email id")
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var in db.UpdateEmailRecord
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	var errs []FieldError
	if in.EmailType != nil && !emailTypes[*in.EmailType] {
		errs = append(errs, FieldError{"emailType", "invalid emailType"})
	}
	if in.ProcessingStatus != nil && !processingStatuses[*in.ProcessingStatus] {
		errs = append(errs, FieldError{"processingStatus", "invalid processingStatus"})
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	email, err := h.Store.UpdateEmailRecord(r.Context(), id, in)
	if err != nil {
		h.serverError(w, "update email", err)
		return
	}
	if email == nil {
		writeError(w, http.StatusNotFound, "Email not found")
		return
	}
	writeJSON(w, http.StatusOK, email)
}
