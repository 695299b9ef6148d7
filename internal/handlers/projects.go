package handlers

import (
	"encoding/json"
	"net/http"

	"bidbeacon/db"
	"bidbeacon/internal/tracker"
)

var projectStatuses = map[string]bool{
	db.ProjectStatusActive:    true,
	db.ProjectStatusCompleted: true,
	db.ProjectStatusCancelled: true,
	db.ProjectStatusOnHold:    true,
}

func validateProjectRequest(p *db.Project) []FieldError {
	var errs []FieldError
	if p.Name == "" {
		errs = append(errs, FieldError{"name", "name is required"})
	}
	if p.Status != "" && !projectStatuses[p.Status] {
		errs = append(errs, FieldError{"status", "invalid status"})
	}
	return errs
}

func (h *Handler) GetProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.GetProjects(r.Context(), parseLimit(r))
	if err != nil {
		h.serverError(w, "list projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetActiveProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.GetActiveProjects(r.Context())
	if err != nil {
		h.serverError(w, "list active projects", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project id")
		return
	}
	project, err := h.Store.GetProjectByID(r.Context(), id)
	if err != nil {
		h.serverError(w, "get project", err)
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *Handler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var project db.Project
	if err := json.Unmarshal(body, &project); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if errs := validateProjectRequest(&project); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := h.Store.CreateProject(r.Context(), &project); err != nil {
		h.serverError(w, "create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *Handler) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project id")
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var in db.UpdateProject
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if in.Status != nil && !projectStatuses[*in.Status] {
		writeValidationErrors(w, []FieldError{{"status", "invalid status"}})
		return
	}
	project, err := h.Store.UpdateProject(r.Context(), id, in)
	if err != nil {
		h.serverError(w, "update project", err)
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *Handler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project id")
		return
	}
	deleted, err := h.Store.DeleteProject(r.Context(), id)
	if err != nil {
		h.serverError(w, "delete project", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetProjectBidsHandler returns the project's bids with relations resolved.
func (h *Handler) GetProjectBidsHandler(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlUUID(r, "projectId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid project id")
		return
	}
	bids, err := h.Store.GetBidsByProjectID(r.Context(), projectID)
	if err != nil {
		h.serverError(w, "list project bids", err)
		return
	}
	views, err := tracker.BidViews(r.Context(), h.Store, bids)
	if err != nil {
		h.serverError(w, "assemble project bids", err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}
