// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/taskfabric/taskfabric/internal/adapters/http/dto"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// ProjectHandler handles HTTP requests for project CRUD and membership
// management.
type ProjectHandler struct {
	svc ports.ProjectService
}

// NewProjectHandler creates a new ProjectHandler with the given service port.
func NewProjectHandler(svc ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProject handles POST /api/v1/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p := &project.Project{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}

	created, err := h.svc.CreateProject(r.Context(), principal(r), p)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "project created", dto.ToProjectResponse(created))
}

// ListProjects handles GET /api/v1/projects.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	projects, pg, err := h.svc.ListProjects(r.Context(), principal(r), page, limit)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", dto.ToProjectListResponse(projects, pg))
}

// GetProject handles GET /api/v1/projects/{id}.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, err := h.svc.GetProject(r.Context(), principal(r), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", dto.ToProjectResponse(p))
}

// UpdateProject handles PUT /api/v1/projects/{id}.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	upd := ports.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    req.IsActive,
	}

	updated, err := h.svc.UpdateProject(r.Context(), principal(r), id, upd)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "project updated", dto.ToProjectResponse(updated))
}

// DeleteProject handles DELETE /api/v1/projects/{id}.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteProject(r.Context(), principal(r), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "project deleted", nil)
}

// InviteMember handles POST /api/v1/projects/{id}/invite.
func (h *ProjectHandler) InviteMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.InviteMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role := project.RoleMember
	if req.Role != "" {
		role = project.Role(req.Role)
	}

	p, err := h.svc.InviteMember(r.Context(), principal(r), id, req.Email, role)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "member added", dto.ToProjectResponse(p))
}

// RemoveMember handles DELETE /api/v1/projects/{id}/members/{memberId}.
func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	memberID, err := parseUUID(r, "memberId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, err := h.svc.RemoveMember(r.Context(), principal(r), id, memberID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "member removed", dto.ToProjectResponse(p))
}
