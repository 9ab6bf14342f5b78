package handlers

import (
	"net/http"

	"github.com/taskfabric/taskfabric/internal/adapters/http/dto"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// CommentHandler handles HTTP requests for threaded task comments.
type CommentHandler struct {
	svc ports.CommentService
}

// NewCommentHandler creates a new CommentHandler with the given service port.
func NewCommentHandler(svc ports.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// CreateComment handles POST /api/v1/comments.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateComment(r.Context(), principal(r), req.TaskID, req.Content, req.ParentID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "comment created", dto.ToCommentResponse(created))
}

// ListComments handles GET /api/v1/tasks/{taskId}/comments.
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	taskID, err := parseUUID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	page, limit := parsePagination(r)

	threads, pg, err := h.svc.ListComments(r.Context(), principal(r), taskID, page, limit)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", dto.ToCommentListResponse(threads, pg))
}

// UpdateComment handles PUT /api/v1/comments/{id}.
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateComment(r.Context(), principal(r), id, req.Content)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "comment updated", dto.ToCommentResponse(updated))
}

// DeleteComment handles DELETE /api/v1/comments/{id}.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), principal(r), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "comment deleted", nil)
}
