package handlers

import (
	"net/http"

	"github.com/taskfabric/taskfabric/internal/adapters/http/dto"
	"github.com/taskfabric/taskfabric/internal/domain/board"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// BoardHandler handles HTTP requests for board operations.
type BoardHandler struct {
	svc ports.BoardService
}

// NewBoardHandler creates a new BoardHandler with the given service port.
func NewBoardHandler(svc ports.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// CreateBoard handles POST /api/v1/boards.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBoardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b := &board.Board{
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	}

	created, err := h.svc.CreateBoard(r.Context(), principal(r), b)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "board created", dto.ToBoardResponse(created))
}

// ListBoards handles GET /api/v1/projects/{projectId}/boards.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUUID(r, "projectId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	boards, err := h.svc.ListBoards(r.Context(), principal(r), projectID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", dto.ToBoardListResponse(boards))
}
