package handlers

import (
	"net/http"

	"github.com/taskfabric/taskfabric/internal/adapters/http/dto"
	"github.com/taskfabric/taskfabric/internal/domain/user"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// UserHandler handles HTTP requests for the minimal user directory.
type UserHandler struct {
	svc ports.UserService
}

// NewUserHandler creates a new UserHandler with the given service port.
func NewUserHandler(svc ports.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUser handles POST /api/v1/users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u := &user.User{
		Username: req.Username,
		Email:    req.Email,
	}

	created, err := h.svc.CreateUser(r.Context(), u)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "user created", dto.ToUserResponse(created))
}

// GetUser handles GET /api/v1/users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	u, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", dto.ToUserResponse(u))
}
