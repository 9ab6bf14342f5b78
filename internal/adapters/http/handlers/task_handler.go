package handlers

import (
	"net/http"

	"github.com/taskfabric/taskfabric/internal/adapters/http/dto"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// TaskHandler handles HTTP requests for task CRUD, filtering, bulk
// reordering, and the activity log.
type TaskHandler struct {
	svc ports.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given service port.
func NewTaskHandler(svc ports.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateTask handles POST /api/v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t := &task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.Status(req.Status),
		Priority:    task.Priority(req.Priority),
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		BoardID:     req.BoardID,
		Labels:      req.Labels,
	}

	created, err := h.svc.CreateTask(r.Context(), principal(r), t)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "task created", dto.ToTaskResponse(created))
}

// ListTasks handles GET /api/v1/boards/{boardId}/tasks with filter, sort,
// and pagination query parameters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	boardID, err := parseUUID(r, "boardId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	f := parseTaskFilter(r)

	tasks, pg, err := h.svc.ListTasks(r.Context(), principal(r), boardID, f)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", dto.ToTaskListResponse(tasks, pg))
}

// GetTask handles GET /api/v1/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	t, err := h.svc.GetTask(r.Context(), principal(r), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", dto.ToTaskResponse(t))
}

// UpdateTask handles PUT /api/v1/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	upd := ports.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		Position:    req.Position,
	}
	if req.Status != nil {
		s := task.Status(*req.Status)
		upd.Status = &s
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		upd.Priority = &p
	}

	updated, err := h.svc.UpdateTask(r.Context(), principal(r), id, upd)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "task updated", dto.ToTaskResponse(updated))
}

// DeleteTask handles DELETE /api/v1/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteTask(r.Context(), principal(r), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "task deleted", nil)
}

// UpdatePositions handles PUT /api/v1/tasks/update-positions.
func (h *TaskHandler) UpdatePositions(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderTasksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	moves := make([]ports.TaskMove, len(req.Tasks))
	for i, m := range req.Tasks {
		moves[i] = ports.TaskMove{
			TaskID:   m.TaskID,
			Status:   task.Status(m.Status),
			Position: m.Position,
		}
	}

	if err := h.svc.ReorderTasks(r.Context(), principal(r), moves); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "positions updated", nil)
}

// ListActivity handles GET /api/v1/tasks/{id}/activity.
func (h *TaskHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	entries, err := h.svc.ListActivity(r.Context(), principal(r), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", dto.ToActivityListResponse(entries))
}

// parseTaskFilter reads the task list filter, sort, and pagination query
// parameters. Unknown status or priority values are dropped rather than
// rejected, matching the permissive list contract.
func parseTaskFilter(r *http.Request) task.Filter {
	q := r.URL.Query()

	var f task.Filter
	f.Page, f.Limit = parsePagination(r)

	if s := task.Status(q.Get("status")); s.IsValid() {
		f.Status = &s
	}
	if p := task.Priority(q.Get("priority")); p.IsValid() {
		f.Priority = &p
	}
	if assigned := q.Get("assigned_to"); assigned != "" {
		f.AssignedTo = &assigned
	}
	if due := q.Get("due_date"); due != "" {
		f.DueDate = &due
	}
	f.Search = q.Get("search")
	f.SortBy = q.Get("sort_by")
	f.SortDesc = q.Get("sort_order") == "desc"

	return f
}
