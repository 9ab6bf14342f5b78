package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/domain/task"
)

// CreateProjectRequest represents the JSON body for creating a new project.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateProjectRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateProjectRequest represents the JSON body for updating an existing
// project. All fields are optional; nil means "do not change this field".
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateProjectRequest) Validate() error {
	fields := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fields["name"] = domain.MsgMustNotEmpty
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// InviteMemberRequest represents the JSON body for adding a project member.
type InviteMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Validate checks that required fields are present and the role, when
// given, is recognized. Returns a *domain.ValidationError if any checks fail.
func (r *InviteMemberRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = domain.MsgRequired
	}
	if r.Role != "" && !project.Role(r.Role).IsValid() {
		fields["role"] = fmt.Sprintf("invalid: %q", r.Role)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateBoardRequest represents the JSON body for creating a new board.
type CreateBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"project_id"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateBoardRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if strings.TrimSpace(r.ProjectID) == "" {
		fields["project_id"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateTaskRequest represents the JSON body for creating a new task.
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status,omitempty"`
	Priority    string       `json:"priority,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	AssignedTo  *string      `json:"assigned_to,omitempty"`
	BoardID     string       `json:"board_id"`
	Labels      []task.Label `json:"labels,omitempty"`
}

// Validate checks that required fields are present and optional fields have
// valid values. Returns a *domain.ValidationError if any checks fail.
func (r *CreateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if strings.TrimSpace(r.BoardID) == "" {
		fields["board_id"] = domain.MsgRequired
	}
	if r.Status != "" && !task.Status(r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}
	if r.Priority != "" && !task.Priority(r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", r.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateTaskRequest represents the JSON body for updating an existing task.
// All fields are optional; nil means "do not change this field".
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	Position    *int       `json:"position,omitempty"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		fields["title"] = domain.MsgMustNotEmpty
	}
	if r.Status != nil && !task.Status(*r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", *r.Status)
	}
	if r.Priority != nil && !task.Priority(*r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", *r.Priority)
	}
	if r.Position != nil && *r.Position < 0 {
		fields["position"] = fmt.Sprintf("must be >= 0, got %d", *r.Position)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// TaskMoveRequest is one entry of a bulk reorder request.
type TaskMoveRequest struct {
	TaskID   string `json:"task_id"`
	Status   string `json:"status"`
	Position int    `json:"position"`
}

// ReorderTasksRequest represents the JSON body for the bulk drag-and-drop
// position update.
type ReorderTasksRequest struct {
	Tasks []TaskMoveRequest `json:"tasks"`
}

// Validate checks that the move list is non-empty and every entry names a
// task and a valid status. Returns a *domain.ValidationError if any checks
// fail.
func (r *ReorderTasksRequest) Validate() error {
	fields := make(map[string]string)

	if len(r.Tasks) == 0 {
		fields["tasks"] = domain.MsgMustNotEmpty
	}
	for i, m := range r.Tasks {
		if strings.TrimSpace(m.TaskID) == "" {
			fields[fmt.Sprintf("tasks[%d].task_id", i)] = domain.MsgRequired
		}
		if !task.Status(m.Status).IsValid() {
			fields[fmt.Sprintf("tasks[%d].status", i)] = fmt.Sprintf("invalid: %q", m.Status)
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateCommentRequest represents the JSON body for creating a comment,
// optionally as a reply to a top-level comment on the same task.
type CreateCommentRequest struct {
	Content  string  `json:"content"`
	TaskID   string  `json:"task_id"`
	ParentID *string `json:"parent_id,omitempty"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateCommentRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Content) == "" {
		fields["content"] = domain.MsgRequired
	}
	if strings.TrimSpace(r.TaskID) == "" {
		fields["task_id"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateCommentRequest represents the JSON body for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateCommentRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Content) == "" {
		fields["content"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateUserRequest represents the JSON body for registering a user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateUserRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		fields["username"] = domain.MsgRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
