// Package dto provides HTTP request/response data transfer objects and the
// response envelope for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/taskfabric/taskfabric/internal/domain/board"
	"github.com/taskfabric/taskfabric/internal/domain/comment"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/domain/user"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// SuccessResponse is the envelope returned for every successful request.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Pagination carries zero-based pagination state for list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ToPagination converts a ports.Page to the response representation.
func ToPagination(p ports.Page) Pagination {
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: p.Total,
		Pages: p.Pages(),
	}
}

// MemberResponse represents a single project membership in HTTP responses.
type MemberResponse struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

// ProjectResponse represents a single project in HTTP responses.
type ProjectResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Color       string           `json:"color"`
	OwnerID     string           `json:"owner_id"`
	Members     []MemberResponse `json:"members"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

// ProjectListResponse represents a paginated list of projects.
type ProjectListResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	Pagination Pagination        `json:"pagination"`
}

// ToProjectResponse converts a domain Project entity to an HTTP response DTO.
func ToProjectResponse(p *project.Project) ProjectResponse {
	members := make([]MemberResponse, len(p.Members))
	for i, m := range p.Members {
		members[i] = MemberResponse{
			UserID:   m.UserID,
			Role:     m.Role.String(),
			JoinedAt: m.JoinedAt.Format(time.RFC3339),
		}
	}
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		OwnerID:     p.OwnerID,
		Members:     members,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

// ToProjectListResponse converts a page of domain Project entities to an
// HTTP list response DTO.
func ToProjectListResponse(projects []project.Project, page ports.Page) ProjectListResponse {
	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	return ProjectListResponse{
		Projects:   items,
		Pagination: ToPagination(page),
	}
}

// ColumnResponse represents a single status column in HTTP responses.
type ColumnResponse struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// BoardResponse represents a single board in HTTP responses.
type BoardResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ProjectID   string           `json:"project_id"`
	CreatedBy   string           `json:"created_by"`
	Columns     []ColumnResponse `json:"columns"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

// BoardListResponse represents a list of boards.
type BoardListResponse struct {
	Boards []BoardResponse `json:"boards"`
}

// ToBoardResponse converts a domain Board entity to an HTTP response DTO.
func ToBoardResponse(b *board.Board) BoardResponse {
	columns := make([]ColumnResponse, len(b.Columns))
	for i, c := range b.Columns {
		columns[i] = ColumnResponse{Name: c.Name.String(), Order: c.Order}
	}
	return BoardResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		ProjectID:   b.ProjectID,
		CreatedBy:   b.CreatedBy,
		Columns:     columns,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

// ToBoardListResponse converts a slice of domain Board entities to an HTTP
// list response DTO.
func ToBoardListResponse(boards []board.Board) BoardListResponse {
	items := make([]BoardResponse, len(boards))
	for i := range boards {
		items[i] = ToBoardResponse(&boards[i])
	}
	return BoardListResponse{Boards: items}
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	DueDate     *string           `json:"due_date,omitempty"`
	AssignedTo  *string           `json:"assigned_to,omitempty"`
	BoardID     string            `json:"board_id"`
	ProjectID   string            `json:"project_id"`
	CreatedBy   string            `json:"created_by"`
	Position    int               `json:"position"`
	Labels      []task.Label      `json:"labels"`
	Attachments []task.Attachment `json:"attachments"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks.
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Pagination Pagination     `json:"pagination"`
}

// ToTaskResponse converts a domain Task entity to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		AssignedTo:  t.AssignedTo,
		BoardID:     t.BoardID,
		ProjectID:   t.ProjectID,
		CreatedBy:   t.CreatedBy,
		Position:    t.Position,
		Labels:      t.Labels,
		Attachments: t.Attachments,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Labels == nil {
		resp.Labels = []task.Label{}
	}
	if resp.Attachments == nil {
		resp.Attachments = []task.Attachment{}
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(time.RFC3339)
		resp.DueDate = &due
	}
	return resp
}

// ToTaskListResponse converts a page of domain Task entities to an HTTP
// list response DTO.
func ToTaskListResponse(tasks []task.Task, page ports.Page) TaskListResponse {
	items := make([]TaskResponse, len(tasks))
	for i := range tasks {
		items[i] = ToTaskResponse(&tasks[i])
	}
	return TaskListResponse{
		Tasks:      items,
		Pagination: ToPagination(page),
	}
}

// ActivityResponse represents a single activity log entry in HTTP responses.
type ActivityResponse struct {
	ID          string         `json:"id"`
	TaskID      string         `json:"task_id"`
	Action      string         `json:"action"`
	PerformedBy string         `json:"performed_by"`
	Timestamp   string         `json:"timestamp"`
	Details     map[string]any `json:"details,omitempty"`
}

// ActivityListResponse represents a task's activity log, newest-first.
type ActivityListResponse struct {
	Activity []ActivityResponse `json:"activity"`
}

// ToActivityListResponse converts domain activity entries to an HTTP list
// response DTO.
func ToActivityListResponse(entries []task.ActivityEntry) ActivityListResponse {
	items := make([]ActivityResponse, len(entries))
	for i, e := range entries {
		items[i] = ActivityResponse{
			ID:          e.ID,
			TaskID:      e.TaskID,
			Action:      e.Action,
			PerformedBy: e.PerformedBy,
			Timestamp:   e.Timestamp.Format(time.RFC3339),
			Details:     e.Details,
		}
	}
	return ActivityListResponse{Activity: items}
}

// CommentResponse represents a single comment in HTTP responses. Top-level
// comments carry their reply list; replies have a parent_id and no replies
// of their own.
type CommentResponse struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	TaskID    string            `json:"task_id"`
	AuthorID  string            `json:"author_id"`
	ParentID  *string           `json:"parent_id,omitempty"`
	IsEdited  bool              `json:"is_edited"`
	EditedAt  *string           `json:"edited_at,omitempty"`
	Replies   []CommentResponse `json:"replies,omitempty"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

// CommentListResponse represents a paginated page of top-level comments
// with their reply threads.
type CommentListResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination Pagination        `json:"pagination"`
}

// ToCommentResponse converts a domain Comment entity to an HTTP response DTO.
func ToCommentResponse(c *comment.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		IsEdited:  c.IsEdited,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
	if c.EditedAt != nil {
		edited := c.EditedAt.Format(time.RFC3339)
		resp.EditedAt = &edited
	}
	return resp
}

// ToCommentListResponse converts a page of comment threads to an HTTP list
// response DTO.
func ToCommentListResponse(threads []ports.CommentThread, page ports.Page) CommentListResponse {
	items := make([]CommentResponse, len(threads))
	for i := range threads {
		item := ToCommentResponse(&threads[i].Comment)
		item.Replies = make([]CommentResponse, len(threads[i].Replies))
		for j := range threads[i].Replies {
			item.Replies[j] = ToCommentResponse(&threads[i].Replies[j])
		}
		items[i] = item
	}
	return CommentListResponse{
		Comments:   items,
		Pagination: ToPagination(page),
	}
}

// UserResponse represents a single user in HTTP responses.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ToUserResponse converts a domain User entity to an HTTP response DTO.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
