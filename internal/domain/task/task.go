// Package task defines the Task entity, its status and priority enums, the
// listing filter, and the per-task activity trail.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskfabric/taskfabric/internal/domain"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// Label is a named color tag attached to a task.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Attachment is opaque file metadata carried on a task. Storage semantics
// live outside the core.
type Attachment struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Task is a unit of work on a board. Position is a non-negative integer
// unique within the (board, status) partition; the ordering engine owns
// renumbering, never the caller. ProjectID is denormalized from the board
// at creation and never re-derived.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	AssignedTo  *string
	BoardID     string
	ProjectID   string
	CreatedBy   string
	Position    int
	Labels      []Label
	Attachments []Attachment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks business rules for the Task entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (t *Task) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if len(t.Title) > maxTitleLen {
		fields["title"] = "cannot exceed 200 characters"
	}
	if len(t.Description) > maxDescriptionLen {
		fields["description"] = "cannot exceed 1000 characters"
	}
	if !t.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", t.Status)
	}
	if !t.Priority.IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", t.Priority)
	}
	if t.BoardID == "" {
		fields["board"] = domain.MsgRequired
	}
	if t.Position < 0 {
		fields["position"] = fmt.Sprintf("must be non-negative, got %d", t.Position)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
