// Package board defines the Board entity: a Kanban surface inside a project
// with a fixed set of status columns.
package board

import (
	"strings"
	"time"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/task"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
)

// Column is one status lane on a board. Columns are fixed at creation and
// mirror the task status set.
type Column struct {
	Name  task.Status
	Order int
}

// DefaultColumns returns the fixed Todo / In Progress / Done column set
// every board is created with.
func DefaultColumns() []Column {
	return []Column{
		{Name: task.StatusTodo, Order: 0},
		{Name: task.StatusInProgress, Order: 1},
		{Name: task.StatusDone, Order: 2},
	}
}

// Board belongs to exactly one project. ProjectID is immutable once set;
// there is no operation that moves a board between projects.
type Board struct {
	ID          string
	Name        string
	Description string
	ProjectID   string
	CreatedBy   string
	Columns     []Column
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks business rules for the Board entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (b *Board) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(b.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if len(b.Name) > maxNameLen {
		fields["name"] = "cannot exceed 100 characters"
	}
	if len(b.Description) > maxDescriptionLen {
		fields["description"] = "cannot exceed 500 characters"
	}
	if b.ProjectID == "" {
		fields["project"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
