// Package comment defines the Comment entity and its one-level threading
// rule: a comment may reference a parent, the parent must belong to the
// same task, and the parent must itself be top-level.
package comment

import (
	"strings"
	"time"

	"github.com/taskfabric/taskfabric/internal/domain"
)

const maxContentLen = 1000

// Comment is a message on a task, optionally a reply to a top-level
// comment.
type Comment struct {
	ID        string
	Content   string
	TaskID    string
	AuthorID  string
	ParentID  *string
	IsEdited  bool
	EditedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTopLevel reports whether the comment has no parent. Only top-level
// comments may carry replies.
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

// Validate checks business rules for the Comment entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (c *Comment) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(c.Content) == "" {
		fields["content"] = domain.MsgRequired
	}
	if len(c.Content) > maxContentLen {
		fields["content"] = "cannot exceed 1000 characters"
	}
	if c.TaskID == "" {
		fields["task"] = domain.MsgRequired
	}
	if c.AuthorID == "" {
		fields["author"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ValidateParent enforces the one-level threading invariant for a reply to
// parent. The parent must belong to the same task and must itself be
// top-level.
func ValidateParent(parent *Comment, taskID string) error {
	if parent.TaskID != taskID {
		return &domain.ValidationError{
			Fields: map[string]string{"parent_comment": "does not belong to this task"},
		}
	}
	if !parent.IsTopLevel() {
		return &domain.ValidationError{
			Fields: map[string]string{"parent_comment": "replies cannot be nested more than one level"},
		}
	}
	return nil
}
