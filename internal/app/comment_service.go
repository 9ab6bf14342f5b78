package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/access"
	"github.com/taskfabric/taskfabric/internal/domain/comment"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// Compile-time check that CommentService implements ports.CommentService.
var _ ports.CommentService = (*CommentService)(nil)

// CommentService implements ports.CommentService. Comments hang off tasks,
// so authorization always walks comment -> task -> project.
type CommentService struct {
	comments ports.CommentRepository
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	activity ports.ActivityRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService backed by the given
// repositories.
func NewCommentService(
	comments ports.CommentRepository,
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	activity ports.ActivityRepository,
	logger *slog.Logger,
) *CommentService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CommentService{
		comments: comments,
		tasks:    tasks,
		projects: projects,
		activity: activity,
		logger:   logger,
	}
}

// resolveTask loads the comment's owning task and authorizes the principal
// against the ancestor project.
func (s *CommentService) resolveTask(ctx context.Context, principalID, taskID string, class access.Class) (*task.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("resolving task: %w", err)
	}
	p, err := s.projects.GetByID(ctx, t.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("resolving project: %w", err)
	}
	if err := access.Authorize(principalID, p, class); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateComment creates a comment on taskID, optionally as a reply to a
// top-level comment on the same task. Threads are one level deep; replying
// to a reply is rejected.
func (s *CommentService) CreateComment(ctx context.Context, principalID, taskID, content string, parentID *string) (*comment.Comment, error) {
	s.logger.InfoContext(ctx, "creating comment",
		slog.String("task_id", taskID),
		slog.Bool("is_reply", parentID != nil),
	)

	if _, err := s.resolveTask(ctx, principalID, taskID, access.WriteContent); err != nil {
		return nil, err
	}

	c := &comment.Comment{
		Content:  content,
		TaskID:   taskID,
		AuthorID: principalID,
		ParentID: parentID,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to resolve parent comment",
				slog.String("operation", "CreateComment"),
				slog.String("parent_id", *parentID),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("resolving parent: %w", err)
		}
		if err := comment.ValidateParent(parent, taskID); err != nil {
			return nil, err
		}
	}

	if err := s.comments.Create(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "failed to create comment",
			slog.String("operation", "CreateComment"),
			slog.String("task_id", taskID),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.appendCommentActivity(ctx, c, principalID)

	return c, nil
}

// appendCommentActivity records the "Comment added" trail entry. Failures
// are logged, not surfaced.
func (s *CommentService) appendCommentActivity(ctx context.Context, c *comment.Comment, performedBy string) {
	entry := &task.ActivityEntry{
		TaskID:      c.TaskID,
		Action:      task.ActivityCommentAdded,
		PerformedBy: performedBy,
		Details: map[string]any{
			"commentId": c.ID,
			"isReply":   !c.IsTopLevel(),
		},
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "failed to append activity",
			slog.String("operation", "CreateComment"),
			slog.String("task_id", c.TaskID),
			slog.Any("error", err),
		)
	}
}

// ListComments returns top-level comments newest-first, each with its full
// reply list oldest-first.
func (s *CommentService) ListComments(ctx context.Context, principalID, taskID string, page, limit int) ([]ports.CommentThread, ports.Page, error) {
	page, limit = normalizePage(page, limit, defaultCommentPageLimit)

	if _, err := s.resolveTask(ctx, principalID, taskID, access.Read); err != nil {
		return nil, ports.Page{}, err
	}

	topLevel, total, err := s.comments.ListTopLevel(ctx, taskID, page, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list comments",
			slog.String("operation", "ListComments"),
			slog.String("task_id", taskID),
			slog.Any("error", err),
		)
		return nil, ports.Page{}, err
	}

	threads := make([]ports.CommentThread, len(topLevel))
	for i, c := range topLevel {
		replies, err := s.comments.ListReplies(ctx, c.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to list replies",
				slog.String("operation", "ListComments"),
				slog.String("comment_id", c.ID),
				slog.Any("error", err),
			)
			return nil, ports.Page{}, err
		}
		threads[i] = ports.CommentThread{Comment: c, Replies: replies}
	}

	return threads, ports.Page{Page: page, Limit: limit, Total: total}, nil
}

// UpdateComment edits a comment's content. Only the author may edit; the
// comment is marked edited with the edit time.
func (s *CommentService) UpdateComment(ctx context.Context, principalID, id, content string) (*comment.Comment, error) {
	s.logger.InfoContext(ctx, "updating comment", slog.String("comment_id", id))

	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveTask(ctx, principalID, c.TaskID, access.Read); err != nil {
		return nil, err
	}
	if c.AuthorID != principalID {
		return nil, fmt.Errorf("%w: only the author may edit a comment", domain.ErrForbidden)
	}

	c.Content = content
	if err := c.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c.IsEdited = true
	c.EditedAt = &now

	if err := s.comments.Update(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "failed to update comment",
			slog.String("operation", "UpdateComment"),
			slog.String("comment_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return c, nil
}

// DeleteComment deletes a comment under the moderate policy: project owner,
// the comment's author, or any project member. Deleting a top-level comment
// removes its replies too.
func (s *CommentService) DeleteComment(ctx context.Context, principalID, id string) error {
	s.logger.InfoContext(ctx, "deleting comment", slog.String("comment_id", id))

	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	t, err := s.tasks.GetByID(ctx, c.TaskID)
	if err != nil {
		return fmt.Errorf("resolving task: %w", err)
	}
	p, err := s.projects.GetByID(ctx, t.ProjectID)
	if err != nil {
		return fmt.Errorf("resolving project: %w", err)
	}
	if err := access.AuthorizeCommentDelete(principalID, p, c.AuthorID); err != nil {
		return err
	}

	if err := s.comments.DeleteCascade(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete comment",
			slog.String("operation", "DeleteComment"),
			slog.String("comment_id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}
