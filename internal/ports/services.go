package ports

import (
	"context"
	"time"

	"github.com/taskfabric/taskfabric/internal/domain/board"
	"github.com/taskfabric/taskfabric/internal/domain/comment"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/domain/user"
)

// Page carries zero-based pagination state and totals for list responses.
type Page struct {
	Page  int
	Limit int
	Total int
}

// Pages returns the total page count for the limit, or 0 for a zero limit.
func (p Page) Pages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// ProjectUpdate is the partial field set accepted by UpdateProject.
// Nil means "do not change this field".
type ProjectUpdate struct {
	Name        *string
	Description *string
	Color       *string
	IsActive    *bool
}

// ProjectService defines the service port for project aggregate operations,
// including membership management. Every operation takes the authenticated
// principal's user ID; authorization failures return domain.ErrForbidden.
type ProjectService interface {
	// CreateProject creates a project owned by the principal and returns
	// the created entity with server-assigned fields.
	// Returns domain.ErrValidation if the project fails validation.
	CreateProject(ctx context.Context, principalID string, p *project.Project) (*project.Project, error)

	// ListProjects returns active projects the principal owns or belongs
	// to, newest-first, paginated.
	ListProjects(ctx context.Context, principalID string, page, limit int) ([]project.Project, Page, error)

	// GetProject returns a single project with members.
	// Returns domain.ErrNotFound / domain.ErrForbidden.
	GetProject(ctx context.Context, principalID, id string) (*project.Project, error)

	// UpdateProject applies a partial update. Owner or admin member only.
	UpdateProject(ctx context.Context, principalID, id string, upd ProjectUpdate) (*project.Project, error)

	// DeleteProject deletes a project and everything beneath it. Owner only.
	DeleteProject(ctx context.Context, principalID, id string) error

	// InviteMember adds the user registered under email as a member with
	// the given role. Owner or admin member only.
	// Returns domain.ErrNotFound if no user has that email and
	// domain.ErrConflict if the user is already a member or is the owner.
	InviteMember(ctx context.Context, principalID, projectID, email string, role project.Role) (*project.Project, error)

	// RemoveMember removes a membership. Owner or admin member only; the
	// owner cannot be targeted.
	RemoveMember(ctx context.Context, principalID, projectID, memberID string) (*project.Project, error)
}

// BoardService defines the service port for board operations.
type BoardService interface {
	// CreateBoard creates a board inside b.ProjectID with the default
	// column set. Any member or the owner may create boards.
	// Returns domain.ErrNotFound if the project does not exist.
	CreateBoard(ctx context.Context, principalID string, b *board.Board) (*board.Board, error)

	// ListBoards returns the project's active boards, newest-first.
	ListBoards(ctx context.Context, principalID, projectID string) ([]board.Board, error)
}

// TaskUpdate is the partial field set accepted by UpdateTask.
// Nil means "do not change this field".
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *task.Status
	Priority    *task.Priority
	DueDate     *time.Time
	AssignedTo  *string
	Position    *int
}

// TaskMove is one entry of a bulk drag-and-drop reorder: the task's
// destination status column and requested index within it.
type TaskMove struct {
	TaskID   string
	Status   task.Status
	Position int
}

// TaskService defines the service port for task operations, including the
// position ordering engine and the activity log reads.
type TaskService interface {
	// CreateTask creates a task on t.BoardID. The project reference is
	// denormalized from the board; position is assigned at the end of the
	// destination partition. Appends a "Task created" activity entry.
	// Returns domain.ErrNotFound if the board does not exist.
	CreateTask(ctx context.Context, principalID string, t *task.Task) (*task.Task, error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, principalID, id string) (*task.Task, error)

	// ListTasks returns the board's tasks matching the filter, paginated.
	ListTasks(ctx context.Context, principalID, boardID string, f task.Filter) ([]task.Task, Page, error)

	// UpdateTask applies a partial update. Changes to status, assignee, or
	// priority are diffed against the prior value and, when different,
	// recorded as one activity entry carrying old and new values.
	UpdateTask(ctx context.Context, principalID, id string, upd TaskUpdate) (*task.Task, error)

	// DeleteTask deletes a task together with its comments and activity.
	DeleteTask(ctx context.Context, principalID, id string) error

	// ReorderTasks applies a bulk drag-and-drop reorder. Access is checked
	// through the first move's task; all moves must target that task's
	// board. Affected (board, status) partitions are renumbered densely.
	// Bulk reorders do not append activity entries.
	ReorderTasks(ctx context.Context, principalID string, moves []TaskMove) error

	// ListActivity returns the task's activity entries, newest-first.
	ListActivity(ctx context.Context, principalID, taskID string) ([]task.ActivityEntry, error)
}

// CommentThread pairs a top-level comment with its full, oldest-first reply
// list.
type CommentThread struct {
	Comment comment.Comment
	Replies []comment.Comment
}

// CommentService defines the service port for threaded comments.
type CommentService interface {
	// CreateComment creates a comment on a task, optionally as a reply to
	// a top-level comment on the same task. Appends a "Comment added"
	// activity entry to the task.
	// Returns domain.ErrValidation when the parent belongs to another task
	// or is itself a reply.
	CreateComment(ctx context.Context, principalID, taskID, content string, parentID *string) (*comment.Comment, error)

	// ListComments returns top-level comments newest-first, paginated,
	// each carrying its complete reply list oldest-first.
	ListComments(ctx context.Context, principalID, taskID string, page, limit int) ([]CommentThread, Page, error)

	// UpdateComment edits a comment's content. Author only; marks the
	// comment edited.
	UpdateComment(ctx context.Context, principalID, id, content string) (*comment.Comment, error)

	// DeleteComment deletes a comment under the comment-moderate policy.
	// Deleting a top-level comment removes its replies in the same
	// operation; deleting a reply removes only the reply.
	DeleteComment(ctx context.Context, principalID, id string) error
}

// UserService defines the service port for the minimal user directory.
type UserService interface {
	// CreateUser registers a user.
	// Returns domain.ErrConflict if the email is taken.
	CreateUser(ctx context.Context, u *user.User) (*user.User, error)

	// GetUser returns a user by ID.
	GetUser(ctx context.Context, id string) (*user.User, error)
}
