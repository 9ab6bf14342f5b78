package ports

import (
	"context"

	"github.com/taskfabric/taskfabric/internal/domain/board"
	"github.com/taskfabric/taskfabric/internal/domain/comment"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/domain/user"
)

// ProjectRepository persists projects together with their membership sets.
// Implemented by the storage adapter; called by the application layer.
type ProjectRepository interface {
	// Create persists a new project. The implementation assigns ID and
	// timestamps on the passed entity.
	Create(ctx context.Context, p *project.Project) error

	// GetByID returns a project with its members loaded.
	// Returns domain.ErrNotFound if the project does not exist.
	GetByID(ctx context.Context, id string) (*project.Project, error)

	// ListForUser returns active projects the user owns or is a member of,
	// newest-first, with zero-based pagination. The second return value is
	// the total match count before pagination.
	ListForUser(ctx context.Context, userID string, page, limit int) ([]project.Project, int, error)

	// Update persists name, description, color, and isActive changes.
	// Returns domain.ErrNotFound if the project does not exist.
	Update(ctx context.Context, p *project.Project) error

	// Delete removes a project. Boards, tasks, comments, and activity
	// beneath it are removed in the same operation.
	// Returns domain.ErrNotFound if the project does not exist.
	Delete(ctx context.Context, id string) error

	// AddMember appends a membership. Returns domain.ErrConflict if the
	// user is already a member (checked against the latest stored state).
	AddMember(ctx context.Context, projectID string, m project.Member) error

	// RemoveMember deletes the membership for userID.
	// Returns domain.ErrNotFound if no such membership exists.
	RemoveMember(ctx context.Context, projectID, userID string) error
}

// BoardRepository persists boards. A board's project reference is fixed at
// creation; no update operation exists for it.
type BoardRepository interface {
	// Create persists a new board with the default column set.
	Create(ctx context.Context, b *board.Board) error

	// GetByID returns a board by ID.
	// Returns domain.ErrNotFound if the board does not exist.
	GetByID(ctx context.Context, id string) (*board.Board, error)

	// ListByProject returns the project's active boards, newest-first.
	ListByProject(ctx context.Context, projectID string) ([]board.Board, error)
}

// PositionUpdate is one persisted outcome of a reorder plan: the task's
// final status and position. Status is written before position.
type PositionUpdate struct {
	TaskID   string
	Status   task.Status
	Position int
}

// TaskRepository persists tasks and their positions.
type TaskRepository interface {
	// Create persists a new task, assigning position as one past the
	// current maximum in the task's (board, status) partition, or 0 when
	// the partition is empty.
	Create(ctx context.Context, t *task.Task) error

	// GetByID returns a task by ID.
	// Returns domain.ErrNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*task.Task, error)

	// List returns the board's tasks matching the filter plus the total
	// match count before pagination.
	List(ctx context.Context, boardID string, f task.Filter) ([]task.Task, int, error)

	// ListPartition returns every task in the (board, status) partition
	// ordered by ascending position.
	ListPartition(ctx context.Context, boardID string, status task.Status) ([]task.Task, error)

	// Update persists all mutable task fields.
	// Returns domain.ErrNotFound if the task does not exist.
	Update(ctx context.Context, t *task.Task) error

	// Delete removes a task and, in the same operation, its comments and
	// activity entries.
	// Returns domain.ErrNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error

	// ApplyPositions writes a batch of (status, position) outcomes in a
	// single transaction.
	ApplyPositions(ctx context.Context, updates []PositionUpdate) error
}

// ActivityRepository is the append-only activity log. Entries are immutable
// once appended and vanish only with their owning task.
type ActivityRepository interface {
	// Append stores a new entry, assigning ID and timestamp.
	// Returns domain.ErrNotFound if the referenced task does not exist.
	Append(ctx context.Context, e *task.ActivityEntry) error

	// ListByTask returns the task's entries, newest-first.
	ListByTask(ctx context.Context, taskID string) ([]task.ActivityEntry, error)
}

// CommentRepository persists comments and their one-level reply threads.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, c *comment.Comment) error

	// GetByID returns a comment by ID.
	// Returns domain.ErrNotFound if the comment does not exist.
	GetByID(ctx context.Context, id string) (*comment.Comment, error)

	// ListTopLevel returns the task's top-level comments, newest-first,
	// with zero-based pagination, plus the total top-level count.
	ListTopLevel(ctx context.Context, taskID string, page, limit int) ([]comment.Comment, int, error)

	// ListReplies returns a comment's replies, oldest-first.
	ListReplies(ctx context.Context, parentID string) ([]comment.Comment, error)

	// Update persists content and edit-tracking fields.
	// Returns domain.ErrNotFound if the comment does not exist.
	Update(ctx context.Context, c *comment.Comment) error

	// DeleteCascade removes a comment and all its replies in a single
	// transaction. For a reply it removes only the reply itself.
	// Returns domain.ErrNotFound if the comment does not exist.
	DeleteCascade(ctx context.Context, id string) error
}

// UserRepository is the minimal principal directory.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrConflict if the email
	// is already registered.
	Create(ctx context.Context, u *user.User) error

	// GetByID returns a user by ID.
	// Returns domain.ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*user.User, error)

	// GetByEmail returns a user by email.
	// Returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
