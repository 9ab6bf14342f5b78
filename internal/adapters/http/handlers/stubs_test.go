package handlers_test

import (
	"context"

	"github.com/taskfabric/taskfabric/internal/domain/board"
	"github.com/taskfabric/taskfabric/internal/domain/comment"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/domain/user"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// stubProjectService implements ports.ProjectService with per-method
// function fields. Unset methods panic, making unexpected calls obvious.
type stubProjectService struct {
	createFn       func(ctx context.Context, principalID string, p *project.Project) (*project.Project, error)
	listFn         func(ctx context.Context, principalID string, page, limit int) ([]project.Project, ports.Page, error)
	getFn          func(ctx context.Context, principalID, id string) (*project.Project, error)
	updateFn       func(ctx context.Context, principalID, id string, upd ports.ProjectUpdate) (*project.Project, error)
	deleteFn       func(ctx context.Context, principalID, id string) error
	inviteFn       func(ctx context.Context, principalID, projectID, email string, role project.Role) (*project.Project, error)
	removeMemberFn func(ctx context.Context, principalID, projectID, memberID string) (*project.Project, error)
}

func (s *stubProjectService) CreateProject(ctx context.Context, principalID string, p *project.Project) (*project.Project, error) {
	return s.createFn(ctx, principalID, p)
}

func (s *stubProjectService) ListProjects(ctx context.Context, principalID string, page, limit int) ([]project.Project, ports.Page, error) {
	return s.listFn(ctx, principalID, page, limit)
}

func (s *stubProjectService) GetProject(ctx context.Context, principalID, id string) (*project.Project, error) {
	return s.getFn(ctx, principalID, id)
}

func (s *stubProjectService) UpdateProject(ctx context.Context, principalID, id string, upd ports.ProjectUpdate) (*project.Project, error) {
	return s.updateFn(ctx, principalID, id, upd)
}

func (s *stubProjectService) DeleteProject(ctx context.Context, principalID, id string) error {
	return s.deleteFn(ctx, principalID, id)
}

func (s *stubProjectService) InviteMember(ctx context.Context, principalID, projectID, email string, role project.Role) (*project.Project, error) {
	return s.inviteFn(ctx, principalID, projectID, email, role)
}

func (s *stubProjectService) RemoveMember(ctx context.Context, principalID, projectID, memberID string) (*project.Project, error) {
	return s.removeMemberFn(ctx, principalID, projectID, memberID)
}

// stubBoardService implements ports.BoardService.
type stubBoardService struct {
	createFn func(ctx context.Context, principalID string, b *board.Board) (*board.Board, error)
	listFn   func(ctx context.Context, principalID, projectID string) ([]board.Board, error)
}

func (s *stubBoardService) CreateBoard(ctx context.Context, principalID string, b *board.Board) (*board.Board, error) {
	return s.createFn(ctx, principalID, b)
}

func (s *stubBoardService) ListBoards(ctx context.Context, principalID, projectID string) ([]board.Board, error) {
	return s.listFn(ctx, principalID, projectID)
}

// stubTaskService implements ports.TaskService.
type stubTaskService struct {
	createFn       func(ctx context.Context, principalID string, t *task.Task) (*task.Task, error)
	getFn          func(ctx context.Context, principalID, id string) (*task.Task, error)
	listFn         func(ctx context.Context, principalID, boardID string, f task.Filter) ([]task.Task, ports.Page, error)
	updateFn       func(ctx context.Context, principalID, id string, upd ports.TaskUpdate) (*task.Task, error)
	deleteFn       func(ctx context.Context, principalID, id string) error
	reorderFn      func(ctx context.Context, principalID string, moves []ports.TaskMove) error
	listActivityFn func(ctx context.Context, principalID, taskID string) ([]task.ActivityEntry, error)
}

func (s *stubTaskService) CreateTask(ctx context.Context, principalID string, t *task.Task) (*task.Task, error) {
	return s.createFn(ctx, principalID, t)
}

func (s *stubTaskService) GetTask(ctx context.Context, principalID, id string) (*task.Task, error) {
	return s.getFn(ctx, principalID, id)
}

func (s *stubTaskService) ListTasks(ctx context.Context, principalID, boardID string, f task.Filter) ([]task.Task, ports.Page, error) {
	return s.listFn(ctx, principalID, boardID, f)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, principalID, id string, upd ports.TaskUpdate) (*task.Task, error) {
	return s.updateFn(ctx, principalID, id, upd)
}

func (s *stubTaskService) DeleteTask(ctx context.Context, principalID, id string) error {
	return s.deleteFn(ctx, principalID, id)
}

func (s *stubTaskService) ReorderTasks(ctx context.Context, principalID string, moves []ports.TaskMove) error {
	return s.reorderFn(ctx, principalID, moves)
}

func (s *stubTaskService) ListActivity(ctx context.Context, principalID, taskID string) ([]task.ActivityEntry, error) {
	return s.listActivityFn(ctx, principalID, taskID)
}

// stubCommentService implements ports.CommentService.
type stubCommentService struct {
	createFn func(ctx context.Context, principalID, taskID, content string, parentID *string) (*comment.Comment, error)
	listFn   func(ctx context.Context, principalID, taskID string, page, limit int) ([]ports.CommentThread, ports.Page, error)
	updateFn func(ctx context.Context, principalID, id, content string) (*comment.Comment, error)
	deleteFn func(ctx context.Context, principalID, id string) error
}

func (s *stubCommentService) CreateComment(ctx context.Context, principalID, taskID, content string, parentID *string) (*comment.Comment, error) {
	return s.createFn(ctx, principalID, taskID, content, parentID)
}

func (s *stubCommentService) ListComments(ctx context.Context, principalID, taskID string, page, limit int) ([]ports.CommentThread, ports.Page, error) {
	return s.listFn(ctx, principalID, taskID, page, limit)
}

func (s *stubCommentService) UpdateComment(ctx context.Context, principalID, id, content string) (*comment.Comment, error) {
	return s.updateFn(ctx, principalID, id, content)
}

func (s *stubCommentService) DeleteComment(ctx context.Context, principalID, id string) error {
	return s.deleteFn(ctx, principalID, id)
}

// stubUserService implements ports.UserService.
type stubUserService struct {
	createFn func(ctx context.Context, u *user.User) (*user.User, error)
	getFn    func(ctx context.Context, id string) (*user.User, error)
}

func (s *stubUserService) CreateUser(ctx context.Context, u *user.User) (*user.User, error) {
	return s.createFn(ctx, u)
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.getFn(ctx, id)
}
