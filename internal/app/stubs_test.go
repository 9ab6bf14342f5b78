package app_test

import (
	"context"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/board"
	"github.com/taskfabric/taskfabric/internal/domain/comment"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/domain/user"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// Hand-written repository stubs with function fields. Unset functions
// return zero values; lookups without a function report not found.

type stubProjectRepo struct {
	createFn       func(ctx context.Context, p *project.Project) error
	getByIDFn      func(ctx context.Context, id string) (*project.Project, error)
	listForUserFn  func(ctx context.Context, userID string, page, limit int) ([]project.Project, int, error)
	updateFn       func(ctx context.Context, p *project.Project) error
	deleteFn       func(ctx context.Context, id string) error
	addMemberFn    func(ctx context.Context, projectID string, m project.Member) error
	removeMemberFn func(ctx context.Context, projectID, userID string) error
}

func (s *stubProjectRepo) Create(ctx context.Context, p *project.Project) error {
	if s.createFn != nil {
		return s.createFn(ctx, p)
	}
	return nil
}

func (s *stubProjectRepo) GetByID(ctx context.Context, id string) (*project.Project, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubProjectRepo) ListForUser(ctx context.Context, userID string, page, limit int) ([]project.Project, int, error) {
	if s.listForUserFn != nil {
		return s.listForUserFn(ctx, userID, page, limit)
	}
	return nil, 0, nil
}

func (s *stubProjectRepo) Update(ctx context.Context, p *project.Project) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, p)
	}
	return nil
}

func (s *stubProjectRepo) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubProjectRepo) AddMember(ctx context.Context, projectID string, m project.Member) error {
	if s.addMemberFn != nil {
		return s.addMemberFn(ctx, projectID, m)
	}
	return nil
}

func (s *stubProjectRepo) RemoveMember(ctx context.Context, projectID, userID string) error {
	if s.removeMemberFn != nil {
		return s.removeMemberFn(ctx, projectID, userID)
	}
	return nil
}

type stubBoardRepo struct {
	createFn        func(ctx context.Context, b *board.Board) error
	getByIDFn       func(ctx context.Context, id string) (*board.Board, error)
	listByProjectFn func(ctx context.Context, projectID string) ([]board.Board, error)
}

func (s *stubBoardRepo) Create(ctx context.Context, b *board.Board) error {
	if s.createFn != nil {
		return s.createFn(ctx, b)
	}
	return nil
}

func (s *stubBoardRepo) GetByID(ctx context.Context, id string) (*board.Board, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubBoardRepo) ListByProject(ctx context.Context, projectID string) ([]board.Board, error) {
	if s.listByProjectFn != nil {
		return s.listByProjectFn(ctx, projectID)
	}
	return nil, nil
}

type stubTaskRepo struct {
	createFn         func(ctx context.Context, t *task.Task) error
	getByIDFn        func(ctx context.Context, id string) (*task.Task, error)
	listFn           func(ctx context.Context, boardID string, f task.Filter) ([]task.Task, int, error)
	listPartitionFn  func(ctx context.Context, boardID string, status task.Status) ([]task.Task, error)
	updateFn         func(ctx context.Context, t *task.Task) error
	deleteFn         func(ctx context.Context, id string) error
	applyPositionsFn func(ctx context.Context, updates []ports.PositionUpdate) error
}

func (s *stubTaskRepo) Create(ctx context.Context, t *task.Task) error {
	if s.createFn != nil {
		return s.createFn(ctx, t)
	}
	return nil
}

func (s *stubTaskRepo) GetByID(ctx context.Context, id string) (*task.Task, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubTaskRepo) List(ctx context.Context, boardID string, f task.Filter) ([]task.Task, int, error) {
	if s.listFn != nil {
		return s.listFn(ctx, boardID, f)
	}
	return nil, 0, nil
}

func (s *stubTaskRepo) ListPartition(ctx context.Context, boardID string, status task.Status) ([]task.Task, error) {
	if s.listPartitionFn != nil {
		return s.listPartitionFn(ctx, boardID, status)
	}
	return nil, nil
}

func (s *stubTaskRepo) Update(ctx context.Context, t *task.Task) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, t)
	}
	return nil
}

func (s *stubTaskRepo) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *stubTaskRepo) ApplyPositions(ctx context.Context, updates []ports.PositionUpdate) error {
	if s.applyPositionsFn != nil {
		return s.applyPositionsFn(ctx, updates)
	}
	return nil
}

type stubActivityRepo struct {
	appendFn     func(ctx context.Context, e *task.ActivityEntry) error
	listByTaskFn func(ctx context.Context, taskID string) ([]task.ActivityEntry, error)
}

func (s *stubActivityRepo) Append(ctx context.Context, e *task.ActivityEntry) error {
	if s.appendFn != nil {
		return s.appendFn(ctx, e)
	}
	return nil
}

func (s *stubActivityRepo) ListByTask(ctx context.Context, taskID string) ([]task.ActivityEntry, error) {
	if s.listByTaskFn != nil {
		return s.listByTaskFn(ctx, taskID)
	}
	return nil, nil
}

type stubCommentRepo struct {
	createFn        func(ctx context.Context, c *comment.Comment) error
	getByIDFn       func(ctx context.Context, id string) (*comment.Comment, error)
	listTopLevelFn  func(ctx context.Context, taskID string, page, limit int) ([]comment.Comment, int, error)
	listRepliesFn   func(ctx context.Context, parentID string) ([]comment.Comment, error)
	updateFn        func(ctx context.Context, c *comment.Comment) error
	deleteCascadeFn func(ctx context.Context, id string) error
}

func (s *stubCommentRepo) Create(ctx context.Context, c *comment.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, c)
	}
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id string) (*comment.Comment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubCommentRepo) ListTopLevel(ctx context.Context, taskID string, page, limit int) ([]comment.Comment, int, error) {
	if s.listTopLevelFn != nil {
		return s.listTopLevelFn(ctx, taskID, page, limit)
	}
	return nil, 0, nil
}

func (s *stubCommentRepo) ListReplies(ctx context.Context, parentID string) ([]comment.Comment, error) {
	if s.listRepliesFn != nil {
		return s.listRepliesFn(ctx, parentID)
	}
	return nil, nil
}

func (s *stubCommentRepo) Update(ctx context.Context, c *comment.Comment) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, c)
	}
	return nil
}

func (s *stubCommentRepo) DeleteCascade(ctx context.Context, id string) error {
	if s.deleteCascadeFn != nil {
		return s.deleteCascadeFn(ctx, id)
	}
	return nil
}

type stubUserRepo struct {
	createFn     func(ctx context.Context, u *user.User) error
	getByIDFn    func(ctx context.Context, id string) (*user.User, error)
	getByEmailFn func(ctx context.Context, email string) (*user.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, u *user.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, u)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

// projectWith returns a project owned by ownerID with the given members.
func projectWith(ownerID string, members ...project.Member) *project.Project {
	return &project.Project{
		ID:       "proj-1",
		Name:     "Website Redesign",
		Color:    project.DefaultColor,
		OwnerID:  ownerID,
		Members:  members,
		IsActive: true,
	}
}

// fixedProjectRepo always returns p from GetByID.
func fixedProjectRepo(p *project.Project) *stubProjectRepo {
	return &stubProjectRepo{
		getByIDFn: func(_ context.Context, _ string) (*project.Project, error) {
			return p, nil
		},
	}
}
