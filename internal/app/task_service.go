package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/taskfabric/taskfabric/internal/app/ordering"
	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/access"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/platform/telemetry"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// Compile-time check that TaskService implements ports.TaskService.
var _ ports.TaskService = (*TaskService)(nil)

// TaskService implements ports.TaskService. It coordinates the task
// lifecycle, the position ordering engine, and the append-only activity
// log. Every operation resolves the task's ancestor project for
// authorization before any mutation.
type TaskService struct {
	tasks    ports.TaskRepository
	boards   ports.BoardRepository
	projects ports.ProjectRepository
	activity ports.ActivityRepository
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// NewTaskService creates a TaskService backed by the given repositories.
// metrics may be nil, in which case mutation counters are skipped.
func NewTaskService(
	tasks ports.TaskRepository,
	boards ports.BoardRepository,
	projects ports.ProjectRepository,
	activity ports.ActivityRepository,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *TaskService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TaskService{
		tasks:    tasks,
		boards:   boards,
		projects: projects,
		activity: activity,
		metrics:  metrics,
		logger:   logger,
	}
}

// countMutation increments the task mutation counter. Safe with nil metrics.
func (s *TaskService) countMutation(ctx context.Context, operation string) {
	if s.metrics == nil {
		return
	}
	s.metrics.TaskMutationTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrOperation.String(operation),
	))
}

// resolveProject loads the task's ancestor project and authorizes the
// principal for the given operation class.
func (s *TaskService) resolveProject(ctx context.Context, principalID, projectID string, class access.Class) (*project.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("resolving project: %w", err)
	}
	if err := access.Authorize(principalID, p, class); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateTask creates a task on t.BoardID. The project reference is
// denormalized from the board at creation time and never re-derived.
func (s *TaskService) CreateTask(ctx context.Context, principalID string, t *task.Task) (*task.Task, error) {
	s.logger.InfoContext(ctx, "creating task",
		slog.String("board_id", t.BoardID),
		slog.String("title", t.Title),
	)

	b, err := s.boards.GetByID(ctx, t.BoardID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to verify board",
			slog.String("operation", "CreateTask"),
			slog.String("board_id", t.BoardID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("verifying board: %w", err)
	}
	if _, err := s.resolveProject(ctx, principalID, b.ProjectID, access.WriteContent); err != nil {
		return nil, err
	}

	t.ProjectID = b.ProjectID
	t.CreatedBy = principalID
	if t.Status == "" {
		t.Status = task.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "failed to create task",
			slog.String("operation", "CreateTask"),
			slog.String("board_id", t.BoardID),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.appendActivity(ctx, t.ID, task.ActivityCreated, principalID, map[string]any{
		"title":  t.Title,
		"status": t.Status.String(),
	})
	s.countMutation(ctx, "create")

	return t, nil
}

// GetTask returns a single task.
func (s *TaskService) GetTask(ctx context.Context, principalID, id string) (*task.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveProject(ctx, principalID, t.ProjectID, access.Read); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns the board's tasks matching the filter, paginated.
func (s *TaskService) ListTasks(ctx context.Context, principalID, boardID string, f task.Filter) ([]task.Task, ports.Page, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit, defaultTaskPageLimit)

	b, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to verify board",
			slog.String("operation", "ListTasks"),
			slog.String("board_id", boardID),
			slog.Any("error", err),
		)
		return nil, ports.Page{}, err
	}
	if _, err := s.resolveProject(ctx, principalID, b.ProjectID, access.Read); err != nil {
		return nil, ports.Page{}, err
	}

	tasks, total, err := s.tasks.List(ctx, boardID, f)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tasks",
			slog.String("operation", "ListTasks"),
			slog.String("board_id", boardID),
			slog.Any("error", err),
		)
		return nil, ports.Page{}, err
	}

	return tasks, ports.Page{Page: f.Page, Limit: f.Limit, Total: total}, nil
}

// UpdateTask applies a partial update. Status, assignee, and priority
// changes are diffed against the prior value; if any differ, one activity
// entry records the old and new values.
func (s *TaskService) UpdateTask(ctx context.Context, principalID, id string, upd ports.TaskUpdate) (*task.Task, error) {
	s.logger.InfoContext(ctx, "updating task", slog.String("task_id", id))

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveProject(ctx, principalID, t.ProjectID, access.WriteContent); err != nil {
		return nil, err
	}

	diff := make(map[string]any)
	if upd.Status != nil && *upd.Status != t.Status {
		diff["oldStatus"] = t.Status.String()
		diff["newStatus"] = upd.Status.String()
	}
	if upd.AssignedTo != nil && (t.AssignedTo == nil || *upd.AssignedTo != *t.AssignedTo) {
		if t.AssignedTo != nil {
			diff["oldAssigned"] = *t.AssignedTo
		}
		diff["newAssigned"] = *upd.AssignedTo
	}
	if upd.Priority != nil && *upd.Priority != t.Priority {
		diff["oldPriority"] = t.Priority.String()
		diff["newPriority"] = upd.Priority.String()
	}

	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	}
	if upd.AssignedTo != nil {
		t.AssignedTo = upd.AssignedTo
	}
	if upd.Position != nil {
		t.Position = *upd.Position
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "failed to update task",
			slog.String("operation", "UpdateTask"),
			slog.String("task_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if len(diff) > 0 {
		s.appendActivity(ctx, t.ID, task.ActivityUpdated, principalID, diff)
	}
	s.countMutation(ctx, "update")

	return t, nil
}

// DeleteTask deletes a task together with its comments and activity trail.
func (s *TaskService) DeleteTask(ctx context.Context, principalID, id string) error {
	s.logger.InfoContext(ctx, "deleting task", slog.String("task_id", id))

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.resolveProject(ctx, principalID, t.ProjectID, access.WriteContent); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete task",
			slog.String("operation", "DeleteTask"),
			slog.String("task_id", id),
			slog.Any("error", err),
		)
		return err
	}

	s.countMutation(ctx, "delete")
	return nil
}

// ReorderTasks applies a bulk drag-and-drop reorder. Access is checked
// through the first move's task, matching the transport contract; the plan
// then only ever touches tasks on that task's board. Pure position moves
// never reach the activity log.
func (s *TaskService) ReorderTasks(ctx context.Context, principalID string, moves []ports.TaskMove) error {
	if len(moves) == 0 {
		return &domain.ValidationError{
			Fields: map[string]string{"tasks": "must not be empty"},
		}
	}

	s.logger.InfoContext(ctx, "reordering tasks", slog.Int("moves", len(moves)))

	first, err := s.tasks.GetByID(ctx, moves[0].TaskID)
	if err != nil {
		return err
	}
	if _, err := s.resolveProject(ctx, principalID, first.ProjectID, access.WriteContent); err != nil {
		return err
	}

	for _, m := range moves {
		if !m.Status.IsValid() {
			return &domain.ValidationError{
				Fields: map[string]string{"status": fmt.Sprintf("invalid: %q", m.Status)},
			}
		}
	}

	boardTasks, err := s.loadBoardTasks(ctx, first.BoardID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load board tasks",
			slog.String("operation", "ReorderTasks"),
			slog.String("board_id", first.BoardID),
			slog.Any("error", err),
		)
		return err
	}

	planned := make([]ordering.Move, len(moves))
	for i, m := range moves {
		planned[i] = ordering.Move{TaskID: m.TaskID, Status: m.Status, Index: m.Position}
	}

	updates := ordering.Plan(boardTasks, planned)
	if len(updates) == 0 {
		return nil
	}

	persisted := make([]ports.PositionUpdate, len(updates))
	for i, u := range updates {
		persisted[i] = ports.PositionUpdate{TaskID: u.TaskID, Status: u.Status, Position: u.Position}
	}

	if err := s.tasks.ApplyPositions(ctx, persisted); err != nil {
		s.logger.ErrorContext(ctx, "failed to apply positions",
			slog.String("operation", "ReorderTasks"),
			slog.String("board_id", first.BoardID),
			slog.Any("error", err),
		)
		return err
	}

	s.countMutation(ctx, "reorder")
	return nil
}

// loadBoardTasks returns every task on the board grouped by the fixed
// column set, each partition in ascending position order.
func (s *TaskService) loadBoardTasks(ctx context.Context, boardID string) ([]task.Task, error) {
	var all []task.Task
	for _, status := range []task.Status{task.StatusTodo, task.StatusInProgress, task.StatusDone} {
		partition, err := s.tasks.ListPartition(ctx, boardID, status)
		if err != nil {
			return nil, err
		}
		all = append(all, partition...)
	}
	return all, nil
}

// ListActivity returns the task's activity entries, newest-first.
func (s *TaskService) ListActivity(ctx context.Context, principalID, taskID string) ([]task.ActivityEntry, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveProject(ctx, principalID, t.ProjectID, access.Read); err != nil {
		return nil, err
	}

	entries, err := s.activity.ListByTask(ctx, taskID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list activity",
			slog.String("operation", "ListActivity"),
			slog.String("task_id", taskID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return entries, nil
}

// appendActivity records an audit entry. Append failures are logged but do
// not fail the mutation that produced them.
func (s *TaskService) appendActivity(ctx context.Context, taskID, action, performedBy string, details map[string]any) {
	entry := &task.ActivityEntry{
		TaskID:      taskID,
		Action:      action,
		PerformedBy: performedBy,
		Details:     details,
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "failed to append activity",
			slog.String("operation", "appendActivity"),
			slog.String("task_id", taskID),
			slog.String("action", action),
			slog.Any("error", err),
		)
	}
}
