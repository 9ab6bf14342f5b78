package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/ports"
)

const taskColumns = `id, title, description, status, priority, due_date, assigned_to,
	board_id, project_id, created_by, position, labels, attachments, created_at, updated_at`

// TaskRepository implements ports.TaskRepository.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository returns a task repository backed by s.
func NewTaskRepository(s *Store) *TaskRepository {
	return &TaskRepository{db: s.db}
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	labels, err := json.Marshal(t.Labels)
	if err != nil {
		return fmt.Errorf("marshaling labels for task %s: %w", t.ID, err)
	}
	attachments, err := json.Marshal(t.Attachments)
	if err != nil {
		return fmt.Errorf("marshaling attachments for task %s: %w", t.ID, err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// New tasks land at the end of their (board, status) partition.
	err = tx.GetContext(ctx, &t.Position, `
		SELECT COALESCE(MAX(position) + 1, 0) FROM tasks
		WHERE board_id = ? AND status = ?`,
		t.BoardID, t.Status.String(),
	)
	if err != nil {
		return fmt.Errorf("computing position for task %s: %w", t.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Status.String(), t.Priority.String(),
		nullTime(t.DueDate), nullString(t.AssignedTo),
		t.BoardID, t.ProjectID, t.CreatedBy, t.Position,
		string(labels), string(attachments), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting task %s: %w", t.ID, err)
	}

	return tx.Commit()
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*task.Task, error) {
	row := r.db.QueryRowxContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}

	return t, nil
}

// taskSortColumns is the allowlist of sortable columns. Unknown sort keys
// fall back to position. Priority is stored as TEXT, so it sorts by rank
// rather than lexicographically.
var taskSortColumns = map[string]string{
	"position":   "position",
	"title":      "title",
	"priority":   "CASE priority WHEN 'Low' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END",
	"due_date":   "due_date",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (r *TaskRepository) List(ctx context.Context, boardID string, f task.Filter) ([]task.Task, int, error) {
	conditions := []string{"board_id = ?"}
	args := []any{boardID}

	if f.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, f.Status.String())
	}
	if f.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, f.Priority.String())
	}
	if f.AssignedTo != nil {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, *f.AssignedTo)
	}
	if f.DueDate != nil && *f.DueDate != "" {
		day, err := time.Parse("2006-01-02", *f.DueDate)
		if err != nil {
			return nil, 0, &domain.ValidationError{
				Fields: map[string]string{"due_date": "must be a date in YYYY-MM-DD format"},
			}
		}
		conditions = append(conditions, "due_date >= ? AND due_date < ?")
		args = append(args, day.UTC(), day.UTC().AddDate(0, 0, 1))
	}
	if f.Search != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + f.Search + "%"
		args = append(args, q, q)
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM tasks"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("counting tasks of board %s: %w", boardID, err)
	}

	sortBy, ok := taskSortColumns[f.SortBy]
	if !ok {
		sortBy = "position"
	}
	direction := "ASC"
	if f.SortDesc {
		direction = "DESC"
	}

	query := "SELECT " + taskColumns + " FROM tasks" + where +
		fmt.Sprintf(" ORDER BY %s %s, rowid %s", sortBy, direction, direction)
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Page*f.Limit)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying tasks of board %s: %w", boardID, err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, *t)
	}

	return tasks, total, rows.Err()
}

func (r *TaskRepository) ListPartition(ctx context.Context, boardID string, status task.Status) ([]task.Task, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE board_id = ? AND status = ?
		ORDER BY position`,
		boardID, status.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying partition (%s, %s): %w", boardID, status, err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	t.UpdatedAt = time.Now().UTC()

	labels, err := json.Marshal(t.Labels)
	if err != nil {
		return fmt.Errorf("marshaling labels for task %s: %w", t.ID, err)
	}
	attachments, err := json.Marshal(t.Attachments)
	if err != nil {
		return fmt.Errorf("marshaling attachments for task %s: %w", t.ID, err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, due_date = ?,
			assigned_to = ?, position = ?, labels = ?, attachments = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, t.Status.String(), t.Priority.String(),
		nullTime(t.DueDate), nullString(t.AssignedTo), t.Position,
		string(labels), string(attachments), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", t.ID, err)
	}

	return requireRow(res, fmt.Sprintf("task %s", t.ID))
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	// Comments and activity entries cascade via foreign keys.
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}

	return requireRow(res, fmt.Sprintf("task %s", id))
}

func (r *TaskRepository) ApplyPositions(ctx context.Context, updates []ports.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		UPDATE tasks SET status = ?, position = ?, updated_at = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("preparing position update: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, u := range updates {
		if _, err := stmt.ExecContext(ctx, u.Status.String(), u.Position, now, u.TaskID); err != nil {
			return fmt.Errorf("updating position of task %s: %w", u.TaskID, err)
		}
	}

	return tx.Commit()
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t           task.Task
		status      string
		priority    string
		dueDate     sql.NullTime
		assignedTo  sql.NullString
		labels      string
		attachments string
	)

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &status, &priority,
		&dueDate, &assignedTo,
		&t.BoardID, &t.ProjectID, &t.CreatedBy, &t.Position,
		&labels, &attachments, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	t.DueDate = timePtr(dueDate)
	t.AssignedTo = stringPtr(assignedTo)

	if err := json.Unmarshal([]byte(labels), &t.Labels); err != nil {
		return nil, fmt.Errorf("unmarshaling labels: %w", err)
	}
	if err := json.Unmarshal([]byte(attachments), &t.Attachments); err != nil {
		return nil, fmt.Errorf("unmarshaling attachments: %w", err)
	}

	return &t, nil
}
