package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/task"
)

// ActivityRepository implements ports.ActivityRepository.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository returns an activity repository backed by s.
func NewActivityRepository(s *Store) *ActivityRepository {
	return &ActivityRepository{db: s.db}
}

func (r *ActivityRepository) Append(ctx context.Context, e *task.ActivityEntry) error {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM tasks WHERE id = ?", e.TaskID)
	if err != nil {
		return fmt.Errorf("checking task %s: %w", e.TaskID, err)
	}
	if count == 0 {
		return fmt.Errorf("task %s: %w", e.TaskID, domain.ErrNotFound)
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.Timestamp = time.Now().UTC()

	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("marshaling details for activity %s: %w", e.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, task_id, action, performed_by, timestamp, details)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.TaskID, e.Action, e.PerformedBy, e.Timestamp, string(details),
	)
	if err != nil {
		return fmt.Errorf("inserting activity %s: %w", e.ID, err)
	}

	return nil
}

func (r *ActivityRepository) ListByTask(ctx context.Context, taskID string) ([]task.ActivityEntry, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, task_id, action, performed_by, timestamp, details
		FROM activity_log
		WHERE task_id = ?
		ORDER BY timestamp DESC, rowid DESC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("querying activity of task %s: %w", taskID, err)
	}
	defer rows.Close()

	var entries []task.ActivityEntry
	for rows.Next() {
		var (
			e       task.ActivityEntry
			details string
		)
		err := rows.Scan(&e.ID, &e.TaskID, &e.Action, &e.PerformedBy, &e.Timestamp, &details)
		if err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		if err := json.Unmarshal([]byte(details), &e.Details); err != nil {
			return nil, fmt.Errorf("unmarshaling details: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
