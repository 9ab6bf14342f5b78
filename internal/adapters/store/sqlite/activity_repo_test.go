package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/taskfabric/taskfabric/internal/adapters/store/sqlite"
	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/task"
)

func TestActivityRepository_Append_MissingTask(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	repo := sqlite.NewActivityRepository(s)

	e := &task.ActivityEntry{TaskID: "missing", Action: task.ActivityCreated, PerformedBy: "user-1"}
	if err := repo.Append(context.Background(), e); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Append(missing task) error = %v, want ErrNotFound", err)
	}
}

func TestActivityRepository_ListByTask_NewestFirst(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	p := seedProject(t, s, "owner-1")
	b := seedBoard(t, s, p.ID, "owner-1")
	tk := seedTask(t, s, b, "Task", task.StatusTodo)
	repo := sqlite.NewActivityRepository(s)
	ctx := context.Background()

	created := &task.ActivityEntry{
		TaskID:      tk.ID,
		Action:      task.ActivityCreated,
		PerformedBy: "user-1",
		Details:     map[string]any{"title": "Task", "status": "Todo"},
	}
	if err := repo.Append(ctx, created); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	updated := &task.ActivityEntry{
		TaskID:      tk.ID,
		Action:      task.ActivityUpdated,
		PerformedBy: "user-2",
		Details:     map[string]any{"oldStatus": "Todo", "newStatus": "In Progress"},
	}
	if err := repo.Append(ctx, updated); err != nil {
		t.Fatalf("Append error: %v", err)
	}

	entries, err := repo.ListByTask(ctx, tk.ID)
	if err != nil {
		t.Fatalf("ListByTask error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Action != task.ActivityUpdated {
		t.Errorf("entries[0].Action = %q, want %q (newest first)", entries[0].Action, task.ActivityUpdated)
	}
	if entries[0].Details["newStatus"] != "In Progress" {
		t.Errorf("Details = %+v, want newStatus \"In Progress\"", entries[0].Details)
	}
	if entries[1].Action != task.ActivityCreated {
		t.Errorf("entries[1].Action = %q, want %q", entries[1].Action, task.ActivityCreated)
	}
}
