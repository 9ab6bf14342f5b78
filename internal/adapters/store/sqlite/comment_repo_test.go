package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskfabric/taskfabric/internal/adapters/store/sqlite"
	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/comment"
	"github.com/taskfabric/taskfabric/internal/domain/task"
)

func seedComment(t *testing.T, s *sqlite.Store, taskID, authorID string, parentID *string) *comment.Comment {
	t.Helper()

	c := &comment.Comment{
		Content:  "some content",
		TaskID:   taskID,
		AuthorID: authorID,
		ParentID: parentID,
	}
	if err := sqlite.NewCommentRepository(s).Create(context.Background(), c); err != nil {
		t.Fatalf("seeding comment: %v", err)
	}

	return c
}

func TestCommentRepository_ListTopLevel(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	p := seedProject(t, s, "owner-1")
	b := seedBoard(t, s, p.ID, "owner-1")
	tk := seedTask(t, s, b, "Task", task.StatusTodo)
	repo := sqlite.NewCommentRepository(s)
	ctx := context.Background()

	first := seedComment(t, s, tk.ID, "user-1", nil)
	second := seedComment(t, s, tk.ID, "user-2", nil)
	seedComment(t, s, tk.ID, "user-3", &first.ID) // reply, excluded

	comments, total, err := repo.ListTopLevel(ctx, tk.ID, 0, 10)
	if err != nil {
		t.Fatalf("ListTopLevel error: %v", err)
	}

	if total != 2 {
		t.Errorf("total = %d, want 2 (replies excluded)", total)
	}
	if len(comments) != 2 {
		t.Fatalf("len = %d, want 2", len(comments))
	}
	// Newest-first.
	if comments[0].ID != second.ID || comments[1].ID != first.ID {
		t.Errorf("order = [%s %s], want [%s %s]",
			comments[0].ID, comments[1].ID, second.ID, first.ID)
	}
}

func TestCommentRepository_ListReplies_OldestFirst(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	p := seedProject(t, s, "owner-1")
	b := seedBoard(t, s, p.ID, "owner-1")
	tk := seedTask(t, s, b, "Task", task.StatusTodo)
	repo := sqlite.NewCommentRepository(s)
	ctx := context.Background()

	parent := seedComment(t, s, tk.ID, "user-1", nil)
	r1 := seedComment(t, s, tk.ID, "user-2", &parent.ID)
	r2 := seedComment(t, s, tk.ID, "user-3", &parent.ID)

	replies, err := repo.ListReplies(ctx, parent.ID)
	if err != nil {
		t.Fatalf("ListReplies error: %v", err)
	}

	if len(replies) != 2 {
		t.Fatalf("len = %d, want 2", len(replies))
	}
	if replies[0].ID != r1.ID || replies[1].ID != r2.ID {
		t.Errorf("order = [%s %s], want [%s %s]", replies[0].ID, replies[1].ID, r1.ID, r2.ID)
	}
}

func TestCommentRepository_Update_EditTracking(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	p := seedProject(t, s, "owner-1")
	b := seedBoard(t, s, p.ID, "owner-1")
	tk := seedTask(t, s, b, "Task", task.StatusTodo)
	repo := sqlite.NewCommentRepository(s)
	ctx := context.Background()

	c := seedComment(t, s, tk.ID, "user-1", nil)

	now := time.Now().UTC()
	c.Content = "edited content"
	c.IsEdited = true
	c.EditedAt = &now
	if err := repo.Update(ctx, c); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	got, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Content != "edited content" {
		t.Errorf("Content = %q, want %q", got.Content, "edited content")
	}
	if !got.IsEdited {
		t.Error("IsEdited = false, want true")
	}
	if got.EditedAt == nil {
		t.Error("EditedAt = nil, want set")
	}
}

func TestCommentRepository_DeleteCascade(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	p := seedProject(t, s, "owner-1")
	b := seedBoard(t, s, p.ID, "owner-1")
	tk := seedTask(t, s, b, "Task", task.StatusTodo)
	repo := sqlite.NewCommentRepository(s)
	ctx := context.Background()

	parent := seedComment(t, s, tk.ID, "user-1", nil)
	reply := seedComment(t, s, tk.ID, "user-2", &parent.ID)
	other := seedComment(t, s, tk.ID, "user-3", nil)

	if err := repo.DeleteCascade(ctx, parent.ID); err != nil {
		t.Fatalf("DeleteCascade error: %v", err)
	}

	if _, err := repo.GetByID(ctx, parent.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("parent survived: %v", err)
	}
	if _, err := repo.GetByID(ctx, reply.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("reply survived: %v", err)
	}
	if _, err := repo.GetByID(ctx, other.ID); err != nil {
		t.Errorf("unrelated comment removed: %v", err)
	}
}

func TestCommentRepository_DeleteCascade_NotFound(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	repo := sqlite.NewCommentRepository(s)

	if err := repo.DeleteCascade(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteCascade(missing) error = %v, want ErrNotFound", err)
	}
}
