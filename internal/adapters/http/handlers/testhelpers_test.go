package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskfabric/taskfabric/internal/adapters/http/middleware"
	"github.com/taskfabric/taskfabric/internal/domain/board"
	"github.com/taskfabric/taskfabric/internal/domain/comment"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/domain/task"
	"github.com/taskfabric/taskfabric/internal/domain/user"
)

const (
	testOwnerID   = "c6a5e7ce-1111-4a8e-9e1e-000000000001"
	testMemberID  = "c6a5e7ce-2222-4a8e-9e1e-000000000002"
	testProjectID = "c6a5e7ce-3333-4a8e-9e1e-000000000003"
	testBoardID   = "c6a5e7ce-4444-4a8e-9e1e-000000000004"
	testTaskID    = "c6a5e7ce-5555-4a8e-9e1e-000000000005"
	testCommentID = "c6a5e7ce-6666-4a8e-9e1e-000000000006"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withPrincipal stores the acting user's ID the way the Principal
// middleware would.
func withPrincipal(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.WithPrincipal(r.Context(), userID))
}

func validProject() project.Project {
	return project.Project{
		ID:          testProjectID,
		Name:        "Website Redesign",
		Description: "Q1 marketing site refresh",
		Color:       "#007bff",
		OwnerID:     testOwnerID,
		Members: []project.Member{
			{UserID: testMemberID, Role: project.RoleMember, JoinedAt: testTime},
		},
		IsActive:  true,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func validBoard() board.Board {
	return board.Board{
		ID:          testBoardID,
		Name:        "Sprint 1",
		Description: "First sprint",
		ProjectID:   testProjectID,
		CreatedBy:   testOwnerID,
		Columns:     board.DefaultColumns(),
		IsActive:    true,
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
}

func validTask() task.Task {
	return task.Task{
		ID:          testTaskID,
		Title:       "Fix login bug",
		Description: "Session expires too early",
		Status:      task.StatusTodo,
		Priority:    task.PriorityMedium,
		BoardID:     testBoardID,
		ProjectID:   testProjectID,
		CreatedBy:   testOwnerID,
		Position:    0,
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
}

func validComment() comment.Comment {
	return comment.Comment{
		ID:        testCommentID,
		Content:   "Looks good to me",
		TaskID:    testTaskID,
		AuthorID:  testMemberID,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func validUser() user.User {
	return user.User{
		ID:        testMemberID,
		Username:  "jane",
		Email:     "jane@example.com",
		CreatedAt: testTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
