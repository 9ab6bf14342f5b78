// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskfabric/taskfabric/internal/adapters/http/handlers"
	"github.com/taskfabric/taskfabric/internal/adapters/http/middleware"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given; principal extraction
// applies only to the authenticated API surface.
func NewRouter(
	projectHandler *handlers.ProjectHandler,
	boardHandler *handlers.BoardHandler,
	taskHandler *handlers.TaskHandler,
	commentHandler *handlers.CommentHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// The user directory is open so principals can be registered before
		// they have an identity to present.
		r.Post("/users", userHandler.CreateUser)
		r.Get("/users/{id}", userHandler.GetUser)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Principal())

			// Project CRUD and membership.
			r.Get("/projects", projectHandler.ListProjects)
			r.Post("/projects", projectHandler.CreateProject)
			r.Get("/projects/{id}", projectHandler.GetProject)
			r.Put("/projects/{id}", projectHandler.UpdateProject)
			r.Delete("/projects/{id}", projectHandler.DeleteProject)
			r.Post("/projects/{id}/invite", projectHandler.InviteMember)
			r.Delete("/projects/{id}/members/{memberId}", projectHandler.RemoveMember)

			// Boards.
			r.Post("/boards", boardHandler.CreateBoard)
			r.Get("/projects/{projectId}/boards", boardHandler.ListBoards)

			// Tasks. The fixed update-positions route is registered before
			// the {id} routes so it never parses as a task ID.
			r.Put("/tasks/update-positions", taskHandler.UpdatePositions)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/boards/{boardId}/tasks", taskHandler.ListTasks)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
			r.Get("/tasks/{id}/activity", taskHandler.ListActivity)

			// Comments.
			r.Post("/comments", commentHandler.CreateComment)
			r.Get("/tasks/{taskId}/comments", commentHandler.ListComments)
			r.Put("/comments/{id}", commentHandler.UpdateComment)
			r.Delete("/comments/{id}", commentHandler.DeleteComment)
		})
	})

	return r
}
