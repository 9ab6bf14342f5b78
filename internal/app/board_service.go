package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskfabric/taskfabric/internal/domain/access"
	"github.com/taskfabric/taskfabric/internal/domain/board"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// Compile-time check that BoardService implements ports.BoardService.
var _ ports.BoardService = (*BoardService)(nil)

// BoardService implements ports.BoardService. Boards inherit their
// project's authorization scope, so every operation resolves the ancestor
// project before touching board state.
type BoardService struct {
	boards   ports.BoardRepository
	projects ports.ProjectRepository
	logger   *slog.Logger
}

// NewBoardService creates a BoardService backed by the given repositories.
func NewBoardService(boards ports.BoardRepository, projects ports.ProjectRepository, logger *slog.Logger) *BoardService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BoardService{
		boards:   boards,
		projects: projects,
		logger:   logger,
	}
}

// CreateBoard creates a board inside b.ProjectID with the default Todo /
// In Progress / Done columns. Any member or the owner may create boards.
func (s *BoardService) CreateBoard(ctx context.Context, principalID string, b *board.Board) (*board.Board, error) {
	s.logger.InfoContext(ctx, "creating board",
		slog.String("project_id", b.ProjectID),
		slog.String("name", b.Name),
	)

	p, err := s.projects.GetByID(ctx, b.ProjectID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to verify project",
			slog.String("operation", "CreateBoard"),
			slog.String("project_id", b.ProjectID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("verifying project: %w", err)
	}
	if err := access.Authorize(principalID, p, access.WriteContent); err != nil {
		return nil, err
	}

	b.CreatedBy = principalID
	b.Columns = board.DefaultColumns()
	b.IsActive = true
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.boards.Create(ctx, b); err != nil {
		s.logger.ErrorContext(ctx, "failed to create board",
			slog.String("operation", "CreateBoard"),
			slog.String("project_id", b.ProjectID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return b, nil
}

// ListBoards returns the project's active boards, newest-first.
func (s *BoardService) ListBoards(ctx context.Context, principalID, projectID string) ([]board.Board, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(principalID, p, access.Read); err != nil {
		return nil, err
	}

	boards, err := s.boards.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list boards",
			slog.String("operation", "ListBoards"),
			slog.String("project_id", projectID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return boards, nil
}
