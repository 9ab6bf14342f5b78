package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/board"
)

// BoardRepository implements ports.BoardRepository.
type BoardRepository struct {
	db *sqlx.DB
}

// NewBoardRepository returns a board repository backed by s.
func NewBoardRepository(s *Store) *BoardRepository {
	return &BoardRepository{db: s.db}
}

func (r *BoardRepository) Create(ctx context.Context, b *board.Board) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	columns, err := json.Marshal(b.Columns)
	if err != nil {
		return fmt.Errorf("marshaling columns for board %s: %w", b.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO boards (id, name, description, project_id, created_by, columns, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Description, b.ProjectID, b.CreatedBy,
		string(columns), boolToInt(b.IsActive), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting board %s: %w", b.ID, err)
	}

	return nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id string) (*board.Board, error) {
	row := r.db.QueryRowxContext(ctx, `
		SELECT id, name, description, project_id, created_by, columns, is_active, created_at, updated_at
		FROM boards WHERE id = ?`, id)

	b, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("board %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting board %s: %w", id, err)
	}

	return b, nil
}

func (r *BoardRepository) ListByProject(ctx context.Context, projectID string) ([]board.Board, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, name, description, project_id, created_by, columns, is_active, created_at, updated_at
		FROM boards
		WHERE project_id = ? AND is_active = 1
		ORDER BY created_at DESC, rowid DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying boards of project %s: %w", projectID, err)
	}
	defer rows.Close()

	var boards []board.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}
		boards = append(boards, *b)
	}

	return boards, rows.Err()
}

func scanBoard(row rowScanner) (*board.Board, error) {
	var (
		b        board.Board
		columns  string
		isActive int
	)

	err := row.Scan(
		&b.ID, &b.Name, &b.Description, &b.ProjectID, &b.CreatedBy,
		&columns, &isActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.IsActive = isActive != 0
	if err := json.Unmarshal([]byte(columns), &b.Columns); err != nil {
		return nil, fmt.Errorf("unmarshaling columns: %w", err)
	}

	return &b, nil
}
