package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/comment"
)

const commentColumns = `id, content, task_id, author_id, parent_id, is_edited, edited_at, created_at, updated_at`

// CommentRepository implements ports.CommentRepository.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository returns a comment repository backed by s.
func NewCommentRepository(s *Store) *CommentRepository {
	return &CommentRepository{db: s.db}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (`+commentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Content, c.TaskID, c.AuthorID, nullString(c.ParentID),
		boolToInt(c.IsEdited), nullTime(c.EditedAt), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting comment %s: %w", c.ID, err)
	}

	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*comment.Comment, error) {
	row := r.db.QueryRowxContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE id = ?", id)

	c, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting comment %s: %w", id, err)
	}

	return c, nil
}

func (r *CommentRepository) ListTopLevel(ctx context.Context, taskID string, page, limit int) ([]comment.Comment, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM comments WHERE task_id = ? AND parent_id IS NULL", taskID)
	if err != nil {
		return nil, 0, fmt.Errorf("counting comments of task %s: %w", taskID, err)
	}

	rows, err := r.db.QueryxContext(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE task_id = ? AND parent_id IS NULL
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?`,
		taskID, limit, page*limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("querying comments of task %s: %w", taskID, err)
	}
	defer rows.Close()

	var comments []comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning comment row: %w", err)
		}
		comments = append(comments, *c)
	}

	return comments, total, rows.Err()
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID string) ([]comment.Comment, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE parent_id = ?
		ORDER BY created_at, rowid`, parentID)
	if err != nil {
		return nil, fmt.Errorf("querying replies of comment %s: %w", parentID, err)
	}
	defer rows.Close()

	var replies []comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		replies = append(replies, *c)
	}

	return replies, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, c *comment.Comment) error {
	c.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE comments
		SET content = ?, is_edited = ?, edited_at = ?, updated_at = ?
		WHERE id = ?`,
		c.Content, boolToInt(c.IsEdited), nullTime(c.EditedAt), c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating comment %s: %w", c.ID, err)
	}

	return requireRow(res, fmt.Sprintf("comment %s", c.ID))
}

func (r *CommentRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE parent_id = ?", id); err != nil {
		return fmt.Errorf("deleting replies of comment %s: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment %s: %w", id, err)
	}
	if err := requireRow(res, fmt.Sprintf("comment %s", id)); err != nil {
		return err
	}

	return tx.Commit()
}

func scanComment(row rowScanner) (*comment.Comment, error) {
	var (
		c        comment.Comment
		parentID sql.NullString
		isEdited int
		editedAt sql.NullTime
	)

	err := row.Scan(
		&c.ID, &c.Content, &c.TaskID, &c.AuthorID, &parentID,
		&isEdited, &editedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ParentID = stringPtr(parentID)
	c.IsEdited = isEdited != 0
	c.EditedAt = timePtr(editedAt)
	return &c, nil
}
