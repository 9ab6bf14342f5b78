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
	"github.com/taskfabric/taskfabric/internal/domain/user"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository returns a user repository backed by s.
func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{db: s.db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE email = ?", u.Email)
	if err != nil {
		return fmt.Errorf("checking email %s: %w", u.Email, err)
	}
	if count > 0 {
		return fmt.Errorf("email %s is already registered: %w", u.Email, domain.ErrConflict)
	}

	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now().UTC()

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, created_at)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting user %s: %w", u.ID, err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := r.db.QueryRowxContext(ctx,
		"SELECT id, username, email, created_at FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}

	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.db.QueryRowxContext(ctx,
		"SELECT id, username, email, created_at FROM users WHERE email = ?", email).
		Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting user by email %s: %w", email, err)
	}

	return &u, nil
}
