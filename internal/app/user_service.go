package app

import (
	"context"
	"log/slog"

	"github.com/taskfabric/taskfabric/internal/domain/user"
	"github.com/taskfabric/taskfabric/internal/ports"
)

// Compile-time check that UserService implements ports.UserService.
var _ ports.UserService = (*UserService)(nil)

// UserService implements ports.UserService, the minimal directory that
// membership invitations resolve against.
type UserService struct {
	users  ports.UserRepository
	logger *slog.Logger
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(users ports.UserRepository, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &UserService{users: users, logger: logger}
}

// CreateUser registers a user.
func (s *UserService) CreateUser(ctx context.Context, u *user.User) (*user.User, error) {
	s.logger.InfoContext(ctx, "creating user", slog.String("username", u.Username))

	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		s.logger.ErrorContext(ctx, "failed to create user",
			slog.String("operation", "CreateUser"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return u, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch user",
			slog.String("operation", "GetUser"),
			slog.String("user_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	return u, nil
}
