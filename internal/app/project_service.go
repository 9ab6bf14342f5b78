// Package app provides application services that orchestrate use cases by
// coordinating domain logic, the authorization policy, and the repositories
// through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/access"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/ports"
)

const (
	defaultProjectPageLimit = 10
	defaultTaskPageLimit    = 50
	defaultCommentPageLimit = 20
)

// normalizePage clamps zero-based pagination input, applying the fallback
// limit when the caller supplied none.
func normalizePage(page, limit, fallback int) (int, int) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = fallback
	}
	return page, limit
}

// Compile-time check that ProjectService implements ports.ProjectService.
var _ ports.ProjectService = (*ProjectService)(nil)

// ProjectService implements ports.ProjectService. It owns the project
// aggregate including its membership set; all authorization decisions are
// delegated to the access package.
type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	logger   *slog.Logger
}

// NewProjectService creates a ProjectService backed by the given
// repositories. The logger is used for structured request/error logging.
func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProjectService{
		projects: projects,
		users:    users,
		logger:   logger,
	}
}

// CreateProject validates and creates a new project owned by the principal.
// The owner is never added to the member set.
func (s *ProjectService) CreateProject(ctx context.Context, principalID string, p *project.Project) (*project.Project, error) {
	s.logger.InfoContext(ctx, "creating project", slog.String("name", p.Name))

	p.OwnerID = principalID
	p.IsActive = true
	if p.Color == "" {
		p.Color = project.DefaultColor
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to create project",
			slog.String("operation", "CreateProject"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return p, nil
}

// ListProjects returns active projects the principal owns or belongs to,
// newest-first.
func (s *ProjectService) ListProjects(ctx context.Context, principalID string, page, limit int) ([]project.Project, ports.Page, error) {
	page, limit = normalizePage(page, limit, defaultProjectPageLimit)

	s.logger.InfoContext(ctx, "listing projects", slog.Int("page", page))

	projects, total, err := s.projects.ListForUser(ctx, principalID, page, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list projects",
			slog.String("operation", "ListProjects"),
			slog.Any("error", err),
		)
		return nil, ports.Page{}, err
	}

	return projects, ports.Page{Page: page, Limit: limit, Total: total}, nil
}

// GetProject returns a single project with its members.
func (s *ProjectService) GetProject(ctx context.Context, principalID, id string) (*project.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch project",
			slog.String("operation", "GetProject"),
			slog.String("project_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := access.Authorize(principalID, p, access.Read); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateProject applies a partial update to project metadata. Owner or
// admin member only.
func (s *ProjectService) UpdateProject(ctx context.Context, principalID, id string, upd ports.ProjectUpdate) (*project.Project, error) {
	s.logger.InfoContext(ctx, "updating project", slog.String("project_id", id))

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(principalID, p, access.Admin); err != nil {
		return nil, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Color != nil {
		p.Color = *upd.Color
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "failed to update project",
			slog.String("operation", "UpdateProject"),
			slog.String("project_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return p, nil
}

// DeleteProject deletes a project and everything beneath it. Owner only.
func (s *ProjectService) DeleteProject(ctx context.Context, principalID, id string) error {
	s.logger.InfoContext(ctx, "deleting project", slog.String("project_id", id))

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Authorize(principalID, p, access.OwnerOnly); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete project",
			slog.String("operation", "DeleteProject"),
			slog.String("project_id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// InviteMember adds the user registered under email as a member. Owner or
// admin member only.
func (s *ProjectService) InviteMember(ctx context.Context, principalID, projectID, email string, role project.Role) (*project.Project, error) {
	s.logger.InfoContext(ctx, "inviting member", slog.String("project_id", projectID))

	if !role.IsValid() {
		return nil, &domain.ValidationError{
			Fields: map[string]string{"role": fmt.Sprintf("invalid: %q", role)},
		}
	}

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(principalID, p, access.Admin); err != nil {
		return nil, err
	}

	invitee, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to resolve invitee",
			slog.String("operation", "InviteMember"),
			slog.String("project_id", projectID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("resolving invitee: %w", err)
	}

	// The owner already holds full access and is never duplicated into
	// the member set.
	if p.IsOwner(invitee.ID) {
		return nil, fmt.Errorf("%w: user is the project owner", domain.ErrConflict)
	}

	m := project.Member{UserID: invitee.ID, Role: role}
	if err := s.projects.AddMember(ctx, projectID, m); err != nil {
		s.logger.ErrorContext(ctx, "failed to add member",
			slog.String("operation", "InviteMember"),
			slog.String("project_id", projectID),
			slog.String("user_id", invitee.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return s.projects.GetByID(ctx, projectID)
}

// RemoveMember removes a membership. Owner or admin member only; the owner
// cannot be targeted.
func (s *ProjectService) RemoveMember(ctx context.Context, principalID, projectID, memberID string) (*project.Project, error) {
	s.logger.InfoContext(ctx, "removing member",
		slog.String("project_id", projectID),
		slog.String("member_id", memberID),
	)

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(principalID, p, access.Admin); err != nil {
		return nil, err
	}

	if p.IsOwner(memberID) {
		return nil, &domain.ValidationError{
			Fields: map[string]string{"member": "cannot remove project owner"},
		}
	}

	if err := s.projects.RemoveMember(ctx, projectID, memberID); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove member",
			slog.String("operation", "RemoveMember"),
			slog.String("project_id", projectID),
			slog.String("member_id", memberID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return s.projects.GetByID(ctx, projectID)
}
