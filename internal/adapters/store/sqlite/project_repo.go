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
	"github.com/taskfabric/taskfabric/internal/domain/project"
)

// ProjectRepository implements ports.ProjectRepository.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository returns a project repository backed by s.
func NewProjectRepository(s *Store) *ProjectRepository {
	return &ProjectRepository{db: s.db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, color, owner_id, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Color, p.OwnerID,
		boolToInt(p.IsActive), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting project %s: %w", p.ID, err)
	}

	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*project.Project, error) {
	row := r.db.QueryRowxContext(ctx, `
		SELECT id, name, description, color, owner_id, is_active, created_at, updated_at
		FROM projects WHERE id = ?`, id)

	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}

	if p.Members, err = r.loadMembers(ctx, p.ID); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *ProjectRepository) ListForUser(ctx context.Context, userID string, page, limit int) ([]project.Project, int, error) {
	const where = `
		p.is_active = 1 AND (p.owner_id = ? OR EXISTS (
			SELECT 1 FROM project_members m
			WHERE m.project_id = p.id AND m.user_id = ?
		))`

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM projects p WHERE"+where, userID, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("counting projects for user %s: %w", userID, err)
	}

	rows, err := r.db.QueryxContext(ctx, `
		SELECT p.id, p.name, p.description, p.color, p.owner_id, p.is_active, p.created_at, p.updated_at
		FROM projects p WHERE`+where+`
		ORDER BY p.created_at DESC, p.rowid DESC
		LIMIT ? OFFSET ?`,
		userID, userID, limit, page*limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("querying projects for user %s: %w", userID, err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning project row: %w", err)
		}
		if p.Members, err = r.loadMembers(ctx, p.ID); err != nil {
			return nil, 0, err
		}
		projects = append(projects, *p)
	}

	return projects, total, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, description = ?, color = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Color, boolToInt(p.IsActive), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", p.ID, err)
	}

	return requireRow(res, fmt.Sprintf("project %s", p.ID))
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	// Foreign keys cascade through boards, tasks, comments, and activity.
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}

	return requireRow(res, fmt.Sprintf("project %s", id))
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID string, m project.Member) error {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM project_members WHERE project_id = ? AND user_id = ?",
		projectID, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("user %s is already a member of project %s: %w",
			m.UserID, projectID, domain.ErrConflict)
	}

	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO project_members (project_id, user_id, role, joined_at)
		VALUES (?, ?, ?, ?)`,
		projectID, m.UserID, m.Role.String(), m.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("adding member %s to project %s: %w", m.UserID, projectID, err)
	}

	return nil
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM project_members WHERE project_id = ? AND user_id = ?",
		projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("removing member %s from project %s: %w", userID, projectID, err)
	}

	return requireRow(res, fmt.Sprintf("membership of %s in project %s", userID, projectID))
}

func (r *ProjectRepository) loadMembers(ctx context.Context, projectID string) ([]project.Member, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT user_id, role, joined_at
		FROM project_members WHERE project_id = ?
		ORDER BY joined_at, rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying members of project %s: %w", projectID, err)
	}
	defer rows.Close()

	var members []project.Member
	for rows.Next() {
		var (
			m    project.Member
			role string
		)
		if err := rows.Scan(&m.UserID, &role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		m.Role = project.Role(role)
		members = append(members, m)
	}

	return members, rows.Err()
}

// rowScanner is satisfied by both *sqlx.Row and *sqlx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var (
		p        project.Project
		isActive int
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Color, &p.OwnerID,
		&isActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.IsActive = isActive != 0
	return &p, nil
}

// requireRow maps a zero-rows-affected result to domain.ErrNotFound.
func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
