package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/taskfabric/taskfabric/internal/app"
	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/project"
	"github.com/taskfabric/taskfabric/internal/domain/user"
	"github.com/taskfabric/taskfabric/internal/ports"
)

func TestProjectService_CreateProject(t *testing.T) {
	t.Parallel()

	var created *project.Project
	repo := &stubProjectRepo{
		createFn: func(_ context.Context, p *project.Project) error {
			p.ID = "proj-1"
			created = p
			return nil
		},
	}
	svc := app.NewProjectService(repo, &stubUserRepo{}, nil)

	p, err := svc.CreateProject(context.Background(), "user-1", &project.Project{Name: "Redesign"})
	if err != nil {
		t.Fatalf("CreateProject error: %v", err)
	}

	if p.OwnerID != "user-1" {
		t.Errorf("OwnerID = %q, want %q", p.OwnerID, "user-1")
	}
	if !p.IsActive {
		t.Error("IsActive = false, want true")
	}
	if p.Color != project.DefaultColor {
		t.Errorf("Color = %q, want default %q", p.Color, project.DefaultColor)
	}
	if created == nil {
		t.Fatal("repository Create was not called")
	}
}

func TestProjectService_CreateProject_Invalid(t *testing.T) {
	t.Parallel()

	svc := app.NewProjectService(&stubProjectRepo{}, &stubUserRepo{}, nil)

	_, err := svc.CreateProject(context.Background(), "user-1", &project.Project{Name: "  "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestProjectService_GetProject_Forbidden(t *testing.T) {
	t.Parallel()

	svc := app.NewProjectService(fixedProjectRepo(projectWith("owner-1")), &stubUserRepo{}, nil)

	_, err := svc.GetProject(context.Background(), "stranger", "proj-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

func TestProjectService_UpdateProject_Roles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		principalID string
		wantErr     error
	}{
		{"owner may update", "owner-1", nil},
		{"admin member may update", "admin-1", nil},
		{"plain member may not update", "member-1", domain.ErrForbidden},
		{"stranger may not update", "stranger", domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := projectWith("owner-1",
				project.Member{UserID: "admin-1", Role: project.RoleAdmin},
				project.Member{UserID: "member-1", Role: project.RoleMember},
			)
			svc := app.NewProjectService(fixedProjectRepo(p), &stubUserRepo{}, nil)

			name := "Renamed"
			_, err := svc.UpdateProject(context.Background(), tt.principalID, p.ID, ports.ProjectUpdate{Name: &name})

			if tt.wantErr == nil && err != nil {
				t.Fatalf("UpdateProject error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProjectService_DeleteProject_OwnerOnly(t *testing.T) {
	t.Parallel()

	p := projectWith("owner-1", project.Member{UserID: "admin-1", Role: project.RoleAdmin})
	repo := fixedProjectRepo(p)
	deleted := false
	repo.deleteFn = func(_ context.Context, _ string) error {
		deleted = true
		return nil
	}
	svc := app.NewProjectService(repo, &stubUserRepo{}, nil)

	// Even an admin member cannot delete the project.
	err := svc.DeleteProject(context.Background(), "admin-1", p.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin delete error = %v, want ErrForbidden", err)
	}

	if err := svc.DeleteProject(context.Background(), "owner-1", p.ID); err != nil {
		t.Fatalf("owner delete error: %v", err)
	}
	if !deleted {
		t.Error("repository Delete was not called")
	}
}

func TestProjectService_InviteMember(t *testing.T) {
	t.Parallel()

	p := projectWith("owner-1")
	repo := fixedProjectRepo(p)
	var added *project.Member
	repo.addMemberFn = func(_ context.Context, _ string, m project.Member) error {
		added = &m
		return nil
	}
	users := &stubUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*user.User, error) {
			if email == "bob@example.com" {
				return &user.User{ID: "user-2", Username: "bob", Email: email}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	svc := app.NewProjectService(repo, users, nil)

	_, err := svc.InviteMember(context.Background(), "owner-1", p.ID, "bob@example.com", project.RoleMember)
	if err != nil {
		t.Fatalf("InviteMember error: %v", err)
	}
	if added == nil || added.UserID != "user-2" || added.Role != project.RoleMember {
		t.Errorf("added member = %+v, want user-2 as member", added)
	}
}

func TestProjectService_InviteMember_Errors(t *testing.T) {
	t.Parallel()

	owner := &user.User{ID: "owner-1", Username: "owner", Email: "owner@example.com"}
	users := &stubUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*user.User, error) {
			if email == owner.Email {
				return owner, nil
			}
			return nil, domain.ErrNotFound
		},
	}

	tests := []struct {
		name    string
		email   string
		role    project.Role
		wantErr error
	}{
		{"invalid role", "bob@example.com", project.Role("boss"), domain.ErrValidation},
		{"unknown email", "ghost@example.com", project.RoleMember, domain.ErrNotFound},
		{"inviting the owner", "owner@example.com", project.RoleMember, domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := app.NewProjectService(fixedProjectRepo(projectWith("owner-1")), users, nil)

			_, err := svc.InviteMember(context.Background(), "owner-1", "proj-1", tt.email, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProjectService_RemoveMember_OwnerTarget(t *testing.T) {
	t.Parallel()

	svc := app.NewProjectService(fixedProjectRepo(projectWith("owner-1")), &stubUserRepo{}, nil)

	_, err := svc.RemoveMember(context.Background(), "owner-1", "proj-1", "owner-1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation (owner cannot be removed)", err)
	}
}
