package access

import (
	"errors"
	"testing"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/project"
)

const (
	ownerID    = "11111111-1111-1111-1111-111111111111"
	adminID    = "22222222-2222-2222-2222-222222222222"
	memberID   = "33333333-3333-3333-3333-333333333333"
	outsiderID = "44444444-4444-4444-4444-444444444444"
)

func testProject() *project.Project {
	return &project.Project{
		ID:      "p1",
		OwnerID: ownerID,
		Members: []project.Member{
			{UserID: adminID, Role: project.RoleAdmin},
			{UserID: memberID, Role: project.RoleMember},
		},
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		principal string
		class     Class
		allowed   bool
	}{
		{"owner read", ownerID, Read, true},
		{"admin read", adminID, Read, true},
		{"member read", memberID, Read, true},
		{"outsider read", outsiderID, Read, false},

		{"owner write", ownerID, WriteContent, true},
		{"admin write", adminID, WriteContent, true},
		{"member write", memberID, WriteContent, true},
		{"outsider write", outsiderID, WriteContent, false},

		{"owner admin", ownerID, Admin, true},
		{"admin admin", adminID, Admin, true},
		{"member admin", memberID, Admin, false},
		{"outsider admin", outsiderID, Admin, false},

		{"owner owner-only", ownerID, OwnerOnly, true},
		{"admin owner-only", adminID, OwnerOnly, false},
		{"member owner-only", memberID, OwnerOnly, false},
		{"outsider owner-only", outsiderID, OwnerOnly, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Authorize(tt.principal, testProject(), tt.class)
			if tt.allowed && err != nil {
				t.Errorf("Authorize() = %v, want nil", err)
			}
			if !tt.allowed {
				if !errors.Is(err, domain.ErrForbidden) {
					t.Errorf("Authorize() = %v, want ErrForbidden", err)
				}
			}
		})
	}
}

func TestAuthorizeCommentDelete(t *testing.T) {
	t.Parallel()

	authorID := outsiderID // author who is no longer a member

	tests := []struct {
		name      string
		principal string
		allowed   bool
	}{
		{"owner may delete", ownerID, true},
		{"author may delete own", authorID, true},
		{"any member may delete", memberID, true},
		{"admin may delete", adminID, true},
		{"stranger may not", "55555555-5555-5555-5555-555555555555", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := AuthorizeCommentDelete(tt.principal, testProject(), authorID)
			if tt.allowed && err != nil {
				t.Errorf("AuthorizeCommentDelete() = %v, want nil", err)
			}
			if !tt.allowed && !errors.Is(err, domain.ErrForbidden) {
				t.Errorf("AuthorizeCommentDelete() = %v, want ErrForbidden", err)
			}
		})
	}
}
