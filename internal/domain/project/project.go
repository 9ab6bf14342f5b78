// Package project defines the Project aggregate root and its membership set.
// A Project is owned by the principal that created it; access for everyone
// else is granted through Memberships (see domain/access for the policy).
package project

import (
	"strings"
	"time"

	"github.com/taskfabric/taskfabric/internal/domain"
)

// maxNameLen and maxDescriptionLen bound user-supplied text fields.
const (
	maxNameLen        = 100
	maxDescriptionLen = 500
)

// DefaultColor is applied when a project is created without a color.
const DefaultColor = "#007bff"

// Project is the authorization scope for every board, task, and comment
// beneath it. The owner is never listed in Members.
type Project struct {
	ID          string
	Name        string
	Description string
	Color       string
	OwnerID     string
	Members     []Member
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks business rules for the Project entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (p *Project) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if len(p.Name) > maxNameLen {
		fields["name"] = "cannot exceed 100 characters"
	}
	if len(p.Description) > maxDescriptionLen {
		fields["description"] = "cannot exceed 500 characters"
	}
	if p.OwnerID == "" {
		fields["owner"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// IsOwner reports whether userID is the project owner.
func (p *Project) IsOwner(userID string) bool {
	return p.OwnerID == userID
}

// MemberOf returns the membership for userID, or nil if userID is not a
// member. The owner is not a member and always yields nil.
func (p *Project) MemberOf(userID string) *Member {
	for i := range p.Members {
		if p.Members[i].UserID == userID {
			return &p.Members[i]
		}
	}
	return nil
}

// IsMember reports whether userID holds a membership (any role).
func (p *Project) IsMember(userID string) bool {
	return p.MemberOf(userID) != nil
}
