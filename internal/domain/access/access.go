// Package access is the single authorization policy for project-scoped
// operations. Every board, task, and comment operation resolves its
// ancestor project first, then asks this package whether the principal may
// perform the operation's class. Centralizing the checks here keeps the
// policy identical across endpoints.
package access

import (
	"fmt"

	"github.com/taskfabric/taskfabric/internal/domain"
	"github.com/taskfabric/taskfabric/internal/domain/project"
)

// Class groups operations that share an authorization rule.
type Class int

const (
	// Read covers viewing a project and everything beneath it.
	Read Class = iota
	// WriteContent covers creating boards and creating, updating, or
	// deleting tasks and own comments. Any member qualifies; role is not
	// consulted.
	WriteContent
	// Admin covers project updates and membership changes: owner or a
	// member with the admin role.
	Admin
	// OwnerOnly covers project deletion.
	OwnerOnly
)

// String implements fmt.Stringer, for log fields.
func (c Class) String() string {
	switch c {
	case Read:
		return "read"
	case WriteContent:
		return "write-content"
	case Admin:
		return "admin"
	case OwnerOnly:
		return "owner-only"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Authorize decides whether principalID may perform an operation of the
// given class on p. It returns nil when allowed and domain.ErrForbidden
// otherwise. A principal that is neither owner nor member is denied for
// every class.
func Authorize(principalID string, p *project.Project, class Class) error {
	switch class {
	case Read, WriteContent:
		if p.IsOwner(principalID) || p.IsMember(principalID) {
			return nil
		}
	case Admin:
		if p.IsOwner(principalID) {
			return nil
		}
		if m := p.MemberOf(principalID); m != nil && m.Role == project.RoleAdmin {
			return nil
		}
	case OwnerOnly:
		if p.IsOwner(principalID) {
			return nil
		}
	}
	return fmt.Errorf("%w: not permitted to %s project %s", domain.ErrForbidden, class, p.ID)
}

// AuthorizeCommentDelete implements the comment-moderate class: the project
// owner, the comment's author, or any member may delete a comment.
func AuthorizeCommentDelete(principalID string, p *project.Project, authorID string) error {
	if principalID == authorID || p.IsOwner(principalID) || p.IsMember(principalID) {
		return nil
	}
	return fmt.Errorf("%w: not permitted to delete comments in project %s", domain.ErrForbidden, p.ID)
}
