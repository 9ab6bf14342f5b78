package project

import "time"

// Role is the privilege level a membership grants within a project.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid returns true if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Member is a project-scoped (user, role) pair. Each user appears at most
// once per project, and the project owner is never a member.
type Member struct {
	UserID   string
	Role     Role
	JoinedAt time.Time
}
