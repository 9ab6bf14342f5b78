// Package user defines the minimal user directory entry the core needs to
// resolve principals and email invitations. Credential handling and token
// issuance live outside this service.
package user

import (
	"strings"
	"time"

	"github.com/taskfabric/taskfabric/internal/domain"
)

// User is a principal known to the system.
type User struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
}

// Validate checks business rules for the User entity.
func (u *User) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(u.Username) == "" {
		fields["username"] = domain.MsgRequired
	}
	email := strings.TrimSpace(u.Email)
	if email == "" {
		fields["email"] = domain.MsgRequired
	} else if !strings.Contains(email, "@") {
		fields["email"] = "must be a valid email address"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
