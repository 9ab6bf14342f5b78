package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskfabric/taskfabric/internal/adapters/http/dto"
	"github.com/taskfabric/taskfabric/internal/domain"
)

const headerUserID = "X-User-ID"

// principalKey is the context key for storing the authenticated principal's
// user ID.
type principalKey struct{}

// WithPrincipal returns a new context with the principal's user ID stored
// in it.
func WithPrincipal(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, principalKey{}, userID)
}

// PrincipalFromContext extracts the principal's user ID from the context.
// Returns an empty string if no principal is stored.
func PrincipalFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(principalKey{}).(string); ok {
		return id
	}
	return ""
}

// Principal returns middleware that extracts the authenticated user's ID
// from the X-User-ID header and stores it in the request context. Identity
// issuance happens upstream; this service trusts the header but requires
// it to carry a UUID. Requests with a missing or malformed header are
// rejected with 401.
func Principal() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerUserID)
			if id == "" {
				dto.WriteErrorResponse(w, r, fmt.Errorf("%w: missing %s header", domain.ErrUnauthenticated, headerUserID))
				return
			}
			if _, err := uuid.Parse(id); err != nil {
				dto.WriteErrorResponse(w, r, fmt.Errorf("%w: %s header is not a valid user ID", domain.ErrUnauthenticated, headerUserID))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), id)))
		})
	}
}
