// path: auth/identity.go
package auth

import (
	"context"
	"strings"

	"github.com/RodyMacay/biodiversity-monitoring/models"
)

// Identity is a verified caller. Subject is the identity provider's user
// id and is what createdBy and verifiedBy record.
type Identity struct {
	UserID  string
	Subject string
	Email   string
	Name    string
	Role    models.Role
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdministrator
}

// RequestContext travels with every resolver call. A nil Identity means an
// anonymous caller.
type RequestContext struct {
	Identity *Identity
}

func Anonymous() RequestContext { return RequestContext{} }

func (rc RequestContext) Authenticated() bool { return rc.Identity != nil }

type ctxKey struct{}

func WithRequest(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the request context stored by WithRequest, or an
// anonymous one.
func FromContext(ctx context.Context) RequestContext {
	if rc, ok := ctx.Value(ctxKey{}).(RequestContext); ok {
		return rc
	}
	return Anonymous()
}

func RequireAuth(rc RequestContext) (*Identity, error) {
	if rc.Identity == nil {
		return nil, &models.AuthError{Reason: models.AuthUnauthenticated}
	}
	return rc.Identity, nil
}

func RequireAdmin(rc RequestContext) (*Identity, error) {
	id, err := RequireAuth(rc)
	if err != nil {
		return nil, err
	}
	if !id.IsAdmin() {
		return nil, &models.AuthError{Reason: models.AuthForbidden}
	}
	return id, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
