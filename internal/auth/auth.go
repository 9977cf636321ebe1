// Package auth exposes the "who is acting" capability consumed by the
// job repository. The repository receives a Service at construction;
// nothing in the core reaches for a process-wide auth client.
package auth

import "context"

// User is the authenticated principal performing a request.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Service resolves the current acting user. A nil user with a nil
// error means nobody is authenticated; errors are reserved for
// failures talking to the auth backend.
type Service interface {
	CurrentUser(ctx context.Context) (*User, error)
}

type tokenKey struct{}

// WithToken attaches a bearer access token to the context so the auth
// service can resolve it later in the call chain.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the access token attached to the context, if any.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// Static always reports the same acting user. Used by the CLI (which
// runs with service credentials) and by tests. A zero Static reports
// no user at all.
type Static struct {
	User *User
}

func (s *Static) CurrentUser(ctx context.Context) (*User, error) {
	return s.User, nil
}
