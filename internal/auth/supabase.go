package auth

import (
	"context"
	"fmt"

	supabase "github.com/nedpals/supabase-go"
)

// Supabase resolves the acting user against Supabase auth using the
// bearer token carried on the context.
type Supabase struct {
	client *supabase.Client
}

func NewSupabase(client *supabase.Client) *Supabase {
	return &Supabase{client: client}
}

// CurrentUser looks up the user owning the context's access token.
// No token means no acting user, which is not an error: public reads
// run unauthenticated.
func (s *Supabase) CurrentUser(ctx context.Context) (*User, error) {
	token, ok := TokenFrom(ctx)
	if !ok {
		return nil, nil
	}

	u, err := s.client.Auth.User(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return &User{ID: u.ID, Email: u.Email}, nil
}
