// Package api implements the HTTP client for the Code Learning Platform.
package api

import "context"

// Client is the remote API surface the session controller depends on.
//
// Login and Register return a bearer token on success. Profile, Stats and
// Snippets require the token of an authenticated session. Health probes
// server liveness without credentials.
//
// All methods honor context cancellation and map transport failures to
// ErrUnavailable; HTTP-level rejections come back as *Error.
type Client interface {
	Login(ctx context.Context, email, password string) (Token, error)
	Register(ctx context.Context, req RegisterRequest) (Token, error)
	Profile(ctx context.Context, token string) (*UserProfile, error)
	Stats(ctx context.Context, token string) (*DashboardStats, error)
	Snippets(ctx context.Context, token string) ([]Snippet, error)
	Health(ctx context.Context) error
}
