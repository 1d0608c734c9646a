// Package tokenstore persists the session token between launches.
package tokenstore

import "context"

// Store is durable key-value persistence scoped to a single opaque token.
//
// Token returns an empty string when no token is stored; that is not an
// error. Every operation may fail independently.
type Store interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
	Close() error
}
