package tokenstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestToken_EmptyStore(t *testing.T) {
	s := setupStore(t)

	tok, err := s.Token(context.Background())
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSaveAndToken_RoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "T1"))

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "T1", tok)
}

func TestSave_OverwritesPreviousToken(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "T1"))
	require.NoError(t, s.Save(ctx, "T2"))

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "T2", tok)
}

func TestDelete_RemovesToken(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "T1"))
	require.NoError(t, s.Delete(ctx))

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestDelete_EmptyStoreIsNoError(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Delete(context.Background()))
}

func TestOpen_CreatesMissingDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "client.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
