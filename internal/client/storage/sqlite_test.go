package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := Open(context.Background(), "file:statetest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Clear(context.Background()))
	return repo
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "jwt_token", []byte("abc")))

	got, err := repo.Get(ctx, "jwt_token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)
}

func TestSQLiteRepository_SetOverwrites(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", []byte("one")))
	require.NoError(t, repo.Set(ctx, "k", []byte("two")))

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("two"), got)
}

func TestSQLiteRepository_MissingKeyIsNil(t *testing.T) {
	repo := openTestRepo(t)

	got, err := repo.Get(context.Background(), "nothing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", []byte("v")))
	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k")) // idempotent

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))
	require.NoError(t, repo.Clear(ctx))

	for _, k := range []string{"a", "b"} {
		got, err := repo.Get(ctx, k)
		require.NoError(t, err)
		require.Nil(t, got)
	}
}
