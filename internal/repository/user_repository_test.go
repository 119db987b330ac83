package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jayeshk55/CredLink-sub000/internal/model"
)

func TestUserResolveManyBatch(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	ada, err := repo.Create(ctx, "Ada Lovelace", "ada@example.com", "hash")
	require.NoError(t, err)
	bob, err := repo.Create(ctx, "", "bob@example.com", "hash")
	require.NoError(t, err)

	out, err := repo.ResolveMany(ctx, []string{ada.ID, bob.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Ada Lovelace", out[ada.ID].FullName)
	require.Equal(t, "bob@example.com", out[bob.ID].Email)
	_, ok := out["missing"]
	require.False(t, ok)
}

func TestUserResolveManyEmpty(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewUserRepository(db)

	out, err := repo.ResolveMany(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestUserFindByEmail(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Ada", "ada@example.com", "hash")
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.Error(t, err)
}

func TestConnectionPendingQueries(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, "a", "bob", model.ConnectionPending, base)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "b", "bob", model.ConnectionPending, base.Add(time.Minute))
	require.NoError(t, err)
	_, err = repo.Create(ctx, "c", "bob", model.ConnectionAccepted, base)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "d", "other", model.ConnectionPending, base)
	require.NoError(t, err)

	pending, err := repo.ListPendingTo(ctx, "bob", 50)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// 降序：最新的 pending 在前
	require.Equal(t, "b", pending[0].SenderID)

	cnt, err := repo.CountPendingTo(ctx, "bob")
	require.NoError(t, err)
	require.EqualValues(t, 2, cnt)
}
