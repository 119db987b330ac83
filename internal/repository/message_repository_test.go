package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jayeshk55/CredLink-sub000/internal/model"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Card{},
		&model.Message{}, &model.ConnectionRequest{}, &model.ContactLink{},
	))
	return db
}

func TestMessageListForUserBothDirections(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, "alice", "bob", "first", base)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "bob", "alice", "second", base.Add(time.Minute))
	require.NoError(t, err)
	_, err = repo.Create(ctx, "carol", "dave", "unrelated", base)
	require.NoError(t, err)

	msgs, err := repo.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	// 升序
	require.Equal(t, "first", msgs[0].Text)
	require.Equal(t, "second", msgs[1].Text)
}

func TestMessageListRecentIncoming(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		_, err := repo.Create(ctx, "sender", "bob", "m", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}
	// 发出的消息不算 incoming
	_, err := repo.Create(ctx, "bob", "sender", "out", base.Add(time.Hour))
	require.NoError(t, err)

	msgs, err := repo.ListRecentIncoming(ctx, "bob", 4)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	for i := 1; i < len(msgs); i++ {
		require.False(t, msgs[i].CreatedAt.After(msgs[i-1].CreatedAt))
	}
	require.Equal(t, base.Add(5*time.Second).Unix(), msgs[0].CreatedAt.Unix())
}

func TestMessageDeleteConversation(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	now := time.Now()
	_, err := repo.Create(ctx, "alice", "bob", "a", now)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "bob", "alice", "b", now)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "alice", "carol", "keep", now)
	require.NoError(t, err)

	deleted, err := repo.DeleteConversation(ctx, "alice", "bob")
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	rest, err := repo.ListForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, "keep", rest[0].Text)
}
