package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jayeshk55/CredLink-sub000/internal/cache"
	"github.com/jayeshk55/CredLink-sub000/internal/model"
	"github.com/jayeshk55/CredLink-sub000/internal/repository"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Card{},
		&model.Message{}, &model.ConnectionRequest{}, &model.ContactLink{},
	))
	return db
}

func TestConversationsEmptyInput(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewConversationService(repository.NewMessageRepository(db), nil)

	threads, err := svc.Conversations(context.Background(), "viewer", nil)
	require.NoError(t, err)
	require.Empty(t, threads)
}

func TestConversationsNewThread(t *testing.T) {
	db := setupServiceDB(t)
	msgs := repository.NewMessageRepository(db)
	svc := NewConversationService(msgs, nil)
	ctx := context.Background()

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := msgs.Create(ctx, "u1", "viewer", "hi", t1)
	require.NoError(t, err)

	threads, err := svc.Conversations(ctx, "viewer", nil)
	require.NoError(t, err)
	require.Len(t, threads, 1)

	th := threads["u1"]
	require.NotNil(t, th)
	require.Equal(t, 1, th.UnseenCount)
	require.Equal(t, ThreadStatusNew, th.Status)
	require.False(t, th.HasOutgoing)
	require.Equal(t, "hi", th.Latest.Text)
}

func TestConversationsReplied(t *testing.T) {
	db := setupServiceDB(t)
	msgs := repository.NewMessageRepository(db)
	svc := NewConversationService(msgs, nil)
	ctx := context.Background()

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	_, err := msgs.Create(ctx, "u1", "viewer", "hi", t1)
	require.NoError(t, err)
	_, err = msgs.Create(ctx, "viewer", "u1", "hello back", t2)
	require.NoError(t, err)

	threads, err := svc.Conversations(ctx, "viewer", nil)
	require.NoError(t, err)
	th := threads["u1"]
	require.NotNil(t, th)
	require.Equal(t, ThreadStatusReplied, th.Status)
	require.True(t, th.HasOutgoing)
	require.Len(t, th.Items, 2)
	require.Equal(t, DirectionIn, th.Items[0].Direction)
	require.Equal(t, DirectionOut, th.Items[1].Direction)
	require.Equal(t, DirectionOut, th.Latest.Direction)
}

func TestConversationsWatermarkClearsUnseen(t *testing.T) {
	db := setupServiceDB(t)
	msgs := repository.NewMessageRepository(db)
	svc := NewConversationService(msgs, nil)
	ctx := context.Background()

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	_, err := msgs.Create(ctx, "u1", "viewer", "hi", t1)
	require.NoError(t, err)

	threads, err := svc.Conversations(ctx, "viewer", Watermarks{"u1": t2})
	require.NoError(t, err)
	require.Equal(t, 0, threads["u1"].UnseenCount)
}

func TestConversationsUnseenMonotonicity(t *testing.T) {
	db := setupServiceDB(t)
	msgs := repository.NewMessageRepository(db)
	svc := NewConversationService(msgs, nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var latest time.Time
	for i := 0; i < 5; i++ {
		latest = base.Add(time.Duration(i) * time.Minute)
		_, err := msgs.Create(ctx, "u1", "viewer", "m", latest)
		require.NoError(t, err)
	}

	// 水位线推进到最新 incoming 之后，unseen 必须归零
	threads, err := svc.Conversations(ctx, "viewer", Watermarks{"u1": latest})
	require.NoError(t, err)
	require.Equal(t, 0, threads["u1"].UnseenCount)

	threads, err = svc.Conversations(ctx, "viewer", Watermarks{"u1": latest.Add(time.Hour)})
	require.NoError(t, err)
	require.Equal(t, 0, threads["u1"].UnseenCount)
}

func TestConversationsMergeOrdering(t *testing.T) {
	db := setupServiceDB(t)
	msgs := repository.NewMessageRepository(db)
	svc := NewConversationService(msgs, nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// 交错插入两个方向，时间乱序
	offsets := []int{7, 2, 9, 1, 5, 3}
	for i, off := range offsets {
		at := base.Add(time.Duration(off) * time.Minute)
		if i%2 == 0 {
			_, err := msgs.Create(ctx, "u1", "viewer", "in", at)
			require.NoError(t, err)
		} else {
			_, err := msgs.Create(ctx, "viewer", "u1", "out", at)
			require.NoError(t, err)
		}
	}

	threads, err := svc.Conversations(ctx, "viewer", nil)
	require.NoError(t, err)
	items := threads["u1"].Items
	require.Len(t, items, len(offsets))
	for i := 1; i < len(items); i++ {
		require.False(t, items[i].CreatedAt.Before(items[i-1].CreatedAt))
	}
}

func TestConversationsOutgoingOnlyThread(t *testing.T) {
	db := setupServiceDB(t)
	msgs := repository.NewMessageRepository(db)
	svc := NewConversationService(msgs, nil)
	ctx := context.Background()

	// 只有发出去的消息、对方没回，也要出现在会话集合里
	_, err := msgs.Create(ctx, "viewer", "u9", "anyone there?", time.Now())
	require.NoError(t, err)

	threads, err := svc.Conversations(ctx, "viewer", nil)
	require.NoError(t, err)
	th := threads["u9"]
	require.NotNil(t, th)
	require.Equal(t, ThreadStatusReplied, th.Status)
	require.Equal(t, 0, th.UnseenCount)
}

func TestUnreadTotalAcrossPartners(t *testing.T) {
	db := setupServiceDB(t)
	msgs := repository.NewMessageRepository(db)
	svc := NewConversationService(msgs, nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := msgs.Create(ctx, "u1", "viewer", "a", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := msgs.Create(ctx, "u2", "viewer", "b", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	total, err := svc.UnreadTotal(ctx, "viewer", nil)
	require.NoError(t, err)
	require.Equal(t, 5, total)

	total, err = svc.UnreadTotal(ctx, "viewer", Watermarks{"u1": base.Add(time.Hour)})
	require.NoError(t, err)
	require.Equal(t, 2, total)
}

func TestDeleteConversationRemovesBothDirectionsAndInvalidates(t *testing.T) {
	db := setupServiceDB(t)
	msgs := repository.NewMessageRepository(db)
	store := cache.NewMemoryStore(16)
	svc := NewConversationService(msgs, store)
	ctx := context.Background()

	now := time.Now()
	_, err := msgs.Create(ctx, "u1", "viewer", "a", now)
	require.NoError(t, err)
	_, err = msgs.Create(ctx, "viewer", "u1", "b", now.Add(time.Second))
	require.NoError(t, err)
	_, err = msgs.Create(ctx, "u2", "viewer", "keep", now)
	require.NoError(t, err)

	// 先塞一个摘要缓存条目，删除会话后应被失效
	computes := 0
	_, err = store.GetOrCompute(ctx, NamespaceSummary, "viewer", time.Hour, func(context.Context) ([]byte, error) {
		computes++
		return []byte(`{}`), nil
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteConversation(ctx, "viewer", "u1")
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	_, err = store.GetOrCompute(ctx, NamespaceSummary, "viewer", time.Hour, func(context.Context) ([]byte, error) {
		computes++
		return []byte(`{}`), nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, computes)

	threads, err := svc.Conversations(ctx, "viewer", nil)
	require.NoError(t, err)
	require.Nil(t, threads["u1"])
	require.NotNil(t, threads["u2"])
}
