package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jayeshk55/CredLink-sub000/internal/cache"
	"github.com/jayeshk55/CredLink-sub000/internal/repository"
)

// 消息方向
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// 会话状态：有任意一条发出的消息即 Replied，否则 New。
// 这是给 UI 标签页用的粗粒度标记，不是已读回执。
const (
	ThreadStatusNew     = "New"
	ThreadStatusReplied = "Replied"
)

// ThreadItem 合并后的会话条目
type ThreadItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Direction string    `json:"direction"`
}

// ConversationThread 与单个对端合并后的会话视图。
// Items 按 created_at 非递减排列；时间戳相同时保持输入相对顺序（稳定排序），
// 不承诺跨请求的确定性平序。
type ConversationThread struct {
	PartnerID   string       `json:"partner_id"`
	Items       []ThreadItem `json:"items"`
	Latest      ThreadItem   `json:"latest"`
	HasOutgoing bool         `json:"has_outgoing"`
	UnseenCount int          `json:"unseen_count"`
	Status      string       `json:"status"`
}

// Watermarks 对端 id → 客户端持有的最后已读时间。
// 缺失的 key 表示从未读过，所有收到的消息都算未读。
type Watermarks map[string]time.Time

// ConversationService 会话聚合：双向消息流合并 + 水位线未读计数
type ConversationService interface {
	// Conversations 对端 id → 会话线程。空输入返回空 map，不是错误。
	Conversations(ctx context.Context, viewerID string, watermarks Watermarks) (map[string]*ConversationThread, error)
	// UnreadTotal 全部会话 unseen 之和（侧边栏角标用）
	UnreadTotal(ctx context.Context, viewerID string, watermarks Watermarks) (int, error)
	// DeleteConversation 透传删除两人间全部消息并失效 viewer 的摘要缓存
	DeleteConversation(ctx context.Context, viewerID, partnerID string) (int64, error)
}

type conversationService struct {
	messages repository.MessageRepository
	store    cache.Store
}

func NewConversationService(messages repository.MessageRepository, store cache.Store) ConversationService {
	return &conversationService{messages: messages, store: store}
}

func (s *conversationService) Conversations(ctx context.Context, viewerID string, watermarks Watermarks) (map[string]*ConversationThread, error) {
	msgs, err := s.messages.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	threads := make(map[string]*ConversationThread)
	for _, m := range msgs {
		var partner, direction string
		switch {
		case m.ReceiverID == viewerID:
			partner, direction = m.SenderID, DirectionIn
		case m.SenderID == viewerID:
			partner, direction = m.ReceiverID, DirectionOut
		default:
			// 适配器约定不会出现，防御性跳过
			continue
		}
		t, ok := threads[partner]
		if !ok {
			t = &ConversationThread{PartnerID: partner}
			threads[partner] = t
		}
		t.Items = append(t.Items, ThreadItem{ID: m.ID, Text: m.Text, CreatedAt: m.CreatedAt, Direction: direction})
	}

	for partner, t := range threads {
		sort.SliceStable(t.Items, func(i, j int) bool {
			return t.Items[i].CreatedAt.Before(t.Items[j].CreatedAt)
		})
		wm := watermarks[partner] // 缺失 → 零值，一切 incoming 都未读
		for _, it := range t.Items {
			if it.Direction == DirectionOut {
				t.HasOutgoing = true
			} else if it.CreatedAt.After(wm) {
				t.UnseenCount++
			}
		}
		t.Latest = t.Items[len(t.Items)-1]
		if t.HasOutgoing {
			t.Status = ThreadStatusReplied
		} else {
			t.Status = ThreadStatusNew
		}
	}
	return threads, nil
}

func (s *conversationService) UnreadTotal(ctx context.Context, viewerID string, watermarks Watermarks) (int, error) {
	threads, err := s.Conversations(ctx, viewerID, watermarks)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, t := range threads {
		total += t.UnseenCount
	}
	return total, nil
}

func (s *conversationService) DeleteConversation(ctx context.Context, viewerID, partnerID string) (int64, error) {
	deleted, err := s.messages.DeleteConversation(ctx, viewerID, partnerID)
	if err != nil {
		return 0, fmt.Errorf("delete conversation: %w", err)
	}
	if s.store != nil {
		_ = s.store.Invalidate(ctx, NamespaceSummary, viewerID)
	}
	return deleted, nil
}
