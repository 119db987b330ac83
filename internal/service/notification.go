package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jayeshk55/CredLink-sub000/internal/model"
	"github.com/jayeshk55/CredLink-sub000/internal/repository"
)

// 通知 id 前缀：kind + 原始事件 id，跨类型无碰撞，清除集合以此为准
const (
	MessageIDPrefix    = "msg-"
	ConnectionIDPrefix = "conn-"
)

const (
	KindMessage           = "message"
	KindConnectionRequest = "connection_request"
)

// FallbackDisplayName 身份目录查不到发送者时的兜底展示名
const FallbackDisplayName = "Someone"

// NotificationEvent 统一形状的通知条目
type NotificationEvent struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// NotificationFeed 过滤后的通知列表和角标计数
type NotificationFeed struct {
	Notifications []NotificationEvent `json:"notifications"`
	Count         int                 `json:"count"`
}

// NotificationService blends recent incoming messages and pending connection
// requests into one feed. Each source list arrives newest-first from the
// adapter and the two are concatenated without a cross-kind merge sort; that
// matches the reference behavior and is intentional.
type NotificationService interface {
	Feed(ctx context.Context, viewerID string, cleared map[string]struct{}) (*NotificationFeed, error)
}

type notificationService struct {
	messages    repository.MessageRepository
	connections repository.ConnectionRepository
	directory   repository.UserRepository
	window      int
}

// NewNotificationService 构造通知聚合；window 是每个事件流参与聚合的条数上限
func NewNotificationService(messages repository.MessageRepository, connections repository.ConnectionRepository, directory repository.UserRepository, window int) NotificationService {
	if window <= 0 {
		window = 50
	}
	return &notificationService{messages: messages, connections: connections, directory: directory, window: window}
}

func (s *notificationService) Feed(ctx context.Context, viewerID string, cleared map[string]struct{}) (*NotificationFeed, error) {
	msgs, err := s.messages.ListRecentIncoming(ctx, viewerID, s.window)
	if err != nil {
		return nil, fmt.Errorf("recent incoming messages: %w", err)
	}
	conns, err := s.connections.ListPendingTo(ctx, viewerID, s.window)
	if err != nil {
		return nil, fmt.Errorf("pending connections: %w", err)
	}

	// 发送者展示名一次批量解析，逐条查询是缺陷不是优化项
	profiles, err := s.resolveSenders(ctx, msgs, conns)
	if err != nil {
		return nil, fmt.Errorf("resolve senders: %w", err)
	}

	events := make([]NotificationEvent, 0, len(msgs)+len(conns))
	for _, m := range msgs {
		id := MessageIDPrefix + m.ID
		if _, ok := cleared[id]; ok {
			continue
		}
		events = append(events, NotificationEvent{
			ID:        id,
			Kind:      KindMessage,
			Title:     "Message received",
			Message:   "Message received from " + displayName(profiles, m.SenderID),
			CreatedAt: m.CreatedAt,
		})
	}
	for _, c := range conns {
		id := ConnectionIDPrefix + c.ID
		if _, ok := cleared[id]; ok {
			continue
		}
		events = append(events, NotificationEvent{
			ID:        id,
			Kind:      KindConnectionRequest,
			Title:     "Connection request",
			Message:   "Connection request received from " + displayName(profiles, c.SenderID),
			CreatedAt: c.CreatedAt,
		})
	}
	return &NotificationFeed{Notifications: events, Count: len(events)}, nil
}

func (s *notificationService) resolveSenders(ctx context.Context, msgs []*model.Message, conns []*model.ConnectionRequest) (map[string]repository.Profile, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(msgs)+len(conns))
	for _, m := range msgs {
		if _, ok := seen[m.SenderID]; !ok {
			seen[m.SenderID] = struct{}{}
			ids = append(ids, m.SenderID)
		}
	}
	for _, c := range conns {
		if _, ok := seen[c.SenderID]; !ok {
			seen[c.SenderID] = struct{}{}
			ids = append(ids, c.SenderID)
		}
	}
	return s.directory.ResolveMany(ctx, ids)
}

// displayName 兜底链：fullName → email → "Someone"
func displayName(profiles map[string]repository.Profile, id string) string {
	p, ok := profiles[id]
	if !ok {
		return FallbackDisplayName
	}
	if p.FullName != "" {
		return p.FullName
	}
	if p.Email != "" {
		return p.Email
	}
	return FallbackDisplayName
}
