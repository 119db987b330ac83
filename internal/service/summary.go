package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jayeshk55/CredLink-sub000/internal/cache"
	"github.com/jayeshk55/CredLink-sub000/internal/repository"
)

// NamespaceSummary 仪表盘摘要缓存命名空间（key 是 viewer id）
const NamespaceSummary = "summary"

// DashboardSummary 仪表盘一次性取回的四个计数
type DashboardSummary struct {
	NotificationsCount int   `json:"notifications_count"`
	UnreadMessages     int   `json:"unread_messages"`
	PendingConnections int64 `json:"pending_connections"`
	NewContacts        int64 `json:"new_contacts"`
}

// SummaryService 仪表盘摘要：对四个子查询扇出并按 viewer 缓存。
// 缓存 key 只有 viewer id，同一 TTL 窗口内可能拿到按旧水位线算出的计数，
// 这是接受的时效窗口，与其它缓存读一致。
type SummaryService interface {
	Summary(ctx context.Context, viewerID string, watermarks Watermarks, cleared map[string]struct{}) (*DashboardSummary, error)
}

type summaryService struct {
	notifications NotificationService
	conversations ConversationService
	connections   repository.ConnectionRepository
	contacts      repository.ContactRepository
	store         cache.Store
	ttl           time.Duration
}

func NewSummaryService(
	notifications NotificationService,
	conversations ConversationService,
	connections repository.ConnectionRepository,
	contacts repository.ContactRepository,
	store cache.Store,
	ttl time.Duration,
) SummaryService {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &summaryService{
		notifications: notifications,
		conversations: conversations,
		connections:   connections,
		contacts:      contacts,
		store:         store,
		ttl:           ttl,
	}
}

func (s *summaryService) Summary(ctx context.Context, viewerID string, watermarks Watermarks, cleared map[string]struct{}) (*DashboardSummary, error) {
	out, err := cache.GetOrCompute(ctx, s.store, NamespaceSummary, viewerID, s.ttl, func(ctx context.Context) (DashboardSummary, error) {
		return s.compute(ctx, viewerID, watermarks, cleared)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// compute 四个子查询互相独立，并发取回；任一失败则整体失败且不落缓存。
func (s *summaryService) compute(ctx context.Context, viewerID string, watermarks Watermarks, cleared map[string]struct{}) (DashboardSummary, error) {
	var (
		sum      DashboardSummary
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	run := func(name string, f func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(ctx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", name, err)
				}
				mu.Unlock()
			}
		}()
	}

	run("notifications", func(ctx context.Context) error {
		feed, err := s.notifications.Feed(ctx, viewerID, cleared)
		if err != nil {
			return err
		}
		mu.Lock()
		sum.NotificationsCount = feed.Count
		mu.Unlock()
		return nil
	})
	run("unread messages", func(ctx context.Context) error {
		total, err := s.conversations.UnreadTotal(ctx, viewerID, watermarks)
		if err != nil {
			return err
		}
		mu.Lock()
		sum.UnreadMessages = total
		mu.Unlock()
		return nil
	})
	run("pending connections", func(ctx context.Context) error {
		cnt, err := s.connections.CountPendingTo(ctx, viewerID)
		if err != nil {
			return err
		}
		mu.Lock()
		sum.PendingConnections = cnt
		mu.Unlock()
		return nil
	})
	run("new contacts", func(ctx context.Context) error {
		cnt, err := s.contacts.CountForOwner(ctx, viewerID)
		if err != nil {
			return err
		}
		mu.Lock()
		sum.NewContacts = cnt
		mu.Unlock()
		return nil
	})

	wg.Wait()
	if firstErr != nil {
		return DashboardSummary{}, firstErr
	}
	return sum, nil
}
