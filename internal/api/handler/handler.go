package handler

import (
	"time"

	"github.com/jayeshk55/CredLink-sub000/internal/repository"
	"github.com/jayeshk55/CredLink-sub000/internal/service"
)

// Handler 聚合全部 HTTP 处理器依赖
type Handler struct {
	conversations service.ConversationService
	notifications service.NotificationService
	summary       service.SummaryService
	users         repository.UserRepository

	jwtSecret string
	tokenTTL  time.Duration
}

func New(
	conversations service.ConversationService,
	notifications service.NotificationService,
	summary service.SummaryService,
	users repository.UserRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) *Handler {
	return &Handler{
		conversations: conversations,
		notifications: notifications,
		summary:       summary,
		users:         users,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
	}
}
