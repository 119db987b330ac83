package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jayeshk55/CredLink-sub000/internal/api/middleware"
	"github.com/jayeshk55/CredLink-sub000/internal/service"
	"github.com/jayeshk55/CredLink-sub000/pkg/logger"
	"github.com/jayeshk55/CredLink-sub000/pkg/response"
)

type conversationsRequest struct {
	// Watermarks 对端 id → RFC3339 最后已读时间，客户端持有并随每次请求上送
	Watermarks map[string]string `json:"watermarks"`
}

// parseWatermarks 解析不了的时间戳按缺失处理（未读过），不让单个坏 key 拖垮整个请求
func parseWatermarks(raw map[string]string) service.Watermarks {
	wm := make(service.Watermarks, len(raw))
	for partner, ts := range raw {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			logger.Debug("dropping malformed watermark", zap.String("partner", partner), zap.String("value", ts))
			continue
		}
		wm[partner] = t
	}
	return wm
}

// Conversations 返回按对端合并的会话线程和未读总数
// @Summary 会话列表
// @Tags 收件箱
// @Accept json
// @Produce json
// @Param request body conversationsRequest true "客户端已读水位线"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/inbox/conversations [post]
func (h *Handler) Conversations(c *gin.Context) {
	var req conversationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	viewer := middleware.CurrentUser(c)
	wm := parseWatermarks(req.Watermarks)

	threads, err := h.conversations.Conversations(c.Request.Context(), viewer, wm)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	total := 0
	for _, t := range threads {
		total += t.UnseenCount
	}
	response.Success(c, gin.H{"conversations": threads, "unread_total": total})
}

// DeleteConversation 删除与某对端的双向全部消息
// @Summary 删除会话
// @Tags 收件箱
// @Produce json
// @Param partner_id path string true "对端用户ID"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/inbox/conversations/{partner_id} [delete]
func (h *Handler) DeleteConversation(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	partnerID := c.Param("partner_id")
	deleted, err := h.conversations.DeleteConversation(c.Request.Context(), viewer, partnerID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}
