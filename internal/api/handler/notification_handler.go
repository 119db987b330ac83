package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jayeshk55/CredLink-sub000/internal/api/middleware"
	"github.com/jayeshk55/CredLink-sub000/pkg/response"
)

type notificationsRequest struct {
	// Cleared 客户端维护的已清除通知 id 集合（msg-*/conn-*）
	Cleared []string `json:"cleared" binding:"omitempty,dive,notifid"`
}

func clearedSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Notifications 返回过滤掉已清除 id 的通知列表
// @Summary 通知列表
// @Tags 通知
// @Accept json
// @Produce json
// @Param request body notificationsRequest true "已清除的通知 id"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/notifications [post]
func (h *Handler) Notifications(c *gin.Context) {
	var req notificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	viewer := middleware.CurrentUser(c)
	feed, err := h.notifications.Feed(c.Request.Context(), viewer, clearedSet(req.Cleared))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, feed)
}
