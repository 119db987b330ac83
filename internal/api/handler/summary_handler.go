package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jayeshk55/CredLink-sub000/internal/api/middleware"
	"github.com/jayeshk55/CredLink-sub000/pkg/response"
)

type summaryRequest struct {
	Watermarks map[string]string `json:"watermarks"`
	Cleared    []string          `json:"cleared" binding:"omitempty,dive,notifid"`
}

// Summary 仪表盘摘要（按 viewer 短 TTL 缓存）
// @Summary 仪表盘摘要
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Param request body summaryRequest true "水位线与已清除 id"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/dashboard/summary [post]
func (h *Handler) Summary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	viewer := middleware.CurrentUser(c)
	sum, err := h.summary.Summary(c.Request.Context(), viewer, parseWatermarks(req.Watermarks), clearedSet(req.Cleared))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, sum)
}
