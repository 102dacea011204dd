package handler

import (
	"newscheck/internal/service"
	"newscheck/internal/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler 统计处理器
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats 获取总体统计
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats()
	if err != nil {
		utils.InternalError(c, "Failed to load stats.")
		return
	}

	utils.SuccessResponse(c, stats)
}
