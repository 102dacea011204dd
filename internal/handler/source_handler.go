package handler

import (
	"newscheck/internal/dto"
	"newscheck/internal/models"
	"newscheck/internal/repository"
	"newscheck/internal/utils"

	"github.com/gin-gonic/gin"
)

// 公开来源列表上限
const trackedSourcesLimit = 50

// SourceHandler 来源统计处理器
type SourceHandler struct {
	sourceRepo *repository.SourceRepository
}

// NewSourceHandler 创建来源统计处理器
func NewSourceHandler(sourceRepo *repository.SourceRepository) *SourceHandler {
	return &SourceHandler{sourceRepo: sourceRepo}
}

// ListByChecks 获取来源列表,按检测次数倒序,最多50条
func (h *SourceHandler) ListByChecks(c *gin.Context) {
	sources, err := h.sourceRepo.ListByChecks(trackedSourcesLimit)
	if err != nil {
		utils.InternalError(c, "Failed to load sources.")
		return
	}

	utils.SuccessResponse(c, toSourceResponses(sources))
}

// toSourceResponses 转换为响应结构
func toSourceResponses(sources []models.Source) []dto.SourceResponse {
	responses := make([]dto.SourceResponse, len(sources))
	for i, s := range sources {
		responses[i] = dto.SourceResponse{
			ID:               s.ID,
			Name:             s.Name,
			TotalChecks:      s.TotalChecks,
			FakeCount:        s.FakeCount,
			ReliabilityScore: s.ReliabilityScore,
			IsUnreliable:     s.IsUnreliable,
			UpdatedAt:        s.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return responses
}
