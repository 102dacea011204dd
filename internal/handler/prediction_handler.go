package handler

import (
	"newscheck/internal/dto"
	"newscheck/internal/models"
	"newscheck/internal/repository"
	"newscheck/internal/utils"

	"github.com/gin-gonic/gin"
)

// 公开历史列表上限
const recentPredictionsLimit = 20

// PredictionHandler 检测记录处理器
type PredictionHandler struct {
	predictionRepo *repository.PredictionRepository
}

// NewPredictionHandler 创建检测记录处理器
func NewPredictionHandler(predictionRepo *repository.PredictionRepository) *PredictionHandler {
	return &PredictionHandler{predictionRepo: predictionRepo}
}

// ListRecent 获取最近的检测记录,按创建时间倒序,最多20条
func (h *PredictionHandler) ListRecent(c *gin.Context) {
	predictions, err := h.predictionRepo.ListRecent(recentPredictionsLimit)
	if err != nil {
		utils.InternalError(c, "Failed to load predictions.")
		return
	}

	utils.SuccessResponse(c, toPredictionResponses(predictions))
}

// toPredictionResponses 转换为响应结构
func toPredictionResponses(predictions []models.Prediction) []dto.PredictionResponse {
	responses := make([]dto.PredictionResponse, len(predictions))
	for i, p := range predictions {
		responses[i] = dto.PredictionResponse{
			ID:               p.ID,
			ArticleText:      p.ArticleText,
			Headline:         p.Headline,
			SourceName:       p.SourceName,
			Prediction:       p.Prediction,
			Confidence:       p.Confidence,
			ProbabilityScore: p.ProbabilityScore,
			CreatedAt:        p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return responses
}
