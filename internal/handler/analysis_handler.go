package handler

import (
	"errors"

	"newscheck/internal/dto"
	"newscheck/internal/service"
	"newscheck/internal/utils"

	"github.com/gin-gonic/gin"
)

// 分析失败时的通用提示,不向调用方暴露上游细节
const analysisFailedMessage = "Failed to analyze the article. Please try again."

// AnalysisHandler 分析处理器
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler 创建分析处理器
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Analyze 分析一段新闻文本
// @Summary 新闻可信度分析
// @Tags 分析
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "待分析文本"
// @Success 200 {object} dto.AnalyzeResponse
// @Router /api/analyze [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 请求体缺失或text不是字符串,按无输入处理
		utils.BadRequest(c, service.ErrEmptyText.Error())
		return
	}

	resp, err := h.analysisService.Analyze(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) || errors.Is(err, service.ErrTextTooShort) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, analysisFailedMessage)
		return
	}

	utils.SuccessResponse(c, resp)
}
