package handler

import (
	"strconv"

	"newscheck/internal/repository"
	"newscheck/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理员处理器
// 提供不受公开条数上限约束的分页视图
type AdminHandler struct {
	predictionRepo *repository.PredictionRepository
	sourceRepo     *repository.SourceRepository
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(predictionRepo *repository.PredictionRepository, sourceRepo *repository.SourceRepository) *AdminHandler {
	return &AdminHandler{
		predictionRepo: predictionRepo,
		sourceRepo:     sourceRepo,
	}
}

// ListPredictions 分页获取全部检测记录
func (h *AdminHandler) ListPredictions(c *gin.Context) {
	page, perPage := paginationParams(c)

	predictions, total, err := h.predictionRepo.List((page-1)*perPage, perPage)
	if err != nil {
		utils.InternalError(c, "Failed to load predictions.")
		return
	}

	utils.PaginatedResponse(c, toPredictionResponses(predictions), total, page, perPage)
}

// ListSources 分页获取全部来源
func (h *AdminHandler) ListSources(c *gin.Context) {
	page, perPage := paginationParams(c)

	sources, total, err := h.sourceRepo.List((page-1)*perPage, perPage)
	if err != nil {
		utils.InternalError(c, "Failed to load sources.")
		return
	}

	utils.PaginatedResponse(c, toSourceResponses(sources), total, page, perPage)
}

// paginationParams 解析分页参数
func paginationParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
