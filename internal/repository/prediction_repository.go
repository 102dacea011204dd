package repository

import (
	"newscheck/internal/models"

	"gorm.io/gorm"
)

// PredictionRepository 检测记录数据访问层
type PredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository 创建检测记录Repository
func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Create 创建检测记录
func (r *PredictionRepository) Create(prediction *models.Prediction) error {
	return r.db.Create(prediction).Error
}

// GetByID 根据ID获取检测记录
func (r *PredictionRepository) GetByID(id uint) (*models.Prediction, error) {
	var prediction models.Prediction
	err := r.db.First(&prediction, id).Error
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}

// ListRecent 获取最近的检测记录,按创建时间倒序
func (r *PredictionRepository) ListRecent(limit int) ([]models.Prediction, error) {
	var predictions []models.Prediction
	err := r.db.Order("created_at DESC").Limit(limit).Find(&predictions).Error
	return predictions, err
}

// List 分页获取检测记录
func (r *PredictionRepository) List(offset, limit int) ([]models.Prediction, int64, error) {
	var predictions []models.Prediction
	var total int64

	if err := r.db.Model(&models.Prediction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&predictions).Error
	return predictions, total, err
}

// Count 获取检测记录总数
func (r *PredictionRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Prediction{}).Count(&total).Error
	return total, err
}

// CountByPrediction 按判定结果统计记录数
func (r *PredictionRepository) CountByPrediction(prediction string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Prediction{}).Where("prediction = ?", prediction).Count(&count).Error
	return count, err
}

// AverageConfidence 获取平均置信度
func (r *PredictionRepository) AverageConfidence() (float64, error) {
	var avg float64
	err := r.db.Model(&models.Prediction{}).Select("COALESCE(AVG(confidence), 0)").Scan(&avg).Error
	return avg, err
}
