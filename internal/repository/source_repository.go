package repository

import (
	"errors"
	"strings"
	"time"

	"newscheck/internal/models"

	"gorm.io/gorm"
)

// SourceRepository 来源统计数据访问层
type SourceRepository struct {
	db *gorm.DB
}

// NewSourceRepository 创建来源统计Repository
func NewSourceRepository(db *gorm.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// GetByName 根据名称获取来源,精确匹配
func (r *SourceRepository) GetByName(name string) (*models.Source, error) {
	var source models.Source
	err := r.db.Where("name = ?", name).First(&source).Error
	if err != nil {
		return nil, err
	}
	return &source, nil
}

// ListByChecks 获取来源列表,按检测次数倒序
func (r *SourceRepository) ListByChecks(limit int) ([]models.Source, error) {
	var sources []models.Source
	err := r.db.Order("total_checks DESC").Limit(limit).Find(&sources).Error
	return sources, err
}

// List 分页获取来源列表
func (r *SourceRepository) List(offset, limit int) ([]models.Source, int64, error) {
	var sources []models.Source
	var total int64

	if err := r.db.Model(&models.Source{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("total_checks DESC").Offset(offset).Limit(limit).Find(&sources).Error
	return sources, total, err
}

// Count 获取来源总数
func (r *SourceRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Source{}).Count(&total).Error
	return total, err
}

// CountUnreliable 获取不可信来源数
func (r *SourceRepository) CountUnreliable() (int64, error) {
	var count int64
	err := r.db.Model(&models.Source{}).Where("is_unreliable = ?", true).Count(&count).Error
	return count, err
}

// RecordVerdict 累加一次判定到指定来源
// 计数和派生分值在单条UPDATE中完成,避免并发读改写丢失更新;
// 来源不存在时插入种子行,与并发创建冲突时重试一次累加
func (r *SourceRepository) RecordVerdict(name string, isFake bool) error {
	updated, err := r.incrementCounters(name, isFake)
	if err != nil {
		return err
	}
	if updated {
		return nil
	}

	// 首次出现的来源,插入种子行
	source := &models.Source{
		Name:        name,
		TotalChecks: 1,
		// 新来源首次入库不标记为不可信,即使首个判定为FAKE
		IsUnreliable: false,
	}
	if isFake {
		source.FakeCount = 1
		source.ReliabilityScore = 0
	} else {
		source.FakeCount = 0
		source.ReliabilityScore = 100
	}

	if err := r.db.Create(source).Error; err != nil {
		// 并发请求抢先创建了同名来源,改为累加
		if isDuplicateKeyError(err) {
			if _, retryErr := r.incrementCounters(name, isFake); retryErr != nil {
				return retryErr
			}
			return nil
		}
		return err
	}

	return nil
}

// incrementCounters 原子累加计数并重算派生字段
// SQL内的列引用均取更新前的值,因此派生表达式需内联+1
func (r *SourceRepository) incrementCounters(name string, isFake bool) (bool, error) {
	fakeInc := 0
	if isFake {
		fakeInc = 1
	}

	result := r.db.Model(&models.Source{}).Where("name = ?", name).Updates(map[string]interface{}{
		"total_checks": gorm.Expr("total_checks + 1"),
		"fake_count":   gorm.Expr("fake_count + ?", fakeInc),
		"reliability_score": gorm.Expr(
			"ROUND((total_checks + 1 - (fake_count + ?)) * 100.0 / (total_checks + 1), 2)", fakeInc),
		"is_unreliable": gorm.Expr(
			"(total_checks + 1 - (fake_count + ?)) * 100.0 / (total_checks + 1) < 50", fakeInc),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// isDuplicateKeyError 判断是否为唯一约束冲突
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
