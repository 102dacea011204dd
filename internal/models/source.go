package models

import (
	"time"
)

// Source 来源可信度统计模型
// name为裁剪空白后的原始名称,区分大小写,不做任何归一化
type Source struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	Name             string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	TotalChecks      int       `gorm:"default:0" json:"total_checks"`
	FakeCount        int       `gorm:"default:0" json:"fake_count"`
	ReliabilityScore float64   `gorm:"default:0" json:"reliability_score"` // ((total-fake)/total)*100, 保留2位小数
	IsUnreliable     bool      `gorm:"default:false" json:"is_unreliable"` // reliability_score < 50
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName 指定表名
func (Source) TableName() string {
	return "sources"
}
