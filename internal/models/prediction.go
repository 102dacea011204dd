package models

import (
	"time"
)

// 判定结果枚举
const (
	PredictionReal = "REAL"
	PredictionFake = "FAKE"
)

// Prediction 检测记录模型
// 每次分析请求写入一条记录,写入后不再修改和删除
type Prediction struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	ArticleText      string    `gorm:"type:text;not null" json:"article_text"`
	Headline         string    `gorm:"size:100" json:"headline"`
	SourceName       *string   `gorm:"size:255;index" json:"source_name"`
	Prediction       string    `gorm:"size:10;not null" json:"prediction"` // REAL, FAKE
	Confidence       int       `gorm:"not null" json:"confidence"`         // 50-99
	ProbabilityScore float64   `gorm:"not null" json:"probability_score"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName 指定表名
func (Prediction) TableName() string {
	return "predictions"
}
