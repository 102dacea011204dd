package dto

// AnalyzeRequest 分析请求
// text的校验在service层手工完成,错误提示文案属于对外契约
type AnalyzeRequest struct {
	Text       string  `json:"text"`
	SourceName *string `json:"source_name"`
}

// AnalyzeResponse 分析响应
type AnalyzeResponse struct {
	Prediction       string  `json:"prediction"`
	Confidence       int     `json:"confidence"`
	ProbabilityScore float64 `json:"probability_score"`
	Reasoning        string  `json:"reasoning"`
	SourceName       *string `json:"source_name"`
}

// PredictionResponse 检测记录响应
type PredictionResponse struct {
	ID               uint    `json:"id"`
	ArticleText      string  `json:"article_text"`
	Headline         string  `json:"headline"`
	SourceName       *string `json:"source_name"`
	Prediction       string  `json:"prediction"`
	Confidence       int     `json:"confidence"`
	ProbabilityScore float64 `json:"probability_score"`
	CreatedAt        string  `json:"created_at"`
}

// SourceResponse 来源统计响应
type SourceResponse struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	TotalChecks      int     `json:"total_checks"`
	FakeCount        int     `json:"fake_count"`
	ReliabilityScore float64 `json:"reliability_score"`
	IsUnreliable     bool    `json:"is_unreliable"`
	UpdatedAt        string  `json:"updated_at"`
}

// StatsResponse 总体统计响应
type StatsResponse struct {
	TotalChecks       int64   `json:"total_checks"`
	RealCount         int64   `json:"real_count"`
	FakeCount         int64   `json:"fake_count"`
	AvgConfidence     float64 `json:"avg_confidence"`
	TotalSources      int64   `json:"total_sources"`
	UnreliableSources int64   `json:"unreliable_sources"`
}
