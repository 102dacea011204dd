package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"newscheck/internal/config"
	"newscheck/internal/dto"
	"newscheck/internal/models"
	"newscheck/internal/repository"
	"newscheck/pkg/model_caller"

	"github.com/sirupsen/logrus"
)

const (
	// 送入模型的文本上限,控制成本和延迟
	maxPromptChars = 3000
	// 入库正文上限
	maxArticleChars = 5000
	// 标题取正文首行,上限100字符
	maxHeadlineChars = 100
	// 有效输入的最小长度
	minTextChars = 10

	// 解析失败时的兜底置信度
	defaultConfidence = 75
	defaultReasoning  = "Analysis completed."
)

// 校验错误,文案属于对外契约
var (
	ErrEmptyText    = errors.New("Please provide article text to analyze.")
	ErrTextTooShort = errors.New("Text too short. Please provide a more detailed article or headline.")
)

// systemPrompt 判别任务的固定系统提示词
const systemPrompt = `You are a fake news detection system. Analyze the given news text and determine if it is REAL or FAKE news.

Consider these factors:
- Sensationalist language and clickbait patterns
- Emotional manipulation tactics
- Lack of specific sources or citations
- Logical inconsistencies
- Use of absolute/extreme language
- Grammar and spelling quality
- Claims without evidence
- Known misinformation patterns

Respond ONLY with valid JSON in this exact format:
{"prediction": "REAL" or "FAKE", "confidence": number between 50-99, "reasoning": "brief explanation"}

The confidence should reflect how certain you are. Higher = more certain.`

// jsonPattern 从模型自由文本中提取首个大括号包围的片段
var jsonPattern = regexp.MustCompile(`(?s)\{.*?\}`)

// Verdict 解析后的判定结果
// Degraded为true表示结构化解析失败,结果来自关键词兜底而非模型的结构化输出
type Verdict struct {
	Prediction string
	Confidence int
	Reasoning  string
	Degraded   bool
}

// AnalysisService 新闻可信度分析服务
type AnalysisService struct {
	caller         *model_caller.ModelCaller
	limiter        model_caller.Limiter
	predictionRepo *repository.PredictionRepository
	sourceRepo     *repository.SourceRepository
	cfg            *config.Config
	logger         *logrus.Logger
}

// NewAnalysisService 创建分析服务
func NewAnalysisService(
	caller *model_caller.ModelCaller,
	limiter model_caller.Limiter,
	predictionRepo *repository.PredictionRepository,
	sourceRepo *repository.SourceRepository,
	cfg *config.Config,
	logger *logrus.Logger,
) *AnalysisService {
	return &AnalysisService{
		caller:         caller,
		limiter:        limiter,
		predictionRepo: predictionRepo,
		sourceRepo:     sourceRepo,
		cfg:            cfg,
		logger:         logger,
	}
}

// Analyze 分析一段新闻文本
// 流程: 校验 -> 调用模型网关 -> 解析判定 -> 写入检测记录 -> 累加来源统计
// 校验失败时不产生任何副作用;检测记录与来源统计之间没有跨表事务
func (s *AnalysisService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	// 输入校验
	trimmed := strings.TrimSpace(req.Text)
	if trimmed == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(trimmed) < minTextChars {
		return nil, ErrTextTooShort
	}

	// 调用模型网关
	messages := []dto.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Analyze this news text:\n\n" + truncateRunes(req.Text, maxPromptChars)},
	}
	resp, err := s.caller.CallWithConcurrencyLimit(ctx, s.limiter, "analyze", messages, &model_caller.CallOptions{
		MaxTokens:   s.cfg.AI.MaxTokens,
		Temperature: s.cfg.AI.Temperature,
	})
	if err != nil {
		// 上游状态码等细节只记录日志,不回传给调用方
		s.logger.WithError(err).Error("模型网关调用失败")
		return nil, fmt.Errorf("模型网关调用失败: %w", err)
	}

	// 解析模型输出
	verdict := ParseVerdict(resp.Content())
	if verdict.Degraded {
		s.logger.WithField("content", resp.Content()).Warn("模型输出无法结构化解析,使用关键词兜底结果")
	}

	probabilityScore := float64(verdict.Confidence) / 100

	// source_name裁剪空白,空白串视为未提供
	sourceName := normalizeSourceName(req.SourceName)

	// 写入检测记录
	prediction := &models.Prediction{
		ArticleText:      truncateRunes(req.Text, maxArticleChars),
		Headline:         deriveHeadline(req.Text),
		SourceName:       sourceName,
		Prediction:       verdict.Prediction,
		Confidence:       verdict.Confidence,
		ProbabilityScore: probabilityScore,
	}
	if err := s.predictionRepo.Create(prediction); err != nil {
		s.logger.WithError(err).Error("写入检测记录失败")
		return nil, fmt.Errorf("写入检测记录失败: %w", err)
	}

	// 累加来源统计
	if sourceName != nil {
		isFake := verdict.Prediction == models.PredictionFake
		if err := s.sourceRepo.RecordVerdict(*sourceName, isFake); err != nil {
			// 检测记录已落库,此处失败不回滚
			s.logger.WithError(err).Error("更新来源统计失败")
			return nil, fmt.Errorf("更新来源统计失败: %w", err)
		}
	}

	// 响应直接取本次计算结果,不回读存储
	return &dto.AnalyzeResponse{
		Prediction:       verdict.Prediction,
		Confidence:       verdict.Confidence,
		ProbabilityScore: probabilityScore,
		Reasoning:        verdict.Reasoning,
		SourceName:       sourceName,
	}, nil
}

// ParseVerdict 解析模型的自由文本输出
// 优先提取首个大括号片段按JSON解码;提取或解码失败时进入兜底模式,
// 在原文中做关键词扫描,扫描不命中则默认FAKE
func ParseVerdict(content string) Verdict {
	if match := jsonPattern.FindString(content); match != "" {
		var parsed struct {
			Prediction string      `json:"prediction"`
			Confidence interface{} `json:"confidence"`
			Reasoning  string      `json:"reasoning"`
		}
		if err := json.Unmarshal([]byte(match), &parsed); err == nil {
			verdict := Verdict{
				Prediction: models.PredictionFake,
				Confidence: coerceConfidence(parsed.Confidence),
				Reasoning:  parsed.Reasoning,
			}
			// 仅在完全匹配REAL时判真,其余一律判假
			if parsed.Prediction == models.PredictionReal {
				verdict.Prediction = models.PredictionReal
			}
			if verdict.Reasoning == "" {
				verdict.Reasoning = defaultReasoning
			}
			return verdict
		}
	}

	// 兜底模式: 关键词扫描
	verdict := Verdict{
		Prediction: models.PredictionFake,
		Confidence: defaultConfidence,
		Reasoning:  defaultReasoning,
		Degraded:   true,
	}
	lower := strings.ToLower(content)
	if strings.Contains(lower, `"real"`) || strings.Contains(lower, `prediction": "real`) {
		verdict.Prediction = models.PredictionReal
	}
	return verdict
}

// coerceConfidence 将任意JSON值强转为[50,99]内的整数置信度
// 非数值或零值回退到默认值75
func coerceConfidence(value interface{}) int {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			n = 0
		} else {
			n = parsed
		}
	case json.Number:
		n, _ = v.Float64()
	default:
		n = 0
	}

	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		n = defaultConfidence
	}

	confidence := int(math.Round(n))
	if confidence < 50 {
		confidence = 50
	}
	if confidence > 99 {
		confidence = 99
	}
	return confidence
}

// normalizeSourceName 裁剪来源名称,空白串归一为nil
func normalizeSourceName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// deriveHeadline 取原始文本首行作为标题,上限100字符
func deriveHeadline(text string) string {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}
	return truncateRunes(firstLine, maxHeadlineChars)
}

// truncateRunes 按字符数截断,避免截断多字节字符
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
