package service

import (
	"math"

	"newscheck/internal/dto"
	"newscheck/internal/models"
	"newscheck/internal/repository"
)

// StatsService 总体统计服务
type StatsService struct {
	predictionRepo *repository.PredictionRepository
	sourceRepo     *repository.SourceRepository
}

// NewStatsService 创建统计服务
func NewStatsService(predictionRepo *repository.PredictionRepository, sourceRepo *repository.SourceRepository) *StatsService {
	return &StatsService{
		predictionRepo: predictionRepo,
		sourceRepo:     sourceRepo,
	}
}

// GetStats 获取总体统计
func (s *StatsService) GetStats() (*dto.StatsResponse, error) {
	total, err := s.predictionRepo.Count()
	if err != nil {
		return nil, err
	}

	realCount, err := s.predictionRepo.CountByPrediction(models.PredictionReal)
	if err != nil {
		return nil, err
	}

	fakeCount, err := s.predictionRepo.CountByPrediction(models.PredictionFake)
	if err != nil {
		return nil, err
	}

	avgConfidence, err := s.predictionRepo.AverageConfidence()
	if err != nil {
		return nil, err
	}

	totalSources, err := s.sourceRepo.Count()
	if err != nil {
		return nil, err
	}

	unreliableSources, err := s.sourceRepo.CountUnreliable()
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		TotalChecks:       total,
		RealCount:         realCount,
		FakeCount:         fakeCount,
		AvgConfidence:     math.Round(avgConfidence*100) / 100,
		TotalSources:      totalSources,
		UnreliableSources: unreliableSources,
	}, nil
}
