package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"rankwatch/internal/repository"
)

type Stats struct {
	TotalKeywords   int64    `json:"total_keywords"`
	TrackedKeywords int      `json:"tracked_keywords"`
	AveragePosition *float64 `json:"average_position"`
	Top3            int      `json:"top3"`
	FirstPage       int      `json:"first_page"`
	NotRanking      int      `json:"not_ranking"`
	Improved        int      `json:"improved"`
	Declined        int      `json:"declined"`
}

type PositionPoint struct {
	Position  *int      `json:"position"`
	Clicks    int       `json:"clicks"`
	CheckedAt time.Time `json:"checked_at"`
}

type Service interface {
	GetStats(ctx context.Context, projectID uuid.UUID) (*Stats, error)
	GetPositionHistory(ctx context.Context, keywordID uuid.UUID, days int) ([]PositionPoint, error)
}

type service struct {
	keywordRepo repository.KeywordRepository
	rankingRepo repository.RankingRepository
	redis       *redis.Client
}

func NewService(keywordRepo repository.KeywordRepository, rankingRepo repository.RankingRepository, redisClient *redis.Client) Service {
	return &service{
		keywordRepo: keywordRepo,
		rankingRepo: rankingRepo,
		redis:       redisClient,
	}
}

func (s *service) GetStats(ctx context.Context, projectID uuid.UUID) (*Stats, error) {
	cacheKey := fmt.Sprintf("dashboard:stats:%s", projectID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	totalKeywords, err := s.keywordRepo.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	latest, err := s.rankingRepo.LatestByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalKeywords:   totalKeywords,
		TrackedKeywords: len(latest),
	}

	positionSum := 0
	ranked := 0
	for _, r := range latest {
		if r.Position == nil {
			stats.NotRanking++
		} else {
			positionSum += *r.Position
			ranked++
			if *r.Position <= 3 {
				stats.Top3++
			}
			if *r.Position <= 10 {
				stats.FirstPage++
			}
		}

		if delta, ok := r.Delta(); ok {
			switch {
			case delta > 0:
				stats.Improved++
			case delta < 0:
				stats.Declined++
			}
		}
	}
	if ranked > 0 {
		avg := float64(positionSum) / float64(ranked)
		stats.AveragePosition = &avg
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheKey, statsJSON, 5*time.Minute).Err()
		}
	}

	return stats, nil
}

func (s *service) GetPositionHistory(ctx context.Context, keywordID uuid.UUID, days int) ([]PositionPoint, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	rankings, err := s.rankingRepo.ListByKeyword(ctx, keywordID, since)
	if err != nil {
		return nil, err
	}

	points := make([]PositionPoint, 0, len(rankings))
	for _, r := range rankings {
		points = append(points, PositionPoint{
			Position:  r.Position,
			Clicks:    r.Clicks,
			CheckedAt: r.CheckedAt,
		})
	}
	return points, nil
}
