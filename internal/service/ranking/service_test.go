package ranking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
	"rankwatch/internal/mocks"
	"rankwatch/internal/service/ranking"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestRankingService_Record(t *testing.T) {
	ctx := context.Background()
	keyword := &domain.Keyword{ID: uuid.New(), Text: "best espresso machine"}

	t.Run("First Observation", func(t *testing.T) {
		mockRankingRepo := new(mocks.RankingRepository)
		mockKeywordRepo := new(mocks.KeywordRepository)
		svc := ranking.NewService(mockRankingRepo, mockKeywordRepo)

		mockRankingRepo.On("GetLatestByKeyword", ctx, keyword.ID).Return(nil, nil).Once()
		mockRankingRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Ranking) bool {
			return r.KeywordID == keyword.ID && *r.Position == 4 && r.PreviousPosition == nil
		})).Return(nil).Once()

		r, err := svc.Record(ctx, keyword, domain.Observation{
			Query:    keyword.Text,
			Position: floatPtr(4.2),
			Clicks:   12,
		})

		assert.NoError(t, err)
		assert.NotNil(t, r)
		assert.Equal(t, 4, *r.Position)
		assert.Nil(t, r.PreviousPosition)
		assert.Equal(t, 12, r.Clicks)

		mockRankingRepo.AssertExpectations(t)
	})

	t.Run("Rounds Halves Up", func(t *testing.T) {
		mockRankingRepo := new(mocks.RankingRepository)
		mockKeywordRepo := new(mocks.KeywordRepository)
		svc := ranking.NewService(mockRankingRepo, mockKeywordRepo)

		mockRankingRepo.On("GetLatestByKeyword", ctx, keyword.ID).Return(nil, nil).Once()
		mockRankingRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		r, err := svc.Record(ctx, keyword, domain.Observation{Position: floatPtr(7.5)})

		assert.NoError(t, err)
		assert.Equal(t, 8, *r.Position)
	})

	t.Run("Snapshots Previous Position", func(t *testing.T) {
		mockRankingRepo := new(mocks.RankingRepository)
		mockKeywordRepo := new(mocks.KeywordRepository)
		svc := ranking.NewService(mockRankingRepo, mockKeywordRepo)

		latest := &domain.Ranking{KeywordID: keyword.ID, Position: intPtr(9)}
		mockRankingRepo.On("GetLatestByKeyword", ctx, keyword.ID).Return(latest, nil).Once()
		mockRankingRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Ranking) bool {
			return *r.Position == 3 && *r.PreviousPosition == 9
		})).Return(nil).Once()

		r, err := svc.Record(ctx, keyword, domain.Observation{Position: floatPtr(3.0)})

		assert.NoError(t, err)
		assert.Equal(t, 9, *r.PreviousPosition)

		mockRankingRepo.AssertExpectations(t)
	})

	t.Run("Nil Position Stays Nil", func(t *testing.T) {
		mockRankingRepo := new(mocks.RankingRepository)
		mockKeywordRepo := new(mocks.KeywordRepository)
		svc := ranking.NewService(mockRankingRepo, mockKeywordRepo)

		latest := &domain.Ranking{KeywordID: keyword.ID, Position: intPtr(5)}
		mockRankingRepo.On("GetLatestByKeyword", ctx, keyword.ID).Return(latest, nil).Once()
		mockRankingRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Ranking) bool {
			return r.Position == nil && *r.PreviousPosition == 5
		})).Return(nil).Once()

		r, err := svc.Record(ctx, keyword, domain.Observation{})

		assert.NoError(t, err)
		assert.Nil(t, r.Position)

		mockRankingRepo.AssertExpectations(t)
	})

	t.Run("Repo Error", func(t *testing.T) {
		mockRankingRepo := new(mocks.RankingRepository)
		mockKeywordRepo := new(mocks.KeywordRepository)
		svc := ranking.NewService(mockRankingRepo, mockKeywordRepo)

		mockRankingRepo.On("GetLatestByKeyword", ctx, keyword.ID).Return(nil, errors.New("db error")).Once()

		r, err := svc.Record(ctx, keyword, domain.Observation{Position: floatPtr(1)})

		assert.Error(t, err)
		assert.Nil(t, r)
	})
}

func TestRankingService_Latest(t *testing.T) {
	ctx := context.Background()
	keywordID := uuid.New()

	t.Run("Keyword Not Found", func(t *testing.T) {
		mockRankingRepo := new(mocks.RankingRepository)
		mockKeywordRepo := new(mocks.KeywordRepository)
		svc := ranking.NewService(mockRankingRepo, mockKeywordRepo)

		mockKeywordRepo.On("GetByID", ctx, keywordID).Return(nil, nil).Once()

		r, err := svc.Latest(ctx, keywordID)

		assert.ErrorIs(t, err, ranking.ErrKeywordNotFound)
		assert.Nil(t, r)
	})

	t.Run("Found", func(t *testing.T) {
		mockRankingRepo := new(mocks.RankingRepository)
		mockKeywordRepo := new(mocks.KeywordRepository)
		svc := ranking.NewService(mockRankingRepo, mockKeywordRepo)

		mockKeywordRepo.On("GetByID", ctx, keywordID).Return(&domain.Keyword{ID: keywordID}, nil).Once()
		expected := &domain.Ranking{KeywordID: keywordID, Position: intPtr(7)}
		mockRankingRepo.On("GetLatestByKeyword", ctx, keywordID).Return(expected, nil).Once()

		r, err := svc.Latest(ctx, keywordID)

		assert.NoError(t, err)
		assert.Equal(t, expected, r)
	})
}

func TestRankingService_History(t *testing.T) {
	ctx := context.Background()
	keywordID := uuid.New()

	mockRankingRepo := new(mocks.RankingRepository)
	mockKeywordRepo := new(mocks.KeywordRepository)
	svc := ranking.NewService(mockRankingRepo, mockKeywordRepo)

	mockKeywordRepo.On("GetByID", ctx, keywordID).Return(&domain.Keyword{ID: keywordID}, nil).Once()
	mockRankingRepo.On("ListByKeyword", ctx, keywordID, mock.Anything).Return([]domain.Ranking{
		{KeywordID: keywordID, Position: intPtr(5)},
		{KeywordID: keywordID, Position: intPtr(6)},
	}, nil).Once()

	history, err := svc.History(ctx, keywordID, 7)

	assert.NoError(t, err)
	assert.Len(t, history, 2)
}
