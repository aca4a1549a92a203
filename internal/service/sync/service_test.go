package sync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
	"rankwatch/internal/mocks"
	"rankwatch/internal/repository"
	"rankwatch/internal/service/notifier"
	"rankwatch/internal/service/searchconsole"
	syncsvc "rankwatch/internal/service/sync"
)

func intPtr(n int) *int {
	return &n
}

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}

type fixture struct {
	projectRepo *mocks.ProjectRepository
	keywordRepo *mocks.KeywordRepository
	rankingRepo *mocks.RankingRepository
	userRepo    *mocks.UserRepository
	prefRepo    *mocks.PreferenceRepository
	notifRepo   *mocks.NotificationRepository
	syncRunRepo *mocks.SyncRunRepository
	rankingSvc  *mocks.RankingService
	notifierSvc *mocks.NotifierService
	fetcher     *mocks.Fetcher
	emailSvc    *mocks.EmailService
	insightsSvc *mocks.InsightsService
	svc         syncsvc.Service
}

func newFixture(opts syncsvc.Options) *fixture {
	f := &fixture{
		projectRepo: new(mocks.ProjectRepository),
		keywordRepo: new(mocks.KeywordRepository),
		rankingRepo: new(mocks.RankingRepository),
		userRepo:    new(mocks.UserRepository),
		prefRepo:    new(mocks.PreferenceRepository),
		notifRepo:   new(mocks.NotificationRepository),
		syncRunRepo: new(mocks.SyncRunRepository),
		rankingSvc:  new(mocks.RankingService),
		notifierSvc: new(mocks.NotifierService),
		fetcher:     new(mocks.Fetcher),
		emailSvc:    new(mocks.EmailService),
		insightsSvc: new(mocks.InsightsService),
	}

	repos := &repository.Repositories{
		Project:      f.projectRepo,
		User:         f.userRepo,
		Keyword:      f.keywordRepo,
		Ranking:      f.rankingRepo,
		Preference:   f.prefRepo,
		Notification: f.notifRepo,
		SyncRun:      f.syncRunRepo,
	}

	weekly := syncsvc.NewWeeklyMailer(f.userRepo, f.prefRepo, f.notifRepo, f.rankingRepo, f.emailSvc, f.insightsSvc)
	f.svc = syncsvc.NewService(repos, f.rankingSvc, f.notifierSvc, f.fetcher, weekly, nil, opts)
	return f
}

func testProject() *domain.Project {
	return &domain.Project{
		ID:                 uuid.New(),
		Name:               "Acme Store",
		SiteURL:            "https://acme.example.com",
		SearchConsoleToken: strPtr("token"),
		IsActive:           true,
	}
}

func testKeywords(n int) []domain.Keyword {
	keywords := make([]domain.Keyword, n)
	for i := range keywords {
		keywords[i] = domain.Keyword{ID: uuid.New(), Text: "kw-" + string(rune('a'+i))}
	}
	return keywords
}

func window() domain.DateRange {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return domain.DateRange{From: day, To: day}
}

func TestSyncService_SyncProject(t *testing.T) {
	ctx := context.Background()

	t.Run("Project Not Found", func(t *testing.T) {
		f := newFixture(syncsvc.Options{})
		projectID := uuid.New()

		f.projectRepo.On("GetByID", ctx, projectID).Return(nil, nil).Once()

		summary, err := f.svc.SyncProject(ctx, projectID, window())

		assert.ErrorIs(t, err, syncsvc.ErrProjectNotFound)
		assert.Nil(t, summary)
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		f := newFixture(syncsvc.Options{})
		project := testProject()
		project.SearchConsoleToken = nil

		f.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()

		summary, err := f.svc.SyncProject(ctx, project.ID, window())

		assert.ErrorIs(t, err, searchconsole.ErrMissingCredentials)
		assert.NotNil(t, summary)
		assert.True(t, summary.MissingCredentials)
		assert.True(t, summary.Failed())

		f.fetcher.AssertNotCalled(t, "FetchChunk", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Chunk Failure Is Isolated", func(t *testing.T) {
		f := newFixture(syncsvc.Options{ChunkSize: 2})
		project := testProject()
		keywords := testKeywords(6)

		f.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()
		f.keywordRepo.On("ListByProject", ctx, project.ID).Return(keywords, nil).Once()

		// Three chunks of two; the middle one fails at fetch.
		f.fetcher.On("FetchChunk", ctx, project, []string{keywords[0].Text, keywords[1].Text}, window()).
			Return([]domain.Observation{
				{Query: keywords[0].Text, Position: floatPtr(20)},
				{Query: keywords[1].Text, Position: floatPtr(21)},
			}, nil).Once()
		f.fetcher.On("FetchChunk", ctx, project, []string{keywords[2].Text, keywords[3].Text}, window()).
			Return(nil, errors.New("upstream timeout")).Once()
		f.fetcher.On("FetchChunk", ctx, project, []string{keywords[4].Text, keywords[5].Text}, window()).
			Return([]domain.Observation{
				{Query: keywords[4].Text, Position: floatPtr(30)},
				{Query: keywords[5].Text, Position: floatPtr(31)},
			}, nil).Once()

		// Recorded rankings stay far outside the first page so no events fire.
		f.rankingSvc.On("Record", ctx, mock.Anything, mock.Anything).
			Return(&domain.Ranking{Position: intPtr(20), PreviousPosition: intPtr(21)}, nil).Times(4)

		f.syncRunRepo.On("Create", ctx, mock.MatchedBy(func(run *domain.SyncRun) bool {
			return run.ProjectID == project.ID && run.Recorded == 4 && run.FailedChunks == 1 && run.FailedKeywords == 2
		})).Return(nil).Once()

		summary, err := f.svc.SyncProject(ctx, project.ID, window())

		assert.NoError(t, err)
		assert.Equal(t, 6, summary.Keywords)
		assert.Equal(t, 4, summary.Recorded)
		assert.Equal(t, 1, summary.FailedChunks)
		assert.Equal(t, 2, summary.FailedKeywords)
		assert.False(t, summary.Failed())

		f.fetcher.AssertExpectations(t)
		f.syncRunRepo.AssertExpectations(t)
	})

	t.Run("Record Failure Skips Keyword Only", func(t *testing.T) {
		f := newFixture(syncsvc.Options{ChunkSize: 10})
		project := testProject()
		keywords := testKeywords(2)

		f.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()
		f.keywordRepo.On("ListByProject", ctx, project.ID).Return(keywords, nil).Once()
		f.fetcher.On("FetchChunk", ctx, project, mock.Anything, window()).
			Return([]domain.Observation{
				{Query: keywords[0].Text, Position: floatPtr(15)},
				{Query: keywords[1].Text, Position: floatPtr(16)},
			}, nil).Once()

		f.rankingSvc.On("Record", ctx, &keywords[0], mock.Anything).
			Return(nil, errors.New("db error")).Once()
		f.rankingSvc.On("Record", ctx, &keywords[1], mock.Anything).
			Return(&domain.Ranking{Position: intPtr(16), PreviousPosition: intPtr(17)}, nil).Once()

		f.syncRunRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		summary, err := f.svc.SyncProject(ctx, project.ID, window())

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Recorded)
		assert.Equal(t, 1, summary.FailedKeywords)
		assert.Equal(t, 0, summary.FailedChunks)
	})

	t.Run("Classified Events Are Dispatched", func(t *testing.T) {
		f := newFixture(syncsvc.Options{ChunkSize: 10})
		project := testProject()
		keywords := testKeywords(1)

		f.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()
		f.keywordRepo.On("ListByProject", ctx, project.ID).Return(keywords, nil).Once()
		f.fetcher.On("FetchChunk", ctx, project, mock.Anything, window()).
			Return([]domain.Observation{{Query: keywords[0].Text, Position: floatPtr(2)}}, nil).Once()

		recorded := &domain.Ranking{Position: intPtr(2), PreviousPosition: intPtr(8)}
		f.rankingSvc.On("Record", ctx, &keywords[0], mock.Anything).Return(recorded, nil).Once()

		f.notifierSvc.On("DispatchRankingEvent", ctx, mock.MatchedBy(func(e *notifier.Event) bool {
			return e.Kind == domain.EventTop3 && e.Ranking == recorded
		})).Return(2, nil).Once()

		f.syncRunRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		summary, err := f.svc.SyncProject(ctx, project.ID, window())

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Events)
		assert.Equal(t, 2, summary.Notified)

		f.notifierSvc.AssertExpectations(t)
	})

	t.Run("Missing Queries Are Recorded As Not Ranking", func(t *testing.T) {
		f := newFixture(syncsvc.Options{ChunkSize: 10})
		project := testProject()
		keywords := testKeywords(1)

		f.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()
		f.keywordRepo.On("ListByProject", ctx, project.ID).Return(keywords, nil).Once()
		f.fetcher.On("FetchChunk", ctx, project, mock.Anything, window()).
			Return([]domain.Observation{}, nil).Once()

		f.rankingSvc.On("Record", ctx, &keywords[0], mock.MatchedBy(func(obs domain.Observation) bool {
			return obs.Query == keywords[0].Text && obs.Position == nil
		})).Return(&domain.Ranking{Position: nil, PreviousPosition: nil}, nil).Once()

		f.syncRunRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		summary, err := f.svc.SyncProject(ctx, project.ID, window())

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Recorded)

		f.rankingSvc.AssertExpectations(t)
	})
}

func TestSyncService_SyncAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Project Failure Does Not Abort Siblings", func(t *testing.T) {
		f := newFixture(syncsvc.Options{ChunkSize: 10})

		broken := testProject()
		broken.SearchConsoleToken = nil
		healthy := testProject()

		f.projectRepo.On("ListActive", ctx).Return([]domain.Project{*broken, *healthy}, nil).Once()
		f.projectRepo.On("GetByID", ctx, broken.ID).Return(broken, nil).Once()
		f.projectRepo.On("GetByID", ctx, healthy.ID).Return(healthy, nil).Once()

		f.keywordRepo.On("ListByProject", ctx, healthy.ID).Return(testKeywords(1), nil).Once()
		f.fetcher.On("FetchChunk", ctx, healthy, mock.Anything, window()).
			Return([]domain.Observation{}, nil).Once()
		f.rankingSvc.On("Record", ctx, mock.Anything, mock.Anything).
			Return(&domain.Ranking{}, nil).Once()
		f.syncRunRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		summaries, err := f.svc.SyncAll(ctx, window())

		assert.NoError(t, err)
		assert.Len(t, summaries, 2)
		assert.True(t, summaries[0].MissingCredentials)
		assert.Equal(t, 1, summaries[1].Recorded)
	})
}

func TestSyncService_ListRuns(t *testing.T) {
	ctx := context.Background()

	t.Run("Clamps Limit", func(t *testing.T) {
		f := newFixture(syncsvc.Options{})
		project := testProject()

		f.projectRepo.On("GetByID", ctx, project.ID).Return(project, nil).Once()
		f.syncRunRepo.On("ListByProject", ctx, project.ID, 20).Return([]domain.SyncRun{{ProjectID: project.ID}}, nil).Once()

		runs, err := f.svc.ListRuns(ctx, project.ID, 5000)

		assert.NoError(t, err)
		assert.Len(t, runs, 1)
		f.syncRunRepo.AssertExpectations(t)
	})

	t.Run("Project Not Found", func(t *testing.T) {
		f := newFixture(syncsvc.Options{})
		projectID := uuid.New()

		f.projectRepo.On("GetByID", ctx, projectID).Return(nil, nil).Once()

		runs, err := f.svc.ListRuns(ctx, projectID, 10)

		assert.ErrorIs(t, err, syncsvc.ErrProjectNotFound)
		assert.Nil(t, runs)
	})
}

func TestSummary_Failed(t *testing.T) {
	t.Run("Quarter Of Keywords Failing Is Tolerated", func(t *testing.T) {
		s := &syncsvc.Summary{Keywords: 4, FailedKeywords: 1}
		assert.False(t, s.Failed())
	})

	t.Run("More Than A Quarter Fails The Run", func(t *testing.T) {
		s := &syncsvc.Summary{Keywords: 4, FailedKeywords: 2}
		assert.True(t, s.Failed())
	})

	t.Run("Missing Credentials Always Fails", func(t *testing.T) {
		s := &syncsvc.Summary{MissingCredentials: true}
		assert.True(t, s.Failed())
	})
}
