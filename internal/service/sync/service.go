// Package sync orchestrates the batch ranking pipeline: fetch observations
// per keyword chunk, record rankings, classify transitions, and notify.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"rankwatch/internal/domain"
	"rankwatch/internal/metrics"
	"rankwatch/internal/repository"
	"rankwatch/internal/service/notifier"
	"rankwatch/internal/service/ranking"
	"rankwatch/internal/service/searchconsole"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrSyncInProgress  = errors.New("a sync is already running for this project")
)

// Summary is the outcome of one project's sync run.
type Summary struct {
	ProjectID          uuid.UUID `json:"project_id"`
	ProjectName        string    `json:"project_name"`
	Keywords           int       `json:"keywords"`
	Recorded           int       `json:"recorded"`
	Events             int       `json:"events"`
	Notified           int       `json:"notified"`
	FailedChunks       int       `json:"failed_chunks"`
	FailedKeywords     int       `json:"failed_keywords"`
	MissingCredentials bool      `json:"missing_credentials"`
}

// Failed reports whether the run should count against the process exit code:
// missing credentials, or more than a quarter of keywords failing.
func (s *Summary) Failed() bool {
	if s.MissingCredentials {
		return true
	}
	return s.Keywords > 0 && s.FailedKeywords*4 > s.Keywords
}

type Service interface {
	SyncProject(ctx context.Context, projectID uuid.UUID, window domain.DateRange) (*Summary, error)
	SyncAll(ctx context.Context, window domain.DateRange) ([]Summary, error)
	ListRuns(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.SyncRun, error)
	SendWeeklySummary(ctx context.Context, projectID uuid.UUID) error
	SendAllWeeklySummaries(ctx context.Context) error
}

type Options struct {
	ChunkSize  int
	ChunkDelay time.Duration
	LockTTL    time.Duration
}

type service struct {
	projectRepo repository.ProjectRepository
	keywordRepo repository.KeywordRepository
	rankingRepo repository.RankingRepository
	syncRunRepo repository.SyncRunRepository
	rankingSvc  ranking.Service
	notifierSvc notifier.Service
	fetcher     searchconsole.Fetcher
	weekly      *weeklyMailer
	redis       *redis.Client
	opts        Options
	now         func() time.Time
	sleep       func(time.Duration)
}

func NewService(
	repos *repository.Repositories,
	rankingSvc ranking.Service,
	notifierSvc notifier.Service,
	fetcher searchconsole.Fetcher,
	weekly *weeklyMailer,
	redisClient *redis.Client,
	opts Options,
) Service {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 50
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 15 * time.Minute
	}
	return &service{
		projectRepo: repos.Project,
		keywordRepo: repos.Keyword,
		rankingRepo: repos.Ranking,
		syncRunRepo: repos.SyncRun,
		rankingSvc:  rankingSvc,
		notifierSvc: notifierSvc,
		fetcher:     fetcher,
		weekly:      weekly,
		redis:       redisClient,
		opts:        opts,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

func (s *service) SyncProject(ctx context.Context, projectID uuid.UUID, window domain.DateRange) (*Summary, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	unlock, err := s.acquireLock(ctx, projectID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	summary := &Summary{ProjectID: project.ID, ProjectName: project.Name}

	if !project.HasCredentials() {
		summary.MissingCredentials = true
		metrics.SyncRuns.WithLabelValues("missing_credentials").Inc()
		return summary, searchconsole.ErrMissingCredentials
	}

	keywords, err := s.keywordRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	summary.Keywords = len(keywords)

	startedAt := s.now()

	chunks := chunkKeywords(keywords, s.opts.ChunkSize)
	for i, chunk := range chunks {
		if i > 0 && s.opts.ChunkDelay > 0 {
			s.sleep(s.opts.ChunkDelay)
		}
		s.processChunk(ctx, project, chunk, window, summary)
	}

	run := &domain.SyncRun{
		ID:             uuid.New(),
		ProjectID:      project.ID,
		DateFrom:       window.From,
		DateTo:         window.To,
		Keywords:       summary.Keywords,
		Recorded:       summary.Recorded,
		Events:         summary.Events,
		Notified:       summary.Notified,
		FailedChunks:   summary.FailedChunks,
		FailedKeywords: summary.FailedKeywords,
		StartedAt:      startedAt,
		FinishedAt:     s.now(),
	}
	if err := s.syncRunRepo.Create(ctx, run); err != nil {
		log.Printf("Failed to record sync run for project %s: %v", project.ID, err)
	}

	if summary.FailedChunks > 0 || summary.FailedKeywords > 0 {
		metrics.SyncRuns.WithLabelValues("degraded").Inc()
	} else {
		metrics.SyncRuns.WithLabelValues("ok").Inc()
	}

	return summary, nil
}

// processChunk fetches one keyword chunk and records, classifies, and
// notifies per keyword. A fetch failure skips the whole chunk; a persistence
// failure skips that keyword only.
func (s *service) processChunk(ctx context.Context, project *domain.Project, chunk []domain.Keyword, window domain.DateRange, summary *Summary) {
	queries := make([]string, 0, len(chunk))
	for _, kw := range chunk {
		queries = append(queries, kw.Text)
	}

	observations, err := s.fetcher.FetchChunk(ctx, project, queries, window)
	if err != nil {
		metrics.FetchFailures.Inc()
		summary.FailedChunks++
		summary.FailedKeywords += len(chunk)
		log.Printf("Fetch failed for project %s chunk of %d keywords: %v", project.ID, len(chunk), err)
		return
	}

	byQuery := make(map[string]domain.Observation, len(observations))
	for _, obs := range observations {
		byQuery[obs.Query] = obs
	}

	for i := range chunk {
		keyword := &chunk[i]
		obs, ok := byQuery[keyword.Text]
		if !ok {
			obs = domain.Observation{Query: keyword.Text}
		}

		recorded, err := s.rankingSvc.Record(ctx, keyword, obs)
		if err != nil {
			summary.FailedKeywords++
			log.Printf("Failed to record ranking for keyword %s: %v", keyword.ID, err)
			continue
		}
		summary.Recorded++
		metrics.RankingsRecorded.Inc()

		kind, ok := ranking.Classify(recorded)
		if !ok {
			continue
		}
		summary.Events++

		notified, err := s.notifierSvc.DispatchRankingEvent(ctx, &notifier.Event{
			Project: project,
			Keyword: keyword,
			Ranking: recorded,
			Kind:    kind,
		})
		if err != nil {
			log.Printf("Notification fan-out failed for keyword %s: %v", keyword.ID, err)
			continue
		}
		summary.Notified += notified
	}
}

func (s *service) ListRuns(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.SyncRun, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.syncRunRepo.ListByProject(ctx, projectID, limit)
}

func (s *service) SyncAll(ctx context.Context, window domain.DateRange) ([]Summary, error) {
	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(projects))
	for _, project := range projects {
		summary, err := s.SyncProject(ctx, project.ID, window)
		if err != nil {
			// Missing credentials and concurrent runs are contained to the
			// project; anything else still must not abort sibling projects.
			log.Printf("Sync failed for project %s (%s): %v", project.Name, project.ID, err)
			if summary == nil {
				summary = &Summary{ProjectID: project.ID, ProjectName: project.Name}
			}
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// acquireLock takes the per-project advisory lock guarding against a manual
// trigger racing the scheduled run. Without Redis it degrades to a no-op.
func (s *service) acquireLock(ctx context.Context, projectID uuid.UUID) (func(), error) {
	if s.redis == nil {
		return func() {}, nil
	}

	key := fmt.Sprintf("sync:lock:%s", projectID)
	ok, err := s.redis.SetNX(ctx, key, 1, s.opts.LockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !ok {
		return nil, ErrSyncInProgress
	}
	return func() {
		_ = s.redis.Del(context.Background(), key).Err()
	}, nil
}

func chunkKeywords(keywords []domain.Keyword, size int) [][]domain.Keyword {
	var chunks [][]domain.Keyword
	for start := 0; start < len(keywords); start += size {
		end := start + size
		if end > len(keywords) {
			end = len(keywords)
		}
		chunks = append(chunks, keywords[start:end])
	}
	return chunks
}
