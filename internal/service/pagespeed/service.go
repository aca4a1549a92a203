// Package pagespeed measures a project's site with a PageSpeed Insights
// style API and stores the resulting snapshots.
package pagespeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/repository"
)

var ErrProjectNotFound = errors.New("project not found")

type Service interface {
	// Analyze runs a lab measurement for the project's site and persists
	// the snapshot.
	Analyze(ctx context.Context, projectID uuid.UUID, strategy domain.PageSpeedStrategy) (*domain.PageSpeedSnapshot, error)
	History(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.PageSpeedSnapshot, error)
}

type service struct {
	projectRepo   repository.ProjectRepository
	pageSpeedRepo repository.PageSpeedRepository
	baseURL       string
	apiKey        string
	httpClient    *http.Client
}

func NewService(projectRepo repository.ProjectRepository, pageSpeedRepo repository.PageSpeedRepository, baseURL, apiKey string) Service {
	return &service{
		projectRepo:   projectRepo,
		pageSpeedRepo: pageSpeedRepo,
		baseURL:       baseURL,
		apiKey:        apiKey,
		httpClient:    &http.Client{Timeout: 60 * time.Second},
	}
}

type apiResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance   category `json:"performance"`
			SEO           category `json:"seo"`
			Accessibility category `json:"accessibility"`
			BestPractices category `json:"best-practices"`
		} `json:"categories"`
		Audits struct {
			LCP audit `json:"largest-contentful-paint"`
			CLS audit `json:"cumulative-layout-shift"`
			TBT audit `json:"total-blocking-time"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

type category struct {
	Score *float64 `json:"score"`
}

type audit struct {
	NumericValue *float64 `json:"numericValue"`
}

func (s *service) Analyze(ctx context.Context, projectID uuid.UUID, strategy domain.PageSpeedStrategy) (*domain.PageSpeedSnapshot, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if !strategy.IsValid() {
		strategy = domain.StrategyMobile
	}

	params := url.Values{}
	params.Set("url", project.SiteURL)
	params.Set("strategy", string(strategy))
	params.Add("category", "performance")
	params.Add("category", "seo")
	params.Add("category", "accessibility")
	params.Add("category", "best-practices")
	if s.apiKey != "" {
		params.Set("key", s.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pagespeed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pagespeed provider returned status %d", resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode pagespeed response: %w", err)
	}

	categories := decoded.LighthouseResult.Categories
	audits := decoded.LighthouseResult.Audits

	snapshot := &domain.PageSpeedSnapshot{
		ID:                 uuid.New(),
		ProjectID:          projectID,
		Strategy:           strategy,
		PerformanceScore:   scoreOf(categories.Performance),
		SEOScore:           scoreOf(categories.SEO),
		AccessibilityScore: scoreOf(categories.Accessibility),
		BestPracticesScore: scoreOf(categories.BestPractices),
		LCPMs:              msOf(audits.LCP),
		CLS:                audits.CLS.NumericValue,
		TBTMs:              msOf(audits.TBT),
	}

	if err := s.pageSpeedRepo.Create(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *service) History(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.PageSpeedSnapshot, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return s.pageSpeedRepo.ListByProject(ctx, projectID, limit)
}

// scoreOf converts a 0-1 lighthouse category score to 0-100.
func scoreOf(c category) int {
	if c.Score == nil {
		return 0
	}
	return int(math.Round(*c.Score * 100))
}

func msOf(a audit) *int {
	if a.NumericValue == nil {
		return nil
	}
	ms := int(math.Round(*a.NumericValue))
	return &ms
}
