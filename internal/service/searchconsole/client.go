// Package searchconsole talks to the search-analytics provider.
package searchconsole

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rankwatch/internal/domain"
)

var (
	ErrMissingCredentials  = errors.New("search console credentials missing or invalid")
	ErrProviderUnavailable = errors.New("search console provider unavailable")
)

// Fetcher returns one observation per requested query for a date window.
// Queries with no impressions in the window come back with a nil position.
type Fetcher interface {
	FetchChunk(ctx context.Context, project *domain.Project, queries []string, window domain.DateRange) ([]domain.Observation, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

const maxAttempts = 3

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type queryRequest struct {
	StartDate             string        `json:"startDate"`
	EndDate               string        `json:"endDate"`
	Dimensions            []string      `json:"dimensions"`
	DimensionFilterGroups []filterGroup `json:"dimensionFilterGroups"`
	RowLimit              int           `json:"rowLimit"`
}

type filterGroup struct {
	GroupType string   `json:"groupType"`
	Filters   []filter `json:"filters"`
}

type filter struct {
	Dimension  string `json:"dimension"`
	Operator   string `json:"operator"`
	Expression string `json:"expression"`
}

type queryResponse struct {
	Rows []struct {
		Keys        []string `json:"keys"`
		Clicks      float64  `json:"clicks"`
		Impressions float64  `json:"impressions"`
		CTR         float64  `json:"ctr"`
		Position    float64  `json:"position"`
	} `json:"rows"`
}

// FetchChunk issues one provider request for a chunk of queries. Every
// requested query yields an observation; queries the provider did not report
// come back with a nil position.
func (c *Client) FetchChunk(ctx context.Context, project *domain.Project, queries []string, window domain.DateRange) ([]domain.Observation, error) {
	if !project.HasCredentials() {
		return nil, ErrMissingCredentials
	}

	filters := make([]filter, 0, len(queries))
	for _, q := range queries {
		filters = append(filters, filter{Dimension: "query", Operator: "equals", Expression: q})
	}

	reqBody := queryRequest{
		StartDate:             window.From.Format("2006-01-02"),
		EndDate:               window.To.Format("2006-01-02"),
		Dimensions:            []string{"query"},
		DimensionFilterGroups: []filterGroup{{GroupType: "or", Filters: filters}},
		RowLimit:              len(queries),
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode provider request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/sites/%s/searchAnalytics/query",
		c.baseURL, url.PathEscape(project.SiteURL))

	resp, err := c.do(ctx, endpoint, *project.SearchConsoleToken, body)
	if err != nil {
		return nil, err
	}

	byQuery := make(map[string]domain.Observation, len(resp.Rows))
	for _, row := range resp.Rows {
		if len(row.Keys) == 0 {
			continue
		}
		pos := row.Position
		byQuery[row.Keys[0]] = domain.Observation{
			Query:       row.Keys[0],
			Position:    &pos,
			Clicks:      int(row.Clicks),
			Impressions: int(row.Impressions),
			CTR:         row.CTR,
		}
	}

	observations := make([]domain.Observation, 0, len(queries))
	for _, q := range queries {
		if obs, ok := byQuery[q]; ok {
			observations = append(observations, obs)
			continue
		}
		observations = append(observations, domain.Observation{Query: q})
	}
	return observations, nil
}

// do performs the request with a small fixed retry on network errors and
// server-side failures. Client errors are never retried.
func (c *Client) do(ctx context.Context, endpoint, token string, body []byte) (*queryResponse, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build provider request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			resp.Body.Close()
			return nil, ErrMissingCredentials
		case resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
			continue
		case resp.StatusCode != http.StatusOK:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
		}

		var decoded queryResponse
		err = json.NewDecoder(resp.Body).Decode(&decoded)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode provider response: %w", err)
		}
		return &decoded, nil
	}

	return nil, lastErr
}
