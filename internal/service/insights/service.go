// Package insights generates short narrative summaries of ranking movement
// through an OpenAI-compatible completions endpoint. It is optional: without
// configuration every call returns an empty narrative.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type WeeklyStats struct {
	ProjectName string
	Improved    int
	Declined    int
	Top3        int
	Keywords    int
}

type Service interface {
	// WeeklyNarrative returns a short paragraph describing the week's
	// movement, or an empty string when generation is unavailable.
	WeeklyNarrative(ctx context.Context, stats WeeklyStats) (string, error)
}

type service struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewService(baseURL, apiKey, model string) Service {
	if baseURL == "" || apiKey == "" {
		return &disabled{}
	}
	return &service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type disabled struct{}

func (d *disabled) WeeklyNarrative(ctx context.Context, stats WeeklyStats) (string, error) {
	return "", nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *service) WeeklyNarrative(ctx context.Context, stats WeeklyStats) (string, error) {
	prompt := fmt.Sprintf(
		"Write one short, friendly paragraph (max 3 sentences) summarizing this week's SEO results for the website %q: "+
			"%d tracked keywords, %d improved positions, %d declined, %d currently in the top 3. "+
			"Plain text only, no markdown.",
		stats.ProjectName, stats.Keywords, stats.Improved, stats.Declined, stats.Top3,
	)

	body, err := json.Marshal(chatRequest{
		Model:    s.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insights provider returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
