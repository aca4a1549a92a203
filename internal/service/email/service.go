// Package email sends transactional mail through Resend.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"rankwatch/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type RankingChangeData struct {
	Title       string
	Name        string
	ProjectName string
	Keyword     string
	Message     string
	Position    string
	Previous    string
	Link        string
}

type WeeklySummaryItem struct {
	Keyword  string
	Position string
	Change   string
}

type WeeklySummaryData struct {
	Title       string
	Name        string
	ProjectName string
	Narrative   string
	Improved    int
	Declined    int
	Top3        int
	Items       []WeeklySummaryItem
	Link        string
}

type Service interface {
	SendRankingChangeEmail(ctx context.Context, toEmail string, data RankingChangeData) error
	SendWeeklySummaryEmail(ctx context.Context, toEmail string, data WeeklySummaryData) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFS(templateFS,
		"templates/layout.html",
		"templates/"+templateName,
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Rankwatch <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendRankingChangeEmail(ctx context.Context, toEmail string, data RankingChangeData) error {
	if data.Link == "" {
		data.Link = fmt.Sprintf("https://%s/projects", s.config.Domain)
	}
	return s.sendEmail(toEmail, data.Title+" - Rankwatch", "ranking_change.html", data)
}

func (s *service) SendWeeklySummaryEmail(ctx context.Context, toEmail string, data WeeklySummaryData) error {
	if data.Link == "" {
		data.Link = fmt.Sprintf("https://%s/projects", s.config.Domain)
	}
	subject := fmt.Sprintf("Weekly SEO Summary: %s - Rankwatch", data.ProjectName)
	return s.sendEmail(toEmail, subject, "weekly_summary.html", data)
}
