package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rankwatch/internal/service/email"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendRankingChangeEmail(ctx context.Context, toEmail string, data email.RankingChangeData) error {
	args := m.Called(ctx, toEmail, data)
	return args.Error(0)
}

func (m *EmailService) SendWeeklySummaryEmail(ctx context.Context, toEmail string, data email.WeeklySummaryData) error {
	args := m.Called(ctx, toEmail, data)
	return args.Error(0)
}
