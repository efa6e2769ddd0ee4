package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNewMessageEmail(ctx context.Context, toEmail, recipientName, senderName, preview string) error {
	args := m.Called(ctx, toEmail, recipientName, senderName, preview)
	return args.Error(0)
}

func (m *EmailService) SendBroadcastEmail(ctx context.Context, toEmail, recipientName, developerName, title, preview string) error {
	args := m.Called(ctx, toEmail, recipientName, developerName, title, preview)
	return args.Error(0)
}
