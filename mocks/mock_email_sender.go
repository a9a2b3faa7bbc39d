package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clausesync/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReviewCompleted(ctx context.Context, email port.ReviewCompletedEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
