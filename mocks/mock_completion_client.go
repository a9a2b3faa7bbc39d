package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCompletionClient is a mock implementation of port.CompletionClient.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}
