package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clausesync/internal/domain"
)

// MockReviewRepo is a mock implementation of port.ReviewRepository.
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepo) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepo) List(ctx context.Context, offset, limit int) ([]domain.Review, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewRepo) SaveResult(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepo) Delete(ctx context.Context, reviewID uuid.UUID) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockReviewRepo) UpdateStatus(ctx context.Context, reviewID uuid.UUID, status domain.ReviewStatus) error {
	args := m.Called(ctx, reviewID, status)
	return args.Error(0)
}
