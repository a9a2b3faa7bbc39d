package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clausesync/internal/domain"
	"clausesync/internal/service"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Submit(ctx context.Context, input service.SubmitReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewService) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewService) GetContractURL(ctx context.Context, review *domain.Review) (string, error) {
	args := m.Called(ctx, review)
	return args.String(0), args.Error(1)
}

func (m *MockReviewService) DownloadContract(ctx context.Context, reviewID uuid.UUID) (*service.ContractFile, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ContractFile), args.Error(1)
}

func (m *MockReviewService) List(ctx context.Context, page, limit int) (*service.ReviewListResult, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewListResult), args.Error(1)
}

func (m *MockReviewService) ExportXLSX(ctx context.Context, reviewID uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockReviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}
