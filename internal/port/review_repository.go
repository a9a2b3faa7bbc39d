package port

import (
	"context"

	"github.com/google/uuid"

	"clausesync/internal/domain"
)

// ReviewRepository persists contract reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)
	List(ctx context.Context, offset, limit int) ([]domain.Review, int, error)
	SaveResult(ctx context.Context, review *domain.Review) error
	UpdateStatus(ctx context.Context, reviewID uuid.UUID, status domain.ReviewStatus) error
	Delete(ctx context.Context, reviewID uuid.UUID) error
}
