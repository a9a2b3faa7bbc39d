package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"clausesync/internal/domain"
	"clausesync/internal/port"
)

type reviewRepo struct {
	db *sqlx.DB
}

// NewReviewRepo creates a new PostgreSQL-backed ReviewRepository.
func NewReviewRepo(db *sqlx.DB) port.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *domain.Review) error {
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	query := `INSERT INTO reviews
		(id, contract_name, media_type, file_size, s3_bucket, s3_key,
		 status, risk_level, report, warnings, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.ContractName, review.MediaType, review.FileSize,
		review.S3Bucket, review.S3Key, review.Status, review.RiskLevel,
		review.Report, review.Warnings, review.RequestedBy,
		review.CreatedAt, review.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reviewRepo.Create: %w", err)
	}
	return nil
}

func (r *reviewRepo) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	err := r.db.GetContext(ctx, &review,
		"SELECT * FROM reviews WHERE id = $1", reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reviewRepo.GetByID: %w", err)
	}
	return &review, nil
}

func (r *reviewRepo) List(ctx context.Context, offset, limit int) ([]domain.Review, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM reviews")
	if err != nil {
		return nil, 0, fmt.Errorf("reviewRepo.List count: %w", err)
	}

	var reviews []domain.Review
	err = r.db.SelectContext(ctx, &reviews,
		`SELECT * FROM reviews
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewRepo.List: %w", err)
	}
	return reviews, total, nil
}

func (r *reviewRepo) SaveResult(ctx context.Context, review *domain.Review) error {
	review.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews
		 SET status = $1, risk_level = $2, report = $3, warnings = $4,
		     s3_bucket = $5, s3_key = $6, completed_at = $7, updated_at = $8
		 WHERE id = $9`,
		review.Status, review.RiskLevel, review.Report, review.Warnings,
		review.S3Bucket, review.S3Key, review.CompletedAt, review.UpdatedAt,
		review.ID)
	if err != nil {
		return fmt.Errorf("reviewRepo.SaveResult: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, reviewID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM reviews WHERE id = $1", reviewID)
	if err != nil {
		return fmt.Errorf("reviewRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reviewRepo) UpdateStatus(ctx context.Context, reviewID uuid.UUID, status domain.ReviewStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), reviewID)
	if err != nil {
		return fmt.Errorf("reviewRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
