package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"clausesync/internal/config"
	"clausesync/internal/domain"
	"clausesync/internal/export"
	"clausesync/internal/extract"
	"clausesync/internal/port"
	"clausesync/internal/review"
)

// SubmitReviewInput is the DTO for contract review submissions.
type SubmitReviewInput struct {
	FileName    string
	Data        []byte
	RequestedBy uuid.UUID
}

// ReviewListResult is one page of reviews plus the total count.
type ReviewListResult struct {
	Reviews []domain.Review `json:"reviews"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

// ReviewService defines the contract review workflow.
type ReviewService interface {
	Submit(ctx context.Context, input SubmitReviewInput) (*domain.Review, error)
	GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)
	GetContractURL(ctx context.Context, review *domain.Review) (string, error)
	DownloadContract(ctx context.Context, reviewID uuid.UUID) (*ContractFile, error)
	List(ctx context.Context, page, limit int) (*ReviewListResult, error)
	ExportXLSX(ctx context.Context, reviewID uuid.UUID) ([]byte, string, error)
	Delete(ctx context.Context, reviewID uuid.UUID) error
}

// ContractFile is an archived original contract fetched back for download.
type ContractFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type reviewService struct {
	reviewRepo port.ReviewRepository
	userRepo   port.UserRepository
	storage    port.ObjectStorage
	email      port.EmailSender
	analyzer   *review.Analyzer
	cfg        *config.Config
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	reviewRepo port.ReviewRepository,
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	analyzer *review.Analyzer,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		storage:    storage,
		email:      email,
		analyzer:   analyzer,
		cfg:        cfg,
	}
}

// Submit runs the full review pipeline synchronously: validate, extract,
// analyze, persist. Archival and notification failures downgrade to warnings;
// only validation and persistence failures abort the review.
func (s *reviewService) Submit(ctx context.Context, input SubmitReviewInput) (*domain.Review, error) {
	mediaType, err := mediaTypeForFile(input.FileName)
	if err != nil {
		return nil, err
	}
	if int64(len(input.Data)) > s.cfg.Upload.MaxFileSizeKB*1024 {
		return nil, domain.ErrFileTooLarge
	}
	if s.cfg.LLM.APIKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	rev := &domain.Review{
		ID:           uuid.New(),
		ContractName: input.FileName,
		MediaType:    mediaType,
		FileSize:     int64(len(input.Data)),
		Status:       domain.ReviewStatusProcessing,
		RiskLevel:    domain.RiskLevelUnknown,
		Report:       json.RawMessage("null"),
		Warnings:     json.RawMessage("[]"),
		RequestedBy:  input.RequestedBy,
	}
	if err := s.reviewRepo.Create(ctx, rev); err != nil {
		return nil, fmt.Errorf("review.Submit: %w", err)
	}

	text, warnings, err := extract.Text(input.Data, mediaType)
	if err != nil {
		if stErr := s.reviewRepo.UpdateStatus(ctx, rev.ID, domain.ReviewStatusFailed); stErr != nil {
			log.Printf("review.Submit: marking review %s failed: %v", rev.ID, stErr)
		}
		return nil, err
	}

	if warning := s.archive(ctx, rev, input.Data); warning != nil {
		warnings = append(warnings, *warning)
	}

	report, analysisWarnings := s.analyzer.Analyze(ctx, text)
	warnings = append(warnings, analysisWarnings...)

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("review.Submit: encoding report: %w", err)
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return nil, fmt.Errorf("review.Submit: encoding warnings: %w", err)
	}

	now := time.Now().UTC()
	rev.Status = domain.ReviewStatusCompleted
	rev.RiskLevel = report.OverallRisk()
	rev.Report = reportJSON
	rev.Warnings = warningsJSON
	rev.CompletedAt = &now

	if err := s.reviewRepo.SaveResult(ctx, rev); err != nil {
		return nil, fmt.Errorf("review.Submit: %w", err)
	}

	s.notify(ctx, rev, len(warnings))
	return rev, nil
}

func (s *reviewService) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	return s.reviewRepo.GetByID(ctx, reviewID)
}

// GetContractURL returns a presigned download URL for the archived contract,
// or "" when the upload was never archived.
func (s *reviewService) GetContractURL(ctx context.Context, review *domain.Review) (string, error) {
	if s.storage == nil || review.S3Bucket == "" || review.S3Key == "" {
		return "", nil
	}
	url, err := s.storage.GetPresignedURL(ctx, review.S3Bucket, review.S3Key, s.cfg.S3.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("review.GetContractURL: %w", err)
	}
	return url, nil
}

// DownloadContract fetches the archived original upload from the contract
// archive. A review whose upload was never archived has no original to serve.
func (s *reviewService) DownloadContract(ctx context.Context, reviewID uuid.UUID) (*ContractFile, error) {
	rev, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if s.storage == nil || rev.S3Bucket == "" || rev.S3Key == "" {
		return nil, domain.ErrNotFound
	}

	data, err := s.storage.Download(ctx, rev.S3Bucket, rev.S3Key)
	if err != nil {
		return nil, fmt.Errorf("review.DownloadContract: %w", err)
	}
	return &ContractFile{
		Name:        rev.ContractName,
		ContentType: domain.ContentTypes[rev.MediaType],
		Data:        data,
	}, nil
}

// Delete removes a review and, best effort, its archived contract. A failed
// archive delete is logged but never blocks removing the row; the orphaned
// object is cleaned up by bucket lifecycle rules.
func (s *reviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	rev, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if s.storage != nil && rev.S3Bucket != "" && rev.S3Key != "" {
		if err := s.storage.Delete(ctx, rev.S3Bucket, rev.S3Key); err != nil {
			log.Printf("review.Delete: removing archived contract for %s: %v", rev.ID, err)
		}
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}

func (s *reviewService) List(ctx context.Context, page, limit int) (*ReviewListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	reviews, total, err := s.reviewRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return &ReviewListResult{
		Reviews: reviews,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// ExportXLSX renders a completed review as an XLSX workbook and returns the
// bytes plus a download filename.
func (s *reviewService) ExportXLSX(ctx context.Context, reviewID uuid.UUID) ([]byte, string, error) {
	rev, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, "", err
	}
	if rev.Status != domain.ReviewStatusCompleted {
		return nil, "", domain.ErrReviewNotParsed
	}

	data, err := export.ReportXLSX(rev)
	if err != nil {
		return nil, "", fmt.Errorf("review.ExportXLSX: %w", err)
	}

	base := strings.TrimSuffix(rev.ContractName, filepath.Ext(rev.ContractName))
	if base == "" {
		base = rev.ID.String()
	}
	return data, base + "_review.xlsx", nil
}

// archive stores the original upload in the contract archive. Failure never
// aborts the review; it comes back as a warning on the result.
func (s *reviewService) archive(ctx context.Context, rev *domain.Review, data []byte) *domain.Warning {
	if s.storage == nil || s.cfg.S3.Bucket == "" {
		return nil
	}

	key := fmt.Sprintf("contracts/%s/%s", rev.ID, rev.ContractName)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: domain.ContentTypes[rev.MediaType],
		Size:        int64(len(data)),
	})
	if err != nil {
		log.Printf("review.Submit: archiving contract %s: %v", rev.ID, err)
		return &domain.Warning{
			Stage:   "archive",
			Message: fmt.Sprintf("failed to archive contract: %v", err),
		}
	}

	rev.S3Bucket = s.cfg.S3.Bucket
	rev.S3Key = key
	return nil
}

// notify emails the requesting user that their review finished. Best effort.
func (s *reviewService) notify(ctx context.Context, rev *domain.Review, warningCount int) {
	if s.email == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, rev.RequestedBy)
	if err != nil {
		log.Printf("review.Submit: looking up requester %s for notification: %v", rev.RequestedBy, err)
		return
	}

	err = s.email.SendReviewCompleted(ctx, port.ReviewCompletedEmail{
		To:           user.Email,
		ContractName: rev.ContractName,
		RiskLevel:    rev.RiskLevel,
		WarningCount: warningCount,
	})
	if err != nil {
		log.Printf("review.Submit: sending completion email for %s: %v", rev.ID, err)
	}
}

// mediaTypeForFile resolves the declared media type from the file extension.
func mediaTypeForFile(fileName string) (domain.MediaType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	mediaType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}
	return mediaType, nil
}
