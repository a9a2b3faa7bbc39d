package port

import (
	"context"

	"clausesync/internal/domain"
)

// ReviewCompletedEmail is the payload for a review-completed notification.
type ReviewCompletedEmail struct {
	To           string
	ContractName string
	RiskLevel    domain.RiskLevel
	WarningCount int
}

// EmailSender delivers review notifications.
type EmailSender interface {
	SendReviewCompleted(ctx context.Context, email ReviewCompletedEmail) error
}
