package noop

import (
	"context"
	"log"

	"clausesync/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReviewCompleted(_ context.Context, email port.ReviewCompletedEmail) error {
	log.Printf("[NOOP EMAIL] Review completed for %s: contract %q, risk level %s, %d warnings",
		email.To, email.ContractName, email.RiskLevel, email.WarningCount)
	return nil
}
