package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Review represents one contract review request and its outcome.
type Review struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	ContractName string          `db:"contract_name" json:"contract_name"`
	MediaType    MediaType       `db:"media_type" json:"media_type"`
	FileSize     int64           `db:"file_size" json:"file_size"`
	S3Bucket     string          `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string          `db:"s3_key" json:"s3_key"`
	Status       ReviewStatus    `db:"status" json:"status"`
	RiskLevel    RiskLevel       `db:"risk_level" json:"risk_level"`
	Report       json.RawMessage `db:"report" json:"report"`
	Warnings     json.RawMessage `db:"warnings" json:"warnings"`
	RequestedBy  uuid.UUID       `db:"requested_by" json:"requested_by"`
	CompletedAt  *time.Time      `db:"completed_at" json:"completed_at"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Warning is a non-fatal problem encountered while processing a review.
// Warnings are always surfaced to the caller; they never abort the review.
type Warning struct {
	Stage   string `json:"stage"`
	Chunk   int    `json:"chunk,omitempty"`
	Message string `json:"message"`
}
