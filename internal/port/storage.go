package port

import (
	"context"
	"io"
)

// UploadInput describes an object to store.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput describes a stored object.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts the contract archive (S3 in production).
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
