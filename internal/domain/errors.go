package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidEncoding     = errors.New("document is not valid UTF-8 text")
	ErrMissingAPIKey       = errors.New("completion API key is not configured")
	ErrReviewNotParsed     = errors.New("review has no report yet")
)
