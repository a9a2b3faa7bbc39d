package domain

// MediaType represents the declared type of an uploaded contract.
type MediaType string

const (
	MediaTypePDF  MediaType = "pdf"
	MediaTypeDoc  MediaType = "doc"
	MediaTypeText MediaType = "text"
)

// AllowedExtensions maps file extensions (without dot) to MediaType.
var AllowedExtensions = map[string]MediaType{
	"pdf": MediaTypePDF,
	"doc": MediaTypeDoc,
	"txt": MediaTypeText,
}

// ContentTypes maps MediaType to the MIME content type used for archival.
var ContentTypes = map[MediaType]string{
	MediaTypePDF:  "application/pdf",
	MediaTypeDoc:  "application/msword",
	MediaTypeText: "text/plain",
}

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ReviewStatus represents the lifecycle of a contract review.
type ReviewStatus string

const (
	ReviewStatusPending    ReviewStatus = "pending"
	ReviewStatusProcessing ReviewStatus = "processing"
	ReviewStatusCompleted  ReviewStatus = "completed"
	ReviewStatusFailed     ReviewStatus = "failed"
)

// RiskLevel is the overall risk classification of a reviewed contract,
// derived from the highest non-empty risk bucket of its report.
type RiskLevel string

const (
	RiskLevelHigh    RiskLevel = "high"
	RiskLevelMedium  RiskLevel = "medium"
	RiskLevelLow     RiskLevel = "low"
	RiskLevelUnknown RiskLevel = "unknown"
)

// ComplianceStatus is the two-valued compliance verdict for a dimension.
type ComplianceStatus string

const (
	Compliant    ComplianceStatus = "Compliant"
	NonCompliant ComplianceStatus = "Non-compliant"
)
