package review

import (
	"encoding/json"
	"fmt"

	"clausesync/internal/domain"
)

// ChunkResult is the raw reply returned by the completion endpoint for one
// chunk, tagged with the 1-based chunk number it came from.
type ChunkResult struct {
	Chunk int
	Text  string
}

// chunkReport is the loosely-typed per-chunk reply. Pointer and map fields
// distinguish "absent" from "empty" so absent fields leave the aggregate
// untouched.
type chunkReport struct {
	RiskAnalysis *struct {
		HighRiskClauses   []domain.ClauseEntry `json:"high_risk_clauses"`
		MediumRiskClauses []domain.ClauseEntry `json:"medium_risk_clauses"`
		LowRiskClauses    []domain.ClauseEntry `json:"low_risk_clauses"`
	} `json:"risk_analysis"`
	Compliance map[string]string    `json:"compliance"`
	KeyClauses []domain.ClauseEntry `json:"key_clauses"`
}

// Merge folds chunk replies, in order, into one report initialized to the
// all-Compliant/empty-lists default. Risk lists and key clauses append;
// compliance fields downgrade monotonically on an exact "Non-compliant" and
// never upgrade. A reply that fails to parse is skipped with a warning and
// does not affect the remaining replies.
func Merge(results []ChunkResult) (*domain.Report, []domain.Warning) {
	merged := domain.NewReport()
	var warnings []domain.Warning

	for _, result := range results {
		var data chunkReport
		if err := json.Unmarshal([]byte(result.Text), &data); err != nil {
			warnings = append(warnings, domain.Warning{
				Stage:   "merge",
				Chunk:   result.Chunk,
				Message: fmt.Sprintf("failed to parse chunk reply as JSON: %v", err),
			})
			continue
		}

		if data.RiskAnalysis != nil {
			merged.RiskAnalysis.HighRiskClauses = append(merged.RiskAnalysis.HighRiskClauses, data.RiskAnalysis.HighRiskClauses...)
			merged.RiskAnalysis.MediumRiskClauses = append(merged.RiskAnalysis.MediumRiskClauses, data.RiskAnalysis.MediumRiskClauses...)
			merged.RiskAnalysis.LowRiskClauses = append(merged.RiskAnalysis.LowRiskClauses, data.RiskAnalysis.LowRiskClauses...)
		}

		downgrade(&merged.Compliance.GDPR, data.Compliance["gdpr"])
		downgrade(&merged.Compliance.DataProtection, data.Compliance["data_protection"])
		downgrade(&merged.Compliance.IntellectualProperty, data.Compliance["intellectual_property"])

		merged.KeyClauses = append(merged.KeyClauses, data.KeyClauses...)
	}

	return merged, warnings
}

// downgrade moves a compliance field to NonCompliant on an exact match and
// leaves it alone otherwise, so the field can never move back.
func downgrade(field *domain.ComplianceStatus, value string) {
	if value == string(domain.NonCompliant) {
		*field = domain.NonCompliant
	}
}
