package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clausesync/internal/domain"
)

func TestMerge_NoResults_DefaultReport(t *testing.T) {
	report, warnings := Merge(nil)

	require.NotNil(t, report)
	assert.Empty(t, warnings)
	assert.Empty(t, report.RiskAnalysis.HighRiskClauses)
	assert.Empty(t, report.RiskAnalysis.MediumRiskClauses)
	assert.Empty(t, report.RiskAnalysis.LowRiskClauses)
	assert.Empty(t, report.KeyClauses)
	assert.Equal(t, domain.Compliant, report.Compliance.GDPR)
	assert.Equal(t, domain.Compliant, report.Compliance.DataProtection)
	assert.Equal(t, domain.Compliant, report.Compliance.IntellectualProperty)
}

func TestMerge_AppendsClauseLists(t *testing.T) {
	report, warnings := Merge([]ChunkResult{
		{Chunk: 1, Text: `{"risk_analysis":{"high_risk_clauses":["Unlimited liability"],"low_risk_clauses":["Notices"]},"key_clauses":[{"clause_name":"Termination","description":"30 days"}]}`},
		{Chunk: 2, Text: `{"risk_analysis":{"high_risk_clauses":["Unilateral renewal"]},"key_clauses":["Governing law"]}`},
	})

	require.Empty(t, warnings)
	require.Len(t, report.RiskAnalysis.HighRiskClauses, 2)
	assert.Equal(t, "Unlimited liability", report.RiskAnalysis.HighRiskClauses[0].Text)
	assert.Equal(t, "Unilateral renewal", report.RiskAnalysis.HighRiskClauses[1].Text)
	require.Len(t, report.RiskAnalysis.LowRiskClauses, 1)
	require.Len(t, report.KeyClauses, 2)
	assert.Equal(t, "Termination", report.KeyClauses[0].ClauseName)
	assert.Equal(t, "Governing law", report.KeyClauses[1].Text)
}

func TestMerge_ComplianceDowngradeIsMonotonic(t *testing.T) {
	// Non-compliant first, Compliant afterwards: the downgrade must stick.
	report, _ := Merge([]ChunkResult{
		{Chunk: 1, Text: `{"compliance":{"gdpr":"Non-compliant"}}`},
		{Chunk: 2, Text: `{"compliance":{"gdpr":"Compliant"}}`},
	})
	assert.Equal(t, domain.NonCompliant, report.Compliance.GDPR)

	// And in the other order.
	report, _ = Merge([]ChunkResult{
		{Chunk: 1, Text: `{"compliance":{"gdpr":"Compliant"}}`},
		{Chunk: 2, Text: `{"compliance":{"gdpr":"Non-compliant"}}`},
	})
	assert.Equal(t, domain.NonCompliant, report.Compliance.GDPR)
}

func TestMerge_UnrecognizedComplianceValueIgnored(t *testing.T) {
	report, warnings := Merge([]ChunkResult{
		{Chunk: 1, Text: `{"compliance":{"gdpr":"non-compliant","data_protection":"Unknown"}}`},
	})

	assert.Empty(t, warnings)
	// Only the exact "Non-compliant" spelling downgrades.
	assert.Equal(t, domain.Compliant, report.Compliance.GDPR)
	assert.Equal(t, domain.Compliant, report.Compliance.DataProtection)
}

func TestMerge_MalformedReplySkippedWithWarning(t *testing.T) {
	report, warnings := Merge([]ChunkResult{
		{Chunk: 1, Text: `{"risk_analysis":{"high_risk_clauses":["A"]}}`},
		{Chunk: 2, Text: `I could not produce JSON, sorry.`},
		{Chunk: 3, Text: `{"risk_analysis":{"high_risk_clauses":["B"]}}`},
	})

	require.Len(t, warnings, 1)
	assert.Equal(t, "merge", warnings[0].Stage)
	assert.Equal(t, 2, warnings[0].Chunk)

	require.Len(t, report.RiskAnalysis.HighRiskClauses, 2)
	assert.Equal(t, "A", report.RiskAnalysis.HighRiskClauses[0].Text)
	assert.Equal(t, "B", report.RiskAnalysis.HighRiskClauses[1].Text)
}

func TestMerge_AllMalformed_DefaultReportWithWarnings(t *testing.T) {
	report, warnings := Merge([]ChunkResult{
		{Chunk: 1, Text: `not json`},
		{Chunk: 2, Text: `also not json`},
	})

	assert.Len(t, warnings, 2)
	assert.Empty(t, report.RiskAnalysis.HighRiskClauses)
	assert.Equal(t, domain.Compliant, report.Compliance.GDPR)
}

func TestMerge_AbsentFieldsLeaveAggregateUntouched(t *testing.T) {
	report, warnings := Merge([]ChunkResult{
		{Chunk: 1, Text: `{}`},
	})

	assert.Empty(t, warnings)
	assert.Empty(t, report.RiskAnalysis.HighRiskClauses)
	assert.Empty(t, report.KeyClauses)
	assert.Equal(t, domain.Compliant, report.Compliance.IntellectualProperty)
}
