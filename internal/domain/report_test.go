package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClauseEntry_UnmarshalObjectForm(t *testing.T) {
	var e ClauseEntry
	require.NoError(t, json.Unmarshal([]byte(`{"clause_name":"Termination","description":"30 days"}`), &e))

	assert.Equal(t, "Termination", e.ClauseName)
	assert.Equal(t, "30 days", e.Description)
	assert.Empty(t, e.Text)
	assert.Equal(t, "Termination: 30 days", e.Label())
}

func TestClauseEntry_UnmarshalStringForm(t *testing.T) {
	var e ClauseEntry
	require.NoError(t, json.Unmarshal([]byte(`"Unlimited liability clause"`), &e))

	assert.Equal(t, "Unlimited liability clause", e.Text)
	assert.Empty(t, e.ClauseName)
	assert.Equal(t, "Unlimited liability clause", e.Label())
}

func TestClauseEntry_MarshalRoundTrip(t *testing.T) {
	str := ClauseEntry{Text: "bare clause"}
	data, err := json.Marshal(str)
	require.NoError(t, err)
	assert.Equal(t, `"bare clause"`, string(data))

	obj := ClauseEntry{ClauseName: "Term", Description: "12 months"}
	data, err = json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clause_name":"Term","description":"12 months"}`, string(data))
}

func TestNewReport_Defaults(t *testing.T) {
	r := NewReport()

	assert.NotNil(t, r.RiskAnalysis.HighRiskClauses)
	assert.NotNil(t, r.RiskAnalysis.MediumRiskClauses)
	assert.NotNil(t, r.RiskAnalysis.LowRiskClauses)
	assert.NotNil(t, r.KeyClauses)
	assert.Equal(t, Compliant, r.Compliance.GDPR)
	assert.Equal(t, Compliant, r.Compliance.DataProtection)
	assert.Equal(t, Compliant, r.Compliance.IntellectualProperty)

	// The default report serializes with empty arrays, not nulls.
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"high_risk_clauses":[]`)
	assert.Contains(t, string(data), `"key_clauses":[]`)
}

func TestOverallRisk(t *testing.T) {
	r := NewReport()
	assert.Equal(t, RiskLevelUnknown, r.OverallRisk())

	r.RiskAnalysis.LowRiskClauses = append(r.RiskAnalysis.LowRiskClauses, ClauseEntry{Text: "a"})
	assert.Equal(t, RiskLevelLow, r.OverallRisk())

	r.RiskAnalysis.MediumRiskClauses = append(r.RiskAnalysis.MediumRiskClauses, ClauseEntry{Text: "b"})
	assert.Equal(t, RiskLevelMedium, r.OverallRisk())

	r.RiskAnalysis.HighRiskClauses = append(r.RiskAnalysis.HighRiskClauses, ClauseEntry{Text: "c"})
	assert.Equal(t, RiskLevelHigh, r.OverallRisk())
}
