package domain

import "encoding/json"

// Report is the aggregate contract analysis returned to the caller. Its JSON
// shape doubles as the schema given to the model, so chunk replies can be
// folded into it directly.
type Report struct {
	RiskAnalysis RiskAnalysis  `json:"risk_analysis"`
	Compliance   Compliance    `json:"compliance"`
	KeyClauses   []ClauseEntry `json:"key_clauses"`
}

// RiskAnalysis buckets clauses by risk level.
type RiskAnalysis struct {
	HighRiskClauses   []ClauseEntry `json:"high_risk_clauses"`
	MediumRiskClauses []ClauseEntry `json:"medium_risk_clauses"`
	LowRiskClauses    []ClauseEntry `json:"low_risk_clauses"`
}

// Compliance holds the verdict for each checked dimension. Values only ever
// move from Compliant to NonCompliant during a merge, never back.
type Compliance struct {
	GDPR                 ComplianceStatus `json:"gdpr"`
	DataProtection       ComplianceStatus `json:"data_protection"`
	IntellectualProperty ComplianceStatus `json:"intellectual_property"`
}

// ClauseEntry is a single clause finding. The model may return it either as
// an object with clause_name/description or as a bare string; both forms are
// accepted and round-tripped.
type ClauseEntry struct {
	ClauseName  string `json:"clause_name,omitempty"`
	Description string `json:"description,omitempty"`
	Text        string `json:"-"`
}

func (e *ClauseEntry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Text)
	}
	type alias ClauseEntry
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = ClauseEntry(a)
	return nil
}

func (e ClauseEntry) MarshalJSON() ([]byte, error) {
	if e.Text != "" && e.ClauseName == "" && e.Description == "" {
		return json.Marshal(e.Text)
	}
	type alias ClauseEntry
	return json.Marshal(alias(e))
}

// Label renders the entry for human-readable output (export, email).
func (e ClauseEntry) Label() string {
	if e.Text != "" {
		return e.Text
	}
	if e.Description == "" {
		return e.ClauseName
	}
	return e.ClauseName + ": " + e.Description
}

// NewReport returns the default report: empty clause lists and every
// compliance dimension Compliant.
func NewReport() *Report {
	return &Report{
		RiskAnalysis: RiskAnalysis{
			HighRiskClauses:   []ClauseEntry{},
			MediumRiskClauses: []ClauseEntry{},
			LowRiskClauses:    []ClauseEntry{},
		},
		Compliance: Compliance{
			GDPR:                 Compliant,
			DataProtection:       Compliant,
			IntellectualProperty: Compliant,
		},
		KeyClauses: []ClauseEntry{},
	}
}

// OverallRisk derives the contract-level risk from the highest non-empty
// risk bucket.
func (r *Report) OverallRisk() RiskLevel {
	switch {
	case len(r.RiskAnalysis.HighRiskClauses) > 0:
		return RiskLevelHigh
	case len(r.RiskAnalysis.MediumRiskClauses) > 0:
		return RiskLevelMedium
	case len(r.RiskAnalysis.LowRiskClauses) > 0:
		return RiskLevelLow
	default:
		return RiskLevelUnknown
	}
}
