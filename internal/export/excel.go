package export

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"clausesync/internal/domain"
)

const reportSheet = "Contract Review"

// ReportXLSX renders a completed review as an XLSX workbook. The layout
// mirrors the on-screen report: a summary block, the three risk buckets,
// compliance fields, key clauses, and any processing warnings.
func ReportXLSX(review *domain.Review) ([]byte, error) {
	if len(review.Report) == 0 {
		return nil, domain.ErrReviewNotParsed
	}

	var report domain.Report
	if err := json.Unmarshal(review.Report, &report); err != nil {
		return nil, fmt.Errorf("decoding stored report: %w", err)
	}

	var warnings []domain.Warning
	if len(review.Warnings) > 0 {
		if err := json.Unmarshal(review.Warnings, &warnings); err != nil {
			return nil, fmt.Errorf("decoding stored warnings: %w", err)
		}
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	row := 1
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(reportSheet, cell, v)
	}

	write(1, "Contract")
	write(2, review.ContractName)
	row++
	write(1, "Overall Risk")
	write(2, string(review.RiskLevel))
	row++
	if review.CompletedAt != nil {
		write(1, "Completed At")
		write(2, review.CompletedAt.Format("2006-01-02 15:04:05 UTC"))
		row++
	}
	row++

	writeClauseSection := func(title string, entries []domain.ClauseEntry) {
		write(1, title)
		row++
		if len(entries) == 0 {
			write(1, "None identified")
			row++
		}
		for _, entry := range entries {
			name := entry.Text
			if name == "" {
				name = entry.ClauseName
			}
			write(1, name)
			if entry.Description != "" {
				write(2, entry.Description)
			}
			row++
		}
		row++
	}

	writeClauseSection("High Risk Clauses", report.RiskAnalysis.HighRiskClauses)
	writeClauseSection("Medium Risk Clauses", report.RiskAnalysis.MediumRiskClauses)
	writeClauseSection("Low Risk Clauses", report.RiskAnalysis.LowRiskClauses)

	write(1, "Compliance")
	row++
	for _, field := range []struct {
		name   string
		status domain.ComplianceStatus
	}{
		{"GDPR", report.Compliance.GDPR},
		{"Data Protection", report.Compliance.DataProtection},
		{"Intellectual Property", report.Compliance.IntellectualProperty},
	} {
		write(1, field.name)
		write(2, string(field.status))
		row++
	}
	row++

	writeClauseSection("Key Clauses", report.KeyClauses)

	if len(warnings) > 0 {
		write(1, "Processing Warnings")
		row++
		for _, w := range warnings {
			if w.Chunk > 0 {
				write(1, fmt.Sprintf("%s (chunk %d)", w.Stage, w.Chunk))
			} else {
				write(1, w.Stage)
			}
			write(2, w.Message)
			row++
		}
	}

	_ = f.SetColWidth(reportSheet, "A", "A", 48)
	_ = f.SetColWidth(reportSheet, "B", "B", 72)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
