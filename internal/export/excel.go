package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fmuoria/hr-inbox-scanner/internal/models"
)

const (
	candidatesSheet = "Candidates"
	summarySheet    = "Summary"
)

// candidateHeaders defines the Candidates sheet columns. LoadCandidates
// parses rows back by these positions.
var candidateHeaders = []string{
	"ID", "Name", "Email", "Phone", "Location",
	"Years of Experience", "Experience Level", "Applied Position",
	"Skills", "Education", "Overall Score",
	"Experience Points", "Skills Points", "Education Points", "Contact Points",
	"Contact Complete", "Extraction Source", "Processing Date",
}

// SaveCandidates writes candidate records and their aggregate summary to
// an Excel workbook with a styled, score-color-coded Candidates sheet.
func SaveCandidates(records []models.CandidateRecord, summary models.RatingSummary, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f.SetSheetName("Sheet1", candidatesSheet)
	f.NewSheet(summarySheet)

	if err := createCandidatesSheet(f, records); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}
	if err := createSummarySheet(f, summary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	// Direct save with a buffer-write fallback.
	if err := f.SaveAs(outputPath); err != nil {
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return fmt.Errorf("failed to save Excel file: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return fmt.Errorf("failed to save Excel file: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}

	return nil
}

// createCandidatesSheet fills one row per candidate record.
func createCandidatesSheet(f *excelize.File, records []models.CandidateRecord) error {
	f.SetColWidth(candidatesSheet, "A", "A", 6)
	f.SetColWidth(candidatesSheet, "B", "E", 22)
	f.SetColWidth(candidatesSheet, "F", "H", 18)
	f.SetColWidth(candidatesSheet, "I", "J", 40)
	f.SetColWidth(candidatesSheet, "K", "R", 14)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for col, header := range candidateHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(candidatesSheet, cell, header)
		f.SetCellStyle(candidatesSheet, cell, cell, headerStyle)
	}

	strongStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	promisingStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
	})
	weakStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})

	processedAt := time.Now().Format("2006-01-02 15:04:05")

	for i, rec := range records {
		row := i + 2

		contactComplete := "No"
		if rec.Email != "" && rec.Phone != "" {
			contactComplete = "Yes"
		}

		values := []interface{}{
			i + 1, rec.Name, rec.Email, rec.Phone, rec.Location,
			rec.YearsOfExperience, rec.ExperienceLevel, rec.AppliedPosition,
			strings.Join(rec.Skills, ", "), rec.Education, rec.OverallScore,
			rec.Breakdown.ExperiencePoints, rec.Breakdown.SkillsPoints,
			rec.Breakdown.EducationPoints, rec.Breakdown.ContactPoints,
			contactComplete, rec.ExtractionSource, processedAt,
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(candidatesSheet, cell, value)
		}

		var style int
		switch {
		case rec.OverallScore >= 70:
			style = strongStyle
		case rec.OverallScore >= 40:
			style = promisingStyle
		default:
			style = weakStyle
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(values), row)
		f.SetCellStyle(candidatesSheet, start, end, style)
	}

	return nil
}

// createSummarySheet writes the aggregate statistics.
func createSummarySheet(f *excelize.File, summary models.RatingSummary) error {
	f.SetColWidth(summarySheet, "A", "A", 30)
	f.SetColWidth(summarySheet, "B", "B", 15)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	rows := []struct {
		label string
		value interface{}
	}{
		{"Metric", "Value"},
		{"Total Candidates", summary.TotalCandidates},
		{"Average Score", fmt.Sprintf("%.1f", summary.AverageScore)},
		{"", nil},
		{"Experience Level Distribution", ""},
		{"Junior (0-2 years)", summary.LevelCounts["Junior"]},
		{"Mid-level (2-5 years)", summary.LevelCounts["Mid-level"]},
		{"Senior (5+ years)", summary.LevelCounts["Senior"]},
		{"", nil},
		{"Percentage Distribution", ""},
		{"Junior %", fmt.Sprintf("%.1f%%", summary.LevelPercentages["Junior"])},
		{"Mid-level %", fmt.Sprintf("%.1f%%", summary.LevelPercentages["Mid-level"])},
		{"Senior %", fmt.Sprintf("%.1f%%", summary.LevelPercentages["Senior"])},
	}

	for i, r := range rows {
		rowNum := i + 1
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", rowNum), r.label)
		if r.value != nil {
			f.SetCellValue(summarySheet, fmt.Sprintf("B%d", rowNum), r.value)
		}
	}

	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)

	return nil
}

// LoadCandidates reads previously saved records back from a workbook so a
// new scan can be appended. A missing file yields no records.
func LoadCandidates(path string) ([]models.CandidateRecord, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open existing workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(candidatesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	records := make([]models.CandidateRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, candidateFromRow(row))
	}

	return records, nil
}

// candidateFromRow rebuilds a record from a sheet row, tolerating short
// rows and unparseable numbers.
func candidateFromRow(row []string) models.CandidateRecord {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	num := func(i int) int {
		n, _ := strconv.Atoi(cell(i))
		return n
	}

	var skills []string
	if s := cell(8); s != "" {
		skills = strings.Split(s, ", ")
	}

	return models.CandidateRecord{
		Name:              cell(1),
		Email:             cell(2),
		Phone:             cell(3),
		Location:          cell(4),
		YearsOfExperience: num(5),
		ExperienceLevel:   cell(6),
		AppliedPosition:   cell(7),
		Skills:            skills,
		Education:         cell(9),
		OverallScore:      num(10),
		Breakdown: models.RatingBreakdown{
			ExperiencePoints: num(11),
			SkillsPoints:     num(12),
			EducationPoints:  num(13),
			ContactPoints:    num(14),
		},
		ExtractionSource: cell(16),
	}
}

// MergeCandidates combines existing and new records, dropping duplicates
// by lowercased email. Records without an email are always kept.
func MergeCandidates(existing, incoming []models.CandidateRecord) []models.CandidateRecord {
	merged := make([]models.CandidateRecord, 0, len(existing)+len(incoming))
	seen := make(map[string]bool)

	for _, rec := range append(append([]models.CandidateRecord{}, existing...), incoming...) {
		email := strings.ToLower(rec.Email)
		if email != "" {
			if seen[email] {
				continue
			}
			seen[email] = true
		}
		merged = append(merged, rec)
	}

	return merged
}
