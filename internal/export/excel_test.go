package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fmuoria/hr-inbox-scanner/internal/models"
)

func sampleRecords() []models.CandidateRecord {
	return []models.CandidateRecord{
		{
			Name:              "Jane Smith",
			Email:             "jane@example.org",
			Phone:             "555-123-4567",
			Location:          "Austin, Texas",
			YearsOfExperience: 6,
			AppliedPosition:   "Software Engineer",
			Skills:            []string{"Python", "SQL", "Docker"},
			Education:         "Bachelor of Science.",
			ExperienceLevel:   "Senior",
			OverallScore:      73,
			Breakdown: models.RatingBreakdown{
				ExperiencePoints: 24,
				SkillsPoints:     9,
				EducationPoints:  15,
				ContactPoints:    15,
			},
			ExtractionSource: "resume",
		},
		{
			Name:             "Unknown",
			ExperienceLevel:  "Junior",
			ExtractionSource: "email",
		},
	}
}

func sampleSummary() models.RatingSummary {
	return models.RatingSummary{
		TotalCandidates:  2,
		LevelCounts:      map[string]int{"Junior": 1, "Mid-level": 0, "Senior": 1},
		LevelPercentages: map[string]float64{"Junior": 50, "Mid-level": 0, "Senior": 50},
		AverageScore:     36.5,
	}
}

func TestSaveCandidates_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.xlsx")

	require.NoError(t, SaveCandidates(sampleRecords(), sampleSummary(), path))

	loaded, err := LoadCandidates(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	got := loaded[0]
	assert.Equal(t, "Jane Smith", got.Name)
	assert.Equal(t, "jane@example.org", got.Email)
	assert.Equal(t, "555-123-4567", got.Phone)
	assert.Equal(t, "Austin, Texas", got.Location)
	assert.Equal(t, 6, got.YearsOfExperience)
	assert.Equal(t, "Senior", got.ExperienceLevel)
	assert.Equal(t, "Software Engineer", got.AppliedPosition)
	assert.Equal(t, []string{"Python", "SQL", "Docker"}, got.Skills)
	assert.Equal(t, "Bachelor of Science.", got.Education)
	assert.Equal(t, 73, got.OverallScore)
	assert.Equal(t, 24, got.Breakdown.ExperiencePoints)
	assert.Equal(t, 15, got.Breakdown.ContactPoints)
	assert.Equal(t, "resume", got.ExtractionSource)

	empty := loaded[1]
	assert.Equal(t, "Unknown", empty.Name)
	assert.Empty(t, empty.Skills)
	assert.Zero(t, empty.OverallScore)
	assert.Equal(t, "email", empty.ExtractionSource)
}

func TestSaveCandidates_AppendsXlsxSuffix(t *testing.T) {
	base := filepath.Join(t.TempDir(), "report")

	require.NoError(t, SaveCandidates(sampleRecords(), sampleSummary(), base))

	loaded, err := LoadCandidates(base + ".xlsx")
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestSaveCandidates_SummarySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.xlsx")
	require.NoError(t, SaveCandidates(sampleRecords(), sampleSummary(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	avg, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "36.5", avg)
}

func TestLoadCandidates_MissingFile(t *testing.T) {
	loaded, err := LoadCandidates(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadCandidates_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, SaveCandidates(nil, models.RatingSummary{}, path))

	loaded, err := LoadCandidates(path)
	assert.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestMergeCandidates(t *testing.T) {
	existing := []models.CandidateRecord{
		{Name: "Jane Smith", Email: "jane@example.org", OverallScore: 73},
		{Name: "No Email One"},
	}
	incoming := []models.CandidateRecord{
		{Name: "Jane Smith", Email: "JANE@example.org", OverallScore: 80}, // duplicate, case-insensitive
		{Name: "Bob Jones", Email: "bob@example.org"},
		{Name: "No Email Two"},
	}

	merged := MergeCandidates(existing, incoming)

	require.Len(t, merged, 4)
	// Existing records win over incoming duplicates.
	assert.Equal(t, 73, merged[0].OverallScore)
	names := make([]string, 0, len(merged))
	for _, rec := range merged {
		names = append(names, rec.Name)
	}
	assert.Equal(t, []string{"Jane Smith", "No Email One", "Bob Jones", "No Email Two"}, names)
}
