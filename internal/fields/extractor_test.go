package fields

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/fmuoria/hr-inbox-scanner/internal/models"
)

func newTestExtractor() *Extractor {
	e := New(zap.NewNop())
	e.now = func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
	return e
}

func TestExtractFields_FromResumeText(t *testing.T) {
	e := newTestExtractor()

	text := strings.Join([]string{
		"John Smith",
		"Contact: jsmith@example.org",
		"Phone: (555) 123-4567",
		"I have 5 years of experience in software development.",
		"Skilled in Python, Java and SQL. Comfortable with Docker.",
		"Bachelor of Science in Computer Science.",
		"Location: Austin, Texas",
	}, "\n")

	msg := models.RawMessage{
		ID:      "m1",
		Sender:  "John Doe <john.doe@example.org>",
		Subject: "Application for Software Engineer",
	}

	record := e.ExtractFields(text, msg)

	assert.Equal(t, "John Doe", record.Name) // sender display name wins
	assert.Equal(t, "john.doe@example.org", record.Email)
	assert.Equal(t, "(555) 123-4567", record.Phone)
	assert.Equal(t, "Austin, Texas", record.Location)
	assert.Equal(t, 5, record.YearsOfExperience)
	assert.Equal(t, "Software Engineer", record.AppliedPosition)
	assert.Equal(t, []string{"Python", "Java", "SQL", "Docker"}, record.Skills)
	assert.Equal(t, "Bachelor of Science in Computer Science.", record.Education)
	assert.Equal(t, "resume", record.ExtractionSource)
	assert.Equal(t, len(text), record.RawTextLength)
}

func TestExtractFields_EmptyInputs(t *testing.T) {
	e := newTestExtractor()

	record := e.ExtractFields("", models.RawMessage{ID: "m2"})

	assert.Equal(t, "Unknown", record.Name)
	assert.Equal(t, "General Position", record.AppliedPosition)
	assert.Equal(t, "email", record.ExtractionSource)
	assert.Zero(t, record.RawTextLength)
	assert.Empty(t, record.Email)
	assert.Empty(t, record.Skills)
	assert.Zero(t, record.YearsOfExperience)
}

func TestExtractFields_BodyFallback(t *testing.T) {
	e := newTestExtractor()

	msg := models.RawMessage{
		ID:      "m3",
		Sender:  "noreply@jobs.example.org",
		Subject: "Interested in the analyst role",
		Body:    "Jane Smith\nI am applying with 3 years of experience in SQL.",
	}

	record := e.ExtractFields("", msg)

	assert.Equal(t, "email", record.ExtractionSource)
	// Sender is a bare address, so the name comes from the body.
	assert.Equal(t, "Jane Smith", record.Name)
	assert.Equal(t, "noreply@jobs.example.org", record.Email)
	assert.Equal(t, "Analyst", record.AppliedPosition)
	assert.Equal(t, 3, record.YearsOfExperience)
	assert.Equal(t, []string{"SQL"}, record.Skills)
}

func TestExtractExperience(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"Explicit years of experience", "I have 5 years of experience in development.", 5},
		{"Plus suffix", "10+ years of experience leading teams.", 10},
		{"Largest repeated mention wins", "8 years of experience overall. 3 years of experience with Go.", 8},
		{"Experience then years ordering", "Experience: roughly 7 years at two companies.", 7},
		{"Stated years capped", "60 years of experience.", MaxYearsOfExperience},
		{"Date range fallback", "Acme Corp, 2015 to 2020. Beta Ltd, 2021 onward.", 9},
		{"Single year is not a range", "Graduated in 2019.", 0},
		{"Implausible years ignored", "Born 1975, ISO 9001 certified.", 0},
		{"No signal", "Enthusiastic self-starter.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.extractExperience(tt.text), "text: %q", tt.text)
		})
	}
}

func TestExtractName(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name   string
		text   string
		sender string
		want   string
	}{
		{"Display name from sender", "", "John Doe <john@example.org>", "John Doe"},
		{"Bare address rejected", "Jane Smith\nEngineer", "jane@example.org", "Jane Smith"},
		{"Noreply rejected", "Jane Smith\nEngineer", "noreply <bot@example.org>", "Jane Smith"},
		{"Name line near the top", "RESUME\nMary Major\nEngineer", "", "Mary Major"},
		{"Loose scan of whole text", strings.Repeat("filler line\n", 6) + "Bob Jones", "", "Bob Jones"},
		{"Nothing name-shaped", "QUALIFICATIONS\n1. something", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.extractName(tt.text, tt.sender))
		})
	}
}

func TestExtractPosition(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{"Known keyword", "Application for Software Engineer", "Software Engineer"},
		{"Keyword anywhere in subject", "Senior developer opening", "Developer"},
		{"Template capture without keyword", "Application for zookeeper", "Zookeeper"},
		{"No signal", "Hello", "General Position"},
		{"Empty subject", "", "General Position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.extractPosition(tt.subject))
		})
	}
}

func TestExtractLocation(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"Labeled location", "Phone: 5551234567\nLocation: Austin, Texas", "Austin, Texas"},
		{"Zip code pattern", "San Francisco, CA 94105", "San Francisco"},
		{"Indicator fallback", "Based in: Nairobi", "Nairobi"},
		{"No location", "Nothing to see here.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.extractLocation(tt.text))
		})
	}
}

func TestExtractSkills_OrderAndCap(t *testing.T) {
	text := "Worked with docker, react, java and python every week."
	// Vocabulary order, not text order.
	assert.Equal(t, []string{"Python", "Java", "React", "Docker"}, extractSkills(text))

	// Matching is plain case-insensitive substring over the vocabulary, so
	// short terms like "AI" also hit inside ordinary words.
	assert.Equal(t, []string{"AI"}, extractSkills("Writes reports daily."))

	dense := "python java javascript c++ c# sql html css react angular node.js django"
	got := extractSkills(dense)
	assert.Len(t, got, 10)
	assert.Equal(t, []string{
		"Python", "Java", "JavaScript", "C++", "C#",
		"SQL", "HTML", "CSS", "React", "Angular",
	}, got)
}

func TestExtractEducation(t *testing.T) {
	text := "Seasoned engineer. Holds a Master of Science from State University. Ten years in industry."
	assert.Equal(t, "Holds a Master of Science from State University.", extractEducation(text))

	assert.Empty(t, extractEducation("No schooling mentioned here."))

	long := "University of " + strings.Repeat("Extremely ", 15) + "Long Names."
	got := extractEducation(long)
	assert.Len(t, []rune(got), maxEducationLength)
	assert.True(t, strings.HasPrefix(long, got))
}
