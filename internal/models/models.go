package models

// Attachment is a resume file carried by an incoming message, already
// materialized in memory.
type Attachment struct {
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
}

// RawMessage represents one incoming email as delivered by the mail
// collaborator. It is never mutated by the pipeline.
type RawMessage struct {
	ID          string       `json:"id"`
	Sender      string       `json:"sender"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments"`
}

// RatingBreakdown is the four-component decomposition of the overall score.
type RatingBreakdown struct {
	ExperiencePoints int `json:"experience_points"`
	SkillsPoints     int `json:"skills_points"`
	EducationPoints  int `json:"education_points"`
	ContactPoints    int `json:"contact_points"`
}

// Total sums all breakdown components before the 100-point clamp.
func (b RatingBreakdown) Total() int {
	return b.ExperiencePoints + b.SkillsPoints + b.EducationPoints + b.ContactPoints
}

// CandidateRecord is the structured result for one applicant. The field
// extractor creates it, the rating engine fills the rating fields, and the
// persistence collaborator receives it unchanged afterwards.
type CandidateRecord struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Location          string   `json:"location"`
	YearsOfExperience int      `json:"years_of_experience"`
	AppliedPosition   string   `json:"applied_position"`
	Skills            []string `json:"skills"`
	Education         string   `json:"education"`
	RawTextLength     int      `json:"raw_text_length"`
	ExtractionSource  string   `json:"extraction_source"` // "resume" or "email"

	// Rating fields, set by the rating engine.
	ExperienceLevel string          `json:"experience_level"`
	OverallScore    int             `json:"overall_score"`
	Breakdown       RatingBreakdown `json:"rating_breakdown"`
}

// ContactFieldCount reports how many of email, phone and location are set.
func (r CandidateRecord) ContactFieldCount() int {
	count := 0
	for _, field := range []string{r.Email, r.Phone, r.Location} {
		if field != "" {
			count++
		}
	}
	return count
}

// RatingSummary aggregates statistics over a batch of rated candidates.
type RatingSummary struct {
	TotalCandidates  int                `json:"total_candidates"`
	LevelCounts      map[string]int     `json:"level_counts"`
	LevelPercentages map[string]float64 `json:"level_percentages"`
	AverageScore     float64            `json:"average_score"`
}
