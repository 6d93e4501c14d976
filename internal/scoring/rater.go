package scoring

import (
	"go.uber.org/zap"

	"github.com/fmuoria/hr-inbox-scanner/internal/models"
)

// Experience tiers.
const (
	LevelJunior = "Junior"
	LevelMid    = "Mid-level"
	LevelSenior = "Senior"
)

// Point caps for the score components.
const (
	maxScore            = 100
	maxExperiencePoints = 40
	maxSkillsPoints     = 30
	educationPoints     = 15
	pointsPerContact    = 5
)

// experienceBand is a half-open [Min, Max) band of years.
type experienceBand struct {
	Level string
	Min   int
	Max   int
}

// experienceBands cover [0, ∞) in order; lookup takes the first match.
var experienceBands = []experienceBand{
	{LevelJunior, 0, 2},
	{LevelMid, 2, 5},
	{LevelSenior, 5, int(^uint(0) >> 1)},
}

// Rater converts extracted candidate fields into an experience tier, an
// overall score out of 100 and a per-dimension breakdown.
type Rater struct {
	logger *zap.Logger
}

// New creates a rating engine.
func New(logger *zap.Logger) *Rater {
	return &Rater{logger: logger}
}

// Rate fills in the rating fields of a record. It is pure over the base
// fields: rating an already-rated record again yields the same result.
func (r *Rater) Rate(rec *models.CandidateRecord) {
	rec.ExperienceLevel = CategorizeExperience(rec.YearsOfExperience)
	rec.Breakdown = Breakdown(*rec)
	rec.OverallScore = min(rec.Breakdown.Total(), maxScore)

	r.logger.Info("rated candidate",
		zap.String("name", rec.Name),
		zap.String("level", rec.ExperienceLevel),
		zap.Int("score", rec.OverallScore))
}

// CategorizeExperience maps years of experience onto a tier. The bands
// cover all non-negative years, so the Senior default is unreachable in
// practice but keeps the lookup total.
func CategorizeExperience(years int) string {
	for _, band := range experienceBands {
		if years >= band.Min && years < band.Max {
			return band.Level
		}
	}
	return LevelSenior
}

// Breakdown recomputes the four score components from the record's base
// fields. It always equals the addends of the overall score.
func Breakdown(rec models.CandidateRecord) models.RatingBreakdown {
	b := models.RatingBreakdown{
		SkillsPoints:  min(len(rec.Skills)*3, maxSkillsPoints),
		ContactPoints: rec.ContactFieldCount() * pointsPerContact,
	}
	if rec.YearsOfExperience > 0 {
		b.ExperiencePoints = min(rec.YearsOfExperience*4, maxExperiencePoints)
	}
	if rec.Education != "" {
		b.EducationPoints = educationPoints
	}
	return b
}

// Summary aggregates rated candidates: total, per-tier counts and
// percentages, and mean score. An empty batch yields a zero summary.
func (r *Rater) Summary(records []models.CandidateRecord) models.RatingSummary {
	if len(records) == 0 {
		return models.RatingSummary{}
	}

	counts := map[string]int{LevelJunior: 0, LevelMid: 0, LevelSenior: 0}
	total := 0
	for _, rec := range records {
		level := rec.ExperienceLevel
		if _, ok := counts[level]; !ok {
			level = LevelJunior
		}
		counts[level]++
		total += rec.OverallScore
	}

	percentages := make(map[string]float64, len(counts))
	for level, count := range counts {
		percentages[level] = float64(count) / float64(len(records)) * 100
	}

	return models.RatingSummary{
		TotalCandidates:  len(records),
		LevelCounts:      counts,
		LevelPercentages: percentages,
		AverageScore:     float64(total) / float64(len(records)),
	}
}
