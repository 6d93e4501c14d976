package fields

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fmuoria/hr-inbox-scanner/internal/models"
)

// MaxYearsOfExperience caps stated or inferred experience.
const MaxYearsOfExperience = 50

// maxSkills limits the skills list to the first matches in vocabulary order.
const maxSkills = 10

// maxEducationLength truncates the captured education sentence.
const maxEducationLength = 100

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	namePattern  = regexp.MustCompile(`(?m)^([A-Z][a-z]+\s+[A-Z][a-z]+)`)
	nameLine     = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+`)

	// Explicit "N years" phrasings, tried in order; the first pattern with
	// matches wins and the largest figure it matched is authoritative.
	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`(?i)experience.*?(\d+)\+?\s*years?`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*in`),
		regexp.MustCompile(`(?i)over\s*(\d+)\s*years?`),
		regexp.MustCompile(`(?i)more\s*than\s*(\d+)\s*years?`),
	}

	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	locationSteps = []matchStep{
		group(regexp.MustCompile(`(?i)(?:Location|Address|Based|Located):\s*([A-Za-z\s,]+)`), 1),
		group(regexp.MustCompile(`(?i)([A-Za-z\s]+),\s*([A-Z]{2})\s*\d{5}`), 1),
		group(regexp.MustCompile(`(?i)([A-Za-z\s]+),\s*([A-Za-z\s]+)\s*,\s*([A-Za-z\s]+)`), 1),
	}

	positionSteps = []matchStep{
		group(regexp.MustCompile(`(?i)application for\s+(.+?)(?:\s|$)`), 1),
		group(regexp.MustCompile(`(?i)applying for\s+(.+?)(?:\s|$)`), 1),
		group(regexp.MustCompile(`(?i)position:\s*(.+?)(?:\s|$)`), 1),
		group(regexp.MustCompile(`(?i)role:\s*(.+?)(?:\s|$)`), 1),
	}

	// Sentences end at ., ! or ?; the terminator stays with the sentence.
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)

	titleCaser = cases.Title(language.English)
)

// Extractor derives a CandidateRecord from unstructured text plus message
// metadata. Extraction never fails: absent fields default to empty, zero
// or "Unknown".
type Extractor struct {
	logger *zap.Logger
	now    func() time.Time
}

// New creates a field extractor.
func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger, now: time.Now}
}

// ExtractFields builds a candidate record from resume text and the message
// it arrived with. When resumeText is empty the message body is analyzed
// instead.
func (e *Extractor) ExtractFields(resumeText string, msg models.RawMessage) models.CandidateRecord {
	text := resumeText
	source := "resume"
	if text == "" {
		text = msg.Body
		source = "email"
	}

	record := models.CandidateRecord{
		Name:             "Unknown",
		AppliedPosition:  e.extractPosition(msg.Subject),
		RawTextLength:    len(text),
		ExtractionSource: source,
	}

	if name := e.extractName(text, msg.Sender); name != "" {
		record.Name = name
	}

	if text == "" && msg.Sender == "" {
		e.logger.Warn("no text available for extraction", zap.String("message_id", msg.ID))
		return record
	}

	record.Email = e.extractEmail(text, msg.Sender)
	record.Phone = e.extractPhone(text)
	record.Location = e.extractLocation(text)
	record.YearsOfExperience = e.extractExperience(text)
	record.Skills = extractSkills(text)
	record.Education = extractEducation(text)

	e.logger.Debug("extracted candidate fields",
		zap.String("name", record.Name),
		zap.String("source", source))

	return record
}

// extractName prefers the display-name portion of the sender header, then
// a name-shaped line near the top of the text, then a loose scan of the
// whole text.
func (e *Extractor) extractName(text, sender string) string {
	if sender != "" {
		display := sender
		if idx := strings.Index(sender, "<"); idx >= 0 {
			display = sender[:idx]
		}
		display = strings.TrimSpace(display)
		if display != "" && !strings.Contains(display, "@") &&
			!strings.Contains(display, ".com") && !strings.Contains(display, "noreply") {
			return display
		}
	}

	checked := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		checked++
		if checked > 5 {
			break
		}
		if len(line) > 3 && len(line) < 50 && nameLine.MatchString(line) {
			return line
		}
	}

	if match := namePattern.FindStringSubmatch(text); match != nil {
		return match[1]
	}

	return ""
}

// extractEmail checks the sender header first, then the text.
func (e *Extractor) extractEmail(text, sender string) string {
	if match := emailPattern.FindString(sender); match != "" {
		return match
	}
	return emailPattern.FindString(text)
}

// extractPhone returns the first phone-shaped match.
func (e *Extractor) extractPhone(text string) string {
	return phonePattern.FindString(text)
}

// extractLocation tries the labeled and comma patterns in order, then
// falls back to scanning for a label prefix and taking the rest of the
// line, capped at 50 characters.
func (e *Extractor) extractLocation(text string) string {
	if loc := firstMatch(text, locationSteps); loc != "" {
		return strings.TrimSpace(loc)
	}

	for _, indicator := range locationIndicators {
		idx := strings.Index(text, indicator)
		if idx < 0 {
			continue
		}
		start := idx + len(indicator)
		rest := text[start:]
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			rest = rest[:nl]
		}
		if len(rest) > 50 {
			rest = rest[:50]
		}
		if loc := strings.TrimSpace(rest); loc != "" {
			return loc
		}
	}

	return ""
}

// extractExperience resolves years of experience. Explicit phrasings win;
// resumes often restate experience, so the largest figure a pattern finds
// is taken. Without an explicit phrase, two or more plausible 4-digit
// years imply experience since the earliest one.
func (e *Extractor) extractExperience(text string) int {
	for _, pattern := range experiencePatterns {
		matches := pattern.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		years := 0
		found := false
		for _, match := range matches {
			n, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			found = true
			if n > years {
				years = n
			}
		}
		if found {
			return min(years, MaxYearsOfExperience)
		}
	}

	currentYear := e.now().Year()
	var years []int
	for _, match := range yearPattern.FindAllString(text, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if year > 1980 && year < currentYear {
			years = append(years, year)
		}
	}
	if len(years) >= 2 {
		earliest := years[0]
		for _, year := range years[1:] {
			if year < earliest {
				earliest = year
			}
		}
		return min(currentYear-earliest, MaxYearsOfExperience)
	}

	return 0
}

// extractPosition derives the applied position from the subject line only.
// Known position keywords win over the pattern templates.
func (e *Extractor) extractPosition(subject string) string {
	lower := strings.ToLower(subject)

	for _, keyword := range positionKeywords {
		if strings.Contains(lower, keyword) {
			return titleCaser.String(keyword)
		}
	}

	if position := firstMatch(lower, positionSteps); position != "" {
		return titleCaser.String(strings.TrimSpace(position))
	}

	return "General Position"
}

// extractSkills matches the skill vocabulary against the text, preserving
// vocabulary order, up to the first ten hits.
func extractSkills(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, skill := range commonSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
			if len(found) == maxSkills {
				break
			}
		}
	}

	return found
}

// extractEducation returns the first sentence mentioning an education
// keyword, truncated to 100 characters.
func extractEducation(text string) string {
	lower := strings.ToLower(text)

	for _, keyword := range educationKeywords {
		if !strings.Contains(lower, keyword) {
			continue
		}
		for _, sentence := range sentencePattern.FindAllString(text, -1) {
			if strings.Contains(strings.ToLower(sentence), keyword) {
				sentence = strings.TrimSpace(sentence)
				runes := []rune(sentence)
				if len(runes) > maxEducationLength {
					sentence = string(runes[:maxEducationLength])
				}
				return sentence
			}
		}
	}

	return ""
}
