package ingestion

import (
	"path/filepath"
	"strings"
)

// ApplicationKeywords identify job applications. A single subject hit is a
// strong signal; body text is noisier and needs corroboration.
var ApplicationKeywords = []string{
	"application", "apply", "resume", "cv", "position",
	"job", "vacancy", "opportunity", "interested", "candidate",
}

// ResumeExtensions is the attachment allow-list.
var ResumeExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// MinBodyKeywordMatches is the body-text corroboration threshold.
const MinBodyKeywordMatches = 2

// IsApplication decides whether a message looks like a job application.
// Tuned for recall over precision: a false positive just adds noise to the
// review sheet, a false negative silently drops an applicant.
func IsApplication(subject, body string) bool {
	lowerSubject := strings.ToLower(subject)
	for _, keyword := range ApplicationKeywords {
		if strings.Contains(lowerSubject, keyword) {
			return true
		}
	}

	lowerBody := strings.ToLower(body)
	matches := 0
	for _, keyword := range ApplicationKeywords {
		if strings.Contains(lowerBody, keyword) {
			matches++
		}
	}

	return matches >= MinBodyKeywordMatches
}

// IsResumeAttachment reports whether a filename is on the resume
// extension allow-list.
func IsResumeAttachment(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range ResumeExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
