package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// MinValidResumeLength is the minimum text length for IsValidResume.
	MinValidResumeLength = 50
	// MinIndicatorMatches is how many resume indicators must appear.
	MinIndicatorMatches = 3
)

// resumeIndicators are terms that commonly appear in real resumes. They are
// used only by the advisory IsValidResume check.
var resumeIndicators = []string{
	"experience", "education", "skills", "work", "employment",
	"university", "college", "degree", "certification", "project",
	"responsibility", "achievement", "qualification",
}

// Extractor converts resume attachments into plain text. Extraction is
// best-effort: format-level failures degrade to empty text so the pipeline
// can fall back to the email body.
type Extractor struct {
	logger *zap.Logger
}

// New creates a text extractor.
func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the plain text of a resume file, dispatching on the file
// extension. Only .pdf, .doc, .docx and .txt are supported; anything else
// returns an error. Failures inside a supported format are logged and
// yield empty text, never an error.
func (e *Extractor) Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return strings.TrimSpace(e.extractPDF(data)), nil
	case ".doc", ".docx":
		return strings.TrimSpace(e.extractDOCX(data)), nil
	case ".txt":
		return strings.TrimSpace(e.extractTXT(data)), nil
	default:
		e.logger.Warn("unsupported resume format",
			zap.String("filename", filename),
			zap.String("extension", ext))
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

// IsValidResume reports whether extracted text looks like an actual resume.
// It is advisory: the pipeline itself does not gate on it.
func IsValidResume(text string) bool {
	if len(strings.TrimSpace(text)) < MinValidResumeLength {
		return false
	}

	lower := strings.ToLower(text)
	matches := 0
	for _, indicator := range resumeIndicators {
		if strings.Contains(lower, indicator) {
			matches++
		}
	}

	return matches >= MinIndicatorMatches
}
