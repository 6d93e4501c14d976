package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fmuoria/hr-inbox-scanner/internal/models"
)

// FileHandler turns resume files in a local directory into synthetic
// messages, so a mailbox is not required for offline runs or reprocessing.
type FileHandler struct {
	dir string
}

// NewFileHandler creates a file handler for a directory of resumes.
func NewFileHandler(dir string) *FileHandler {
	return &FileHandler{dir: dir}
}

// LoadMessages reads every allow-listed file in the directory and wraps it
// as a message with a single attachment. The applicant name is taken from
// the filename convention "Name_CV.pdf" when present, else the base name.
func (fh *FileHandler) LoadMessages() ([]models.RawMessage, error) {
	entries, err := os.ReadDir(fh.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read resume directory: %w", err)
	}

	var messages []models.RawMessage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filename := entry.Name()
		if !IsResumeAttachment(filename) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(fh.dir, filename))
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
		}

		messages = append(messages, models.RawMessage{
			ID:      filename,
			Sender:  applicantFromFilename(filename),
			Subject: "Application",
			Attachments: []models.Attachment{
				{Filename: filename, Data: data},
			},
		})
	}

	return messages, nil
}

// applicantFromFilename derives a display name from the filename,
// honoring the "Name_CV.ext" convention.
func applicantFromFilename(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if idx := strings.Index(base, "_"); idx > 0 {
		base = base[:idx]
	}
	return strings.ReplaceAll(base, "-", " ")
}
