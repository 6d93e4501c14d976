package agent

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fmuoria/hr-inbox-scanner/internal/extract"
	"github.com/fmuoria/hr-inbox-scanner/internal/fields"
	"github.com/fmuoria/hr-inbox-scanner/internal/ingestion"
	"github.com/fmuoria/hr-inbox-scanner/internal/models"
	"github.com/fmuoria/hr-inbox-scanner/internal/scoring"
)

// Scanner orchestrates the message-to-candidate pipeline: classify the
// message, extract attachment text, derive fields, rate. Messages are
// processed one at a time in input order.
type Scanner struct {
	extractor *extract.Extractor
	fields    *fields.Extractor
	rater     *scoring.Rater
	logger    *zap.Logger
}

// New wires up a scanner with all pipeline stages.
func New(logger *zap.Logger) *Scanner {
	return &Scanner{
		extractor: extract.New(logger),
		fields:    fields.New(logger),
		rater:     scoring.New(logger),
		logger:    logger,
	}
}

// Process turns raw messages into rated candidate records. Messages that
// do not look like applications are skipped. Extraction problems degrade
// to low-information records rather than dropping the applicant. The
// returned IDs are the messages a record was produced for, so the caller
// can mark exactly those as handled; skipped mail stays untouched.
func (s *Scanner) Process(ctx context.Context, msgs []models.RawMessage) ([]models.CandidateRecord, []string) {
	records := make([]models.CandidateRecord, 0, len(msgs))
	processed := make([]string, 0, len(msgs))

	for _, msg := range msgs {
		if ctx.Err() != nil {
			s.logger.Warn("scan cancelled", zap.Int("processed", len(records)))
			return records, processed
		}

		if !ingestion.IsApplication(msg.Subject, msg.Body) {
			s.logger.Debug("message is not an application",
				zap.String("id", msg.ID),
				zap.String("subject", msg.Subject))
			continue
		}

		resumeText := s.attachmentText(msg)
		record := s.fields.ExtractFields(resumeText, msg)
		s.rater.Rate(&record)
		records = append(records, record)
		processed = append(processed, msg.ID)
	}

	s.logger.Info("scan finished",
		zap.Int("messages", len(msgs)),
		zap.Int("candidates", len(records)))

	return records, processed
}

// attachmentText extracts and concatenates the text of every resume
// attachment. Empty means "fall back to the email body".
func (s *Scanner) attachmentText(msg models.RawMessage) string {
	var parts []string
	for _, att := range msg.Attachments {
		text, err := s.extractor.Extract(att.Filename, att.Data)
		if err != nil {
			continue
		}
		if text == "" {
			continue
		}
		if !extract.IsValidResume(text) {
			s.logger.Debug("attachment text does not look like a resume",
				zap.String("filename", att.Filename),
				zap.Int("length", len(text)))
		}
		parts = append(parts, text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// Summary aggregates rated records.
func (s *Scanner) Summary(records []models.CandidateRecord) models.RatingSummary {
	return s.rater.Summary(records)
}
