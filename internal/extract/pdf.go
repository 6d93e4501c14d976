package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	dslipak "github.com/dslipak/pdf"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// extractPDF pulls text out of a PDF using two strategies: the primary
// reader page by page, then an alternate reader over the whole document.
// Both failing yields empty text so the caller can fall back to the email
// body.
func (e *Extractor) extractPDF(data []byte) string {
	text, err := extractPDFPrimary(data)
	if err == nil && text != "" {
		return text
	}
	if err != nil {
		e.logger.Debug("primary pdf extraction failed, trying alternate", zap.Error(err))
	}

	text, err = extractPDFAlternate(data)
	if err != nil {
		e.logger.Warn("pdf extraction failed", zap.Error(err))
		return ""
	}

	return text
}

// extractPDFPrimary reads page by page, joining pages with newlines. The
// underlying reader panics on some malformed documents, so the panic is
// converted into an error here.
func extractPDFPrimary(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// extractPDFAlternate extracts the whole document in one pass with a
// different reader implementation.
func extractPDFAlternate(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("alternate pdf reader panic: %v", r)
		}
	}()

	reader, err := dslipak.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}

	return buf.String(), nil
}
