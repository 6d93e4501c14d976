package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
)

// extractDOCX pulls text from a Word document: paragraph text in document
// order first, then table cells (cells space-joined, rows newline-joined).
// Legacy .doc files are not zip archives and land in the error path, which
// degrades to empty text like every other extraction failure.
func (e *Extractor) extractDOCX(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warn("docx extraction failed", zap.Error(err))
		return ""
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				e.logger.Warn("docx extraction failed", zap.Error(err))
				return ""
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				e.logger.Warn("docx extraction failed", zap.Error(err))
				return ""
			}
			break
		}
	}
	if len(docXML) == 0 {
		e.logger.Warn("docx has no document.xml")
		return ""
	}

	paragraphs, tables, err := parseDocumentXML(docXML)
	if err != nil {
		e.logger.Warn("docx extraction failed", zap.Error(err))
		return ""
	}

	var sb strings.Builder
	for _, p := range paragraphs {
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	for _, table := range tables {
		for _, row := range table {
			sb.WriteString(strings.Join(row, " "))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// parseDocumentXML walks word/document.xml collecting top-level paragraph
// text and, separately, table cell text. Paragraphs inside tables belong to
// their cell, not to the paragraph list.
func parseDocumentXML(docXML []byte) (paragraphs []string, tables [][][]string, err error) {
	decoder := xml.NewDecoder(bytes.NewReader(docXML))

	var (
		tblDepth    int
		inParagraph bool
		inCell      bool
		inText      bool

		para strings.Builder
		cell strings.Builder

		currentRow   []string
		currentTable [][]string
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					currentTable = nil
				}
			case "tr":
				if tblDepth == 1 {
					currentRow = nil
				}
			case "tc":
				if tblDepth == 1 {
					inCell = true
					cell.Reset()
				}
			case "p":
				if tblDepth == 0 {
					inParagraph = true
					para.Reset()
				}
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth--
				if tblDepth == 0 {
					tables = append(tables, currentTable)
				}
			case "tr":
				if tblDepth == 1 {
					currentTable = append(currentTable, currentRow)
				}
			case "tc":
				if tblDepth == 1 {
					currentRow = append(currentRow, cell.String())
					inCell = false
				}
			case "p":
				if tblDepth == 0 && inParagraph {
					paragraphs = append(paragraphs, para.String())
					inParagraph = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if !inText {
				continue
			}
			if inCell {
				cell.Write(t)
			} else if inParagraph {
				para.Write(t)
			}
		}
	}

	return paragraphs, tables, nil
}
