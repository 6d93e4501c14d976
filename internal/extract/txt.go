package extract

import (
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// fallbackEncodings is the fixed, ordered list of encodings tried when a
// text attachment is not valid UTF-8.
var fallbackEncodings = []struct {
	name    string
	charmap *charmap.Charmap
}{
	{"latin-1", charmap.ISO8859_1},
	{"windows-1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

// extractTXT decodes a plain text attachment. UTF-8 is tried first, then
// each fallback encoding in order; exhausting the list yields empty text.
func (e *Extractor) extractTXT(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	for _, enc := range fallbackEncodings {
		decoded, err := enc.charmap.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		e.logger.Debug("decoded text attachment with fallback encoding",
			zap.String("encoding", enc.name))
		return string(decoded)
	}

	e.logger.Warn("could not decode text attachment")
	return ""
}
