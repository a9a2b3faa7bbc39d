package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"clausesync/internal/domain"
)

// Text returns the best-effort plain-text content of an uploaded contract.
// PDF extraction is partial-on-error: pages that fail contribute nothing and
// a warning, but text recovered from earlier pages is kept. Non-PDF media is
// decoded as UTF-8 verbatim; invalid UTF-8 is an input error.
func Text(data []byte, mediaType domain.MediaType) (string, []domain.Warning, error) {
	switch mediaType {
	case domain.MediaTypePDF:
		text, warnings := pdfText(data)
		return text, warnings, nil
	case domain.MediaTypeDoc, domain.MediaTypeText:
		if !utf8.Valid(data) {
			return "", nil, domain.ErrInvalidEncoding
		}
		return string(data), nil, nil
	default:
		return "", nil, domain.ErrUnsupportedFileType
	}
}

func pdfText(data []byte) (text string, warnings []domain.Warning) {
	// The pdf package panics on some malformed files instead of returning an
	// error. Treat those the same as any other extraction failure.
	defer func() {
		if r := recover(); r != nil {
			warnings = append(warnings, domain.Warning{
				Stage:   "extract",
				Message: fmt.Sprintf("reading PDF: %v", r),
			})
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		warnings = append(warnings, domain.Warning{
			Stage:   "extract",
			Message: fmt.Sprintf("opening PDF: %v", err),
		})
		return "", warnings
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			warnings = append(warnings, domain.Warning{
				Stage:   "extract",
				Message: fmt.Sprintf("extracting text from page %d: %v", i, err),
			})
			continue
		}
		sb.WriteString(text)
	}

	return sb.String(), warnings
}
