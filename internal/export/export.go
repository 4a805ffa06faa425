// Package export renders extracted questions as CSV or XLSX downloads.
package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"examparse/internal/domain"
)

// File is a rendered export ready to be sent to a client.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

var contentTypes = map[domain.ExportFormat]string{
	domain.ExportFormatCSV:  "text/csv; charset=utf-8",
	domain.ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ParseFormat validates a requested format, defaulting to xlsx.
func ParseFormat(s string) (domain.ExportFormat, error) {
	f := domain.ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return domain.ExportFormatXLSX, nil
	}
	if _, ok := contentTypes[f]; !ok {
		return "", domain.ErrUnsupportedExportFormat
	}
	return f, nil
}

// Render writes e's questions in format and names the file after the source paper.
func Render(e *domain.Extraction, format domain.ExportFormat) (*File, error) {
	contentType, ok := contentTypes[format]
	if !ok {
		return nil, domain.ErrUnsupportedExportFormat
	}

	var buf bytes.Buffer
	switch format {
	case domain.ExportFormatCSV:
		buf.Write(BOM)
		w := NewCSVWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return nil, err
		}
		if err := w.WriteQuestions(e.Questions); err != nil {
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("flushing csv: %w", err)
		}
	case domain.ExportFormatXLSX:
		if err := WriteXLSX(&buf, e.Questions); err != nil {
			return nil, err
		}
	}

	return &File{
		Name:        BuildFilename(e.OriginalName, format),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "questions"
	}
	return s
}

// BuildFilename returns {sanitized paper name}_questions.{format}.
func BuildFilename(originalName string, format domain.ExportFormat) string {
	base := strings.TrimSuffix(originalName, ".pdf")
	base = strings.TrimSuffix(base, ".PDF")
	return fmt.Sprintf("%s_questions.%s", SanitizeFilename(base), format)
}
