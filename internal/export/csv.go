package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"examparse/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// OptionLabels are the option columns, in display order.
var OptionLabels = []string{"a)", "b)", "c)", "d)"}

// columns defines the header row shared by every export format.
var columns = []string{"#", "Question", "a)", "b)", "c)", "d)", "Options Found"}

// CSVWriter wraps csv.Writer for exporting question records.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteQuestions converts questions to rows and writes them, numbering from 1.
func (w *CSVWriter) WriteQuestions(questions []domain.QuestionRecord) error {
	for i := range questions {
		if err := w.csv.Write(questionToRow(i+1, &questions[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// questionToRow renders one record. Labels are matched case-insensitively, so
// "A)" fills the a) column. Options Found counts every label, including any
// outside a-d.
func questionToRow(n int, q *domain.QuestionRecord) []string {
	row := make([]string, len(columns))
	row[0] = strconv.Itoa(n)
	row[1] = q.Question
	for i, label := range OptionLabels {
		row[2+i] = lookupOption(q.Options, label)
	}
	row[6] = strconv.Itoa(len(q.Options))
	return row
}

func lookupOption(opts domain.Options, label string) string {
	if v, ok := opts[label]; ok {
		return v
	}
	upper := string(label[0]-'a'+'A') + label[1:]
	return opts[upper]
}
