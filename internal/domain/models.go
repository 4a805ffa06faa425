package domain

import (
	"time"

	"github.com/google/uuid"
)

// Options maps an option label such as "a)" to its text.
// A nil Options serializes as JSON null.
type Options map[string]string

// QuestionRecord is one multiple-choice item extracted from a paper.
type QuestionRecord struct {
	Question string  `json:"question"`
	Options  Options `json:"options"`
}

// Warning describes a heuristic miss that degraded the result without failing it.
type Warning struct {
	Code          WarningCode `json:"code"`
	Message       string      `json:"message"`
	QuestionIndex *int        `json:"question_index,omitempty"`
}

// ExtractionResult is the output of running the pipeline over one document.
type ExtractionResult struct {
	Questions []QuestionRecord `json:"questions"`
	Warnings  []Warning        `json:"warnings"`
	PageCount int              `json:"page_count"`
}

// Extraction is a stored run of the pipeline against an uploaded paper.
type Extraction struct {
	ID            uuid.UUID        `json:"id"`
	OriginalName  string           `json:"original_name"`
	FileSize      int64            `json:"file_size"`
	PageCount     int              `json:"page_count"`
	QuestionCount int              `json:"question_count"`
	Questions     []QuestionRecord `json:"questions"`
	Warnings      []Warning        `json:"warnings"`
	SourceKey     string           `json:"source_key,omitempty"`
	ResultKey     string           `json:"result_key,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}
