package extract

import (
	"fmt"
	"regexp"
	"strings"

	"examparse/internal/domain"
)

// AnchorMode selects how a question's block is located in the document text.
type AnchorMode string

const (
	// AnchorSearch re-finds each trimmed stem by substring search. A stem that
	// also appears verbatim earlier in the text anchors to that earlier copy.
	AnchorSearch AnchorMode = "search"
	// AnchorOffset uses the offsets recorded while scanning.
	AnchorOffset AnchorMode = "offset"
)

// ParseAnchorMode converts a configuration value into an AnchorMode.
func ParseAnchorMode(s string) (AnchorMode, error) {
	switch AnchorMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", AnchorSearch:
		return AnchorSearch, nil
	case AnchorOffset:
		return AnchorOffset, nil
	default:
		return "", fmt.Errorf("unknown anchor mode %q", s)
	}
}

var (
	repeatedBlanks = regexp.MustCompile(`[ \t]{2,}`)
	pageFragment   = regexp.MustCompile(`\bPage\s*\d+\b`)
)

// Segmentation is the ordered output of a Segmenter run.
type Segmentation struct {
	Questions []domain.QuestionRecord
	Warnings  []domain.Warning
}

// Segmenter splits cleaned document text into question records.
type Segmenter struct {
	anchor AnchorMode
}

// NewSegmenter creates a Segmenter using the given anchoring mode.
func NewSegmenter(anchor AnchorMode) *Segmenter {
	if anchor == "" {
		anchor = AnchorSearch
	}
	return &Segmenter{anchor: anchor}
}

// Segment extracts every question and its options from text. Heuristic misses
// are reported as warnings; Segment never fails.
func (s *Segmenter) Segment(text string) Segmentation {
	spans := scanQuestions(text)
	if len(spans) == 0 {
		return Segmentation{
			Questions: []domain.QuestionRecord{},
			Warnings: []domain.Warning{{
				Code:    domain.WarningNoQuestionsFound,
				Message: "no questions extracted; check the PDF format",
			}},
		}
	}

	stems := make([]string, len(spans))
	for i, sp := range spans {
		stems[i] = strings.TrimSpace(text[sp.start:sp.end])
	}

	out := Segmentation{Questions: make([]domain.QuestionRecord, 0, len(spans))}
	for i, stem := range stems {
		start, end := s.blockBounds(text, spans, stems, i)
		options := extractOptions(text[start:end])
		question := normalizeStem(stem)
		if options == nil {
			idx := i
			out.Warnings = append(out.Warnings, domain.Warning{
				Code:          domain.WarningNoOptionsFound,
				Message:       fmt.Sprintf("no options found for question: %s", question),
				QuestionIndex: &idx,
			})
		}
		out.Questions = append(out.Questions, domain.QuestionRecord{
			Question: question,
			Options:  options,
		})
	}
	return out
}

// blockBounds returns the byte range of text that scopes option matching for
// question i: from its stem to the stem of question i+1, or to end of text.
func (s *Segmenter) blockBounds(text string, spans []span, stems []string, i int) (int, int) {
	if s.anchor == AnchorOffset {
		start := trimmedStart(text, spans[i])
		end := len(text)
		if i+1 < len(spans) {
			end = trimmedStart(text, spans[i+1])
		}
		return start, end
	}

	start := strings.Index(text, stems[i])
	if start < 0 {
		start = spans[i].start
	}
	end := len(text)
	if i+1 < len(stems) {
		from := start + len(stems[i])
		if idx := strings.Index(text[from:], stems[i+1]); idx >= 0 {
			end = from + idx
		}
	}
	return start, end
}

// trimmedStart is the offset of the first non-space byte of sp.
func trimmedStart(text string, sp span) int {
	body := text[sp.start:sp.end]
	return sp.start + len(body) - len(strings.TrimLeft(body, " \t\r\n\f\v"))
}

// extractOptions returns the labeled options in block, or nil if there are none.
// A repeated label keeps its last text.
func extractOptions(block string) domain.Options {
	matches := scanOptions(block)
	if len(matches) == 0 {
		return nil
	}
	opts := make(domain.Options, len(matches))
	for _, m := range matches {
		opts[m.label] = cleanOption(block[m.text.start:m.text.end])
	}
	return opts
}

// cleanOption removes page-number artifacts reflowed into an option and trims
// it. Inner whitespace is left as is.
func cleanOption(s string) string {
	s = strings.TrimSpace(s)
	s = pageFragment.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// normalizeStem collapses runs of blanks and marks line breaks with a leading space.
func normalizeStem(stem string) string {
	stem = repeatedBlanks.ReplaceAllString(stem, " ")
	stem = strings.ReplaceAll(stem, "\n", " \n")
	return strings.TrimSpace(stem)
}
