package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SectionMarkers open a new preamble (directions or a reading passage).
// They end a question stem or an option wherever they start a line.
var SectionMarkers = []string{
	"Directions for the following",
	"Passage I",
	"Passage II",
	"Read the following",
}

// TerminatorKind identifies what ended a scanned span. When several kinds
// start after the same newline, the lowest value wins.
type TerminatorKind int

const (
	TerminatorOptionLabel TerminatorKind = iota + 1
	TerminatorQuestion
	TerminatorSection
	TerminatorEnd
)

func (k TerminatorKind) String() string {
	switch k {
	case TerminatorOptionLabel:
		return "option_label"
	case TerminatorQuestion:
		return "question"
	case TerminatorSection:
		return "section"
	case TerminatorEnd:
		return "end"
	default:
		return "unknown"
	}
}

// span is a half-open byte range of scanned text.
type span struct {
	start, end int
	kind       TerminatorKind
}

// nearestTerminator returns the position of the first newline at or after
// from that is followed by one of kinds, or len(text) with TerminatorEnd.
// The returned position is the newline itself, which stays outside the span.
func nearestTerminator(text string, from int, kinds ...TerminatorKind) (int, TerminatorKind) {
	for p := from; p < len(text); {
		nl := strings.IndexByte(text[p:], '\n')
		if nl < 0 {
			break
		}
		p += nl
		rest := text[p+1:]
		for _, k := range kinds {
			if startsWithTerminator(rest, k) {
				return p, k
			}
		}
		p++
	}
	return len(text), TerminatorEnd
}

func startsWithTerminator(s string, k TerminatorKind) bool {
	switch k {
	case TerminatorOptionLabel:
		return isOptionLabel(s)
	case TerminatorQuestion:
		return questionMarkerLen(s) > 0
	case TerminatorSection:
		for _, m := range SectionMarkers {
			if strings.HasPrefix(s, m) {
				return true
			}
		}
	}
	return false
}

// isOptionLabel reports whether s starts with a letter a-d (any case) and ")".
func isOptionLabel(s string) bool {
	if len(s) < 2 || s[1] != ')' {
		return false
	}
	switch s[0] {
	case 'a', 'b', 'c', 'd', 'A', 'B', 'C', 'D':
		return true
	}
	return false
}

// questionMarkerLen returns the byte length of a question number at the start
// of s ("Q", optional ".", optional whitespace, digits; or digits and ")"),
// or 0 if s does not start with one.
func questionMarkerLen(s string) int {
	if s == "" {
		return 0
	}
	if s[0] == 'Q' {
		i := 1
		if i < len(s) && s[i] == '.' {
			i++
		}
		if r, w := utf8.DecodeRuneInString(s[i:]); w > 0 && unicode.IsSpace(r) {
			i += w
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j == i {
			return 0
		}
		return j
	}
	j := 0
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j > 0 && j < len(s) && s[j] == ')' {
		return j + 1
	}
	return 0
}

// questionStart finds the first question label at or after from that is
// followed by a whitespace rune. It returns the label start and the offset
// where the body begins, or -1, -1.
func questionStart(text string, from int) (int, int) {
	for i := from; i < len(text); i++ {
		c := text[i]
		if c != 'Q' && !isDigit(c) {
			continue
		}
		n := questionMarkerLen(text[i:])
		if n == 0 {
			continue
		}
		r, w := utf8.DecodeRuneInString(text[i+n:])
		if w > 0 && unicode.IsSpace(r) {
			return i, i + n + w
		}
	}
	return -1, -1
}

// scanQuestions returns the body span of every question in text, in order.
// A body runs from just after its label to the nearest newline that starts an
// option label or a section marker, or to the end of text.
func scanQuestions(text string) []span {
	var spans []span
	pos := 0
	for pos < len(text) {
		_, bodyStart := questionStart(text, pos)
		if bodyStart < 0 || bodyStart >= len(text) {
			break
		}
		end, kind := nearestTerminator(text, bodyStart+1, TerminatorOptionLabel, TerminatorSection)
		spans = append(spans, span{start: bodyStart, end: end, kind: kind})
		pos = end
	}
	return spans
}

// optionLabelAt reports whether an option label starts at i: a letter a-d
// followed by ")", not preceded by "(" or by a word character.
func optionLabelAt(text string, i int) bool {
	if !isOptionLabel(text[i:]) {
		return false
	}
	if i == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:i])
	return prev != '(' && !isWordRune(prev)
}

// optionMatch is one labeled option found in a question block.
type optionMatch struct {
	label string
	text  span
}

// scanOptions returns every labeled option in block, in order. Option text
// starts after the label and any whitespace, and runs to the nearest newline
// that starts another label, a question number or a section marker, or to the
// end of block.
func scanOptions(block string) []optionMatch {
	var matches []optionMatch
	for i := 0; i < len(block); {
		if !optionLabelAt(block, i) {
			i++
			continue
		}
		label := block[i : i+2]
		textStart := i + 2
		for textStart < len(block) {
			r, w := utf8.DecodeRuneInString(block[textStart:])
			if !unicode.IsSpace(r) {
				break
			}
			textStart += w
		}
		if textStart == len(block) {
			// the text needs at least one rune; hand back the last whitespace
			if textStart == i+2 {
				break
			}
			_, w := utf8.DecodeLastRuneInString(block[:textStart])
			textStart -= w
		}
		end, kind := nearestTerminator(block, textStart+1, TerminatorOptionLabel, TerminatorQuestion, TerminatorSection)
		matches = append(matches, optionMatch{label: label, text: span{start: textStart, end: end, kind: kind}})
		i = end
	}
	return matches
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
