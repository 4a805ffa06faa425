package extract

import (
	"regexp"
	"strings"
)

// NoiseVocabulary lists the publisher boilerplate that marks a line as footer
// noise. Markers are regular expressions; every other table holds literals.
// Matching is case-insensitive and may hit anywhere in the line.
type NoiseVocabulary struct {
	Markers    []string
	Institutes []string
	Cities     []string
	Contacts   []string
}

// DefaultNoiseVocabulary covers the footers printed on the supported test series.
var DefaultNoiseVocabulary = NoiseVocabulary{
	Markers: []string{
		`SFG\s?\d+`,
		`LEVEL\s?\d+`,
		`Test\s\d+`,
	},
	Institutes: []string{
		"Forum Learning Centre",
		"ForumIAS",
		"IAPL House",
		"academy",
	},
	Cities: []string{
		"Delhi",
		"New Delhi",
		"Patna",
		"Hyderabad",
		"Pusa Road",
	},
	Contacts: []string{
		"contact@",
		"helpdesk@",
		"www.",
		"address",
	},
}

// FooterFilter drops lines that match a NoiseVocabulary.
type FooterFilter struct {
	pattern *regexp.Regexp
}

// NewFooterFilter compiles vocab into a FooterFilter.
// It returns an error if a marker is not a valid regular expression.
func NewFooterFilter(vocab NoiseVocabulary) (*FooterFilter, error) {
	alts := make([]string, 0, len(vocab.Markers)+len(vocab.Institutes)+len(vocab.Cities)+len(vocab.Contacts))
	alts = append(alts, vocab.Markers...)
	for _, table := range [][]string{vocab.Institutes, vocab.Cities, vocab.Contacts} {
		for _, lit := range table {
			// a literal space in a name matches any single whitespace rune
			alts = append(alts, strings.ReplaceAll(regexp.QuoteMeta(lit), " ", `\s`))
		}
	}
	re, err := regexp.Compile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
	if err != nil {
		return nil, err
	}
	return &FooterFilter{pattern: re}, nil
}

// DefaultFooterFilter returns a filter for DefaultNoiseVocabulary.
func DefaultFooterFilter() *FooterFilter {
	f, err := NewFooterFilter(DefaultNoiseVocabulary)
	if err != nil {
		panic(err)
	}
	return f
}

// IsNoise reports whether line contains any noise vocabulary entry.
func (f *FooterFilter) IsNoise(line string) bool {
	return f.pattern.MatchString(line)
}

// RemoveFooter drops noise lines and blank lines from text and returns the
// remaining lines trimmed and joined by newlines, in their original order.
func (f *FooterFilter) RemoveFooter(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || f.IsNoise(line) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}
