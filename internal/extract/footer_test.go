package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examparse/internal/extract"
)

func TestFooterFilter_IsNoise(t *testing.T) {
	f := extract.DefaultFooterFilter()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"level marker", "LEVEL 2", true},
		{"level marker no space", "level3", true},
		{"sfg marker", "SFG2024 Mains", true},
		{"test number", "Test 12", true},
		{"institute", "Forum Learning Centre, Karol Bagh", true},
		{"organization", "forumias", true},
		{"city", "Hyderabad branch", true},
		{"city inside word", "Patnaik wrote the report", true},
		{"contact", "Mail contact@example.com for queries", true},
		{"helpdesk", "HELPDESK@example.com", true},
		{"www prefix", "www.example.com", true},
		{"academy", "The Academy Press", true},
		{"address", "Address: 2nd floor", true},
		{"question line", "Q1 Which of the following is correct?", false},
		{"option line", "a) Only 1 and 2", false},
		{"test without number", "Test your understanding", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IsNoise(tt.line))
		})
	}
}

func TestFooterFilter_RemoveFooter_MixedLine(t *testing.T) {
	f := extract.DefaultFooterFilter()

	got := f.RemoveFooter("Q5 Consider the statements\nForumIAS Test 12 Delhi\na) Only one")
	assert.Equal(t, "Q5 Consider the statements\na) Only one", got)
}

func TestFooterFilter_RemoveFooter_DropsBlankAndTrims(t *testing.T) {
	f := extract.DefaultFooterFilter()

	got := f.RemoveFooter("   Q1 First  \n\n \t \n  a) yes\n")
	assert.Equal(t, "Q1 First\na) yes", got)
}

func TestFooterFilter_RemoveFooter_AllNoise(t *testing.T) {
	f := extract.DefaultFooterFilter()

	got := f.RemoveFooter("SFG 2\nIAPL House, Pusa Road\nwww.example.com")
	assert.Equal(t, "", got)
}

func TestFooterFilter_RemoveFooter_Properties(t *testing.T) {
	f := extract.DefaultFooterFilter()

	inputs := []string{
		"",
		"\n\n",
		"Q1 What is 2+2?\nLEVEL 1\na) 3\n  \nb) 4\nhelpdesk@example.com\n",
		"Forum Learning Centre\nQ2 Name the river\r\nPatna\nc) Ganga   \n",
		"  Passage I  \nRead the following\nTest 4\nd) none",
	}
	for _, in := range inputs {
		once := f.RemoveFooter(in)
		assert.Equal(t, once, f.RemoveFooter(once), "idempotent for %q", in)
		if once == "" {
			continue
		}
		for _, line := range strings.Split(once, "\n") {
			assert.NotEmpty(t, strings.TrimSpace(line))
			assert.False(t, f.IsNoise(line), "noise line %q survived", line)
		}
	}
}

func TestNewFooterFilter_CustomVocabulary(t *testing.T) {
	f, err := extract.NewFooterFilter(extract.NoiseVocabulary{
		Markers:    []string{`Set\s?[A-D]`},
		Institutes: []string{"Vision (IAS)"},
	})
	require.NoError(t, err)

	assert.True(t, f.IsNoise("set b"))
	assert.True(t, f.IsNoise("Printed by Vision (IAS)"))
	assert.True(t, f.IsNoise("vision\t(ias)"))
	assert.False(t, f.IsNoise("Vision IAS"))
	assert.False(t, f.IsNoise("Delhi"))
}

func TestNewFooterFilter_InvalidMarker(t *testing.T) {
	_, err := extract.NewFooterFilter(extract.NoiseVocabulary{Markers: []string{`(unclosed`}})
	assert.Error(t, err)
}
