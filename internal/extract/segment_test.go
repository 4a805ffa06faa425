package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examparse/internal/domain"
	"examparse/internal/extract"
)

func TestSegmenter_Segment_TwoQuestions(t *testing.T) {
	s := extract.NewSegmenter(extract.AnchorSearch)

	got := s.Segment("Q1 What is 2+2?\na) 3\nb) 4\nc) 5\nd) 6\nQ2 What is the capital of France?\na) Berlin\nb) Paris")

	require.Len(t, got.Questions, 2)
	assert.Empty(t, got.Warnings)
	assert.Equal(t, domain.QuestionRecord{
		Question: "What is 2+2?",
		Options:  domain.Options{"a)": "3", "b)": "4", "c)": "5", "d)": "6"},
	}, got.Questions[0])
	assert.Equal(t, domain.QuestionRecord{
		Question: "What is the capital of France?",
		Options:  domain.Options{"a)": "Berlin", "b)": "Paris"},
	}, got.Questions[1])
}

func TestSegmenter_Segment_NoQuestions(t *testing.T) {
	s := extract.NewSegmenter(extract.AnchorSearch)

	got := s.Segment("General instructions\nAnswer every item.\na) is not a question")

	assert.NotNil(t, got.Questions)
	assert.Empty(t, got.Questions)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, domain.WarningNoQuestionsFound, got.Warnings[0].Code)
	assert.Nil(t, got.Warnings[0].QuestionIndex)
}

func TestSegmenter_Segment_QuestionWithoutOptions(t *testing.T) {
	s := extract.NewSegmenter(extract.AnchorSearch)

	got := s.Segment("Q1 Explain the water cycle.\nQ2 Pick one\na) rain\nb) snow")

	require.Len(t, got.Questions, 1)
	assert.Equal(t, "Explain the water cycle. \nQ2 Pick one", got.Questions[0].Question)
	assert.Equal(t, domain.Options{"a)": "rain", "b)": "snow"}, got.Questions[0].Options)

	got = s.Segment("Q1 Explain the water cycle.\nDirections for the following two items\nQ2 Pick one\na) rain")
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "Explain the water cycle.", got.Questions[0].Question)
	assert.Nil(t, got.Questions[0].Options)
	assert.Equal(t, domain.Options{"a)": "rain"}, got.Questions[1].Options)

	require.Len(t, got.Warnings, 1)
	assert.Equal(t, domain.WarningNoOptionsFound, got.Warnings[0].Code)
	require.NotNil(t, got.Warnings[0].QuestionIndex)
	assert.Equal(t, 0, *got.Warnings[0].QuestionIndex)
	assert.Contains(t, got.Warnings[0].Message, "Explain the water cycle.")
}

func TestSegmenter_Segment_PageFragmentStripped(t *testing.T) {
	s := extract.NewSegmenter(extract.AnchorSearch)

	got := s.Segment("Q7 Which statement is right?\na) Paris Page 45 is the capital\nb) Lyon  is the capital")

	require.Len(t, got.Questions, 1)
	assert.Equal(t, "Paris  is the capital", got.Questions[0].Options["a)"])
	assert.Equal(t, "Lyon  is the capital", got.Questions[0].Options["b)"])
}

func TestSegmenter_Segment_StemNormalization(t *testing.T) {
	s := extract.NewSegmenter(extract.AnchorSearch)

	got := s.Segment("12)   Consider   the\tfollowing\t\tstatements:\n1. Rivers  flow\n2. Hills stand \na) 1 only\nb) 2 only")

	require.Len(t, got.Questions, 1)
	assert.Equal(t, "Consider the\tfollowing statements: \n1. Rivers flow \n2. Hills stand", got.Questions[0].Question)
}

func TestSegmenter_Segment_ParenthesizedLettersAreNotLabels(t *testing.T) {
	s := extract.NewSegmenter(extract.AnchorSearch)

	got := s.Segment("Q3 Which pair (a) and (b) is matched?\na) (a) only\nb) (b) only")

	require.Len(t, got.Questions, 1)
	assert.Equal(t, domain.Options{"a)": "(a) only", "b)": "(b) only"}, got.Questions[0].Options)
}

func TestSegmenter_Segment_OptionRunsToEndOfText(t *testing.T) {
	for _, mode := range []extract.AnchorMode{extract.AnchorSearch, extract.AnchorOffset} {
		t.Run(string(mode), func(t *testing.T) {
			s := extract.NewSegmenter(mode)

			got := s.Segment("Q1 Which is right?\na) x (a) 12)")

			require.Len(t, got.Questions, 1)
			assert.Empty(t, got.Warnings)
			assert.Equal(t, domain.Options{"a)": "x (a) 12)"}, got.Questions[0].Options)
		})
	}
}

func TestSegmenter_Segment_MidLineQuestionLabelInOption(t *testing.T) {
	for _, mode := range []extract.AnchorMode{extract.AnchorSearch, extract.AnchorOffset} {
		t.Run(string(mode), func(t *testing.T) {
			s := extract.NewSegmenter(mode)

			got := s.Segment("Q1 Which is right?\na) x (a) 12) more")

			require.Len(t, got.Questions, 2)
			assert.Equal(t, domain.Options{"a)": "x (a) 12)"}, got.Questions[0].Options)
			assert.Equal(t, "more", got.Questions[1].Question)
			assert.Nil(t, got.Questions[1].Options)
			require.Len(t, got.Warnings, 1)
			require.NotNil(t, got.Warnings[0].QuestionIndex)
			assert.Equal(t, 1, *got.Warnings[0].QuestionIndex)
		})
	}
}

func TestSegmenter_Segment_UppercaseLabelsKeepCase(t *testing.T) {
	s := extract.NewSegmenter(extract.AnchorSearch)

	got := s.Segment("Q1 Pick\nA) first\nB) second")

	require.Len(t, got.Questions, 1)
	assert.Equal(t, domain.Options{"A)": "first", "B)": "second"}, got.Questions[0].Options)
}

func TestSegmenter_Segment_DuplicateLabelLastWins(t *testing.T) {
	s := extract.NewSegmenter(extract.AnchorSearch)

	got := s.Segment("Q1 Pick\na) first\nb) second\na) replaced")

	require.Len(t, got.Questions, 1)
	assert.Equal(t, domain.Options{"a)": "replaced", "b)": "second"}, got.Questions[0].Options)
}

func TestSegmenter_Segment_OptionStopsAtSectionMarker(t *testing.T) {
	s := extract.NewSegmenter(extract.AnchorSearch)

	got := s.Segment("Q1 Pick\na) first\nb) second\nPassage I\nThe monsoon arrives in June.\nQ2 When?\na) June")

	require.Len(t, got.Questions, 2)
	assert.Equal(t, "second", got.Questions[0].Options["b)"])
	assert.Equal(t, "When?", got.Questions[1].Question)
	assert.Equal(t, domain.Options{"a)": "June"}, got.Questions[1].Options)
}

func TestSegmenter_Segment_RepeatedStemAnchoring(t *testing.T) {
	text := "Q1 Pick one\na) red\nb) blue\nQ2 Odd\na) cat\nQ3 Pick one\nc) green\nd) pink"

	search := extract.NewSegmenter(extract.AnchorSearch).Segment(text)
	require.Len(t, search.Questions, 3)
	// the third stem re-anchors to the first copy, so its block covers every option
	assert.Equal(t, domain.Options{"a)": "cat", "b)": "blue", "c)": "green", "d)": "pink"}, search.Questions[2].Options)

	offset := extract.NewSegmenter(extract.AnchorOffset).Segment(text)
	require.Len(t, offset.Questions, 3)
	assert.Equal(t, domain.Options{"a)": "red", "b)": "blue"}, offset.Questions[0].Options)
	assert.Equal(t, domain.Options{"a)": "cat"}, offset.Questions[1].Options)
	assert.Equal(t, domain.Options{"c)": "green", "d)": "pink"}, offset.Questions[2].Options)
}

func TestSegmenter_Segment_OrderFollowsStemOccurrence(t *testing.T) {
	text := "Q1 Alpha stem\na) 1\n\nQ2 Beta stem\na) 2\nQ3 Gamma stem\na) 3\nb) 4\n\n"

	got := extract.NewSegmenter(extract.AnchorSearch).Segment(text)

	require.Len(t, got.Questions, 3)
	last := -1
	for _, q := range got.Questions {
		idx := strings.Index(text, q.Question)
		require.GreaterOrEqual(t, idx, 0)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestParseAnchorMode(t *testing.T) {
	m, err := extract.ParseAnchorMode("")
	require.NoError(t, err)
	assert.Equal(t, extract.AnchorSearch, m)

	m, err = extract.ParseAnchorMode(" Offset ")
	require.NoError(t, err)
	assert.Equal(t, extract.AnchorOffset, m)

	_, err = extract.ParseAnchorMode("regex")
	assert.Error(t, err)
}
