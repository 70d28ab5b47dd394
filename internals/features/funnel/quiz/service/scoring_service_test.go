// file: internals/features/funnel/quiz/service/scoring_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qmodel "suitability_backend/internals/features/funnel/quiz/model"
)

func answersSumming(total int) []int {
	// start at the minimum (10×1) and add the remainder across slots
	answers := make([]int, QuestionCount)
	for i := range answers {
		answers[i] = 1
	}
	rest := total - QuestionCount
	for i := 0; rest > 0; i = (i + 1) % QuestionCount {
		if answers[i] < MaxPoints {
			answers[i]++
			rest--
		}
	}
	return answers
}

func TestScoreIsSumOfAnswers(t *testing.T) {
	svc := NewScoringService()

	res, err := svc.Score([]int{1, 2, 3, 4, 1, 2, 3, 4, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 23, res.Score)
	assert.Equal(t, 40, res.MaxScore)
	assert.Equal(t, 58, res.Percentage) // round(23/40*100)
}

func TestBandBoundaries(t *testing.T) {
	svc := NewScoringService()

	cases := []struct {
		total  int
		band   Band
		passed bool
	}{
		{10, BandFail, false},
		{18, BandFail, false},
		{19, BandBorderline, false},
		{20, BandBorderline, false},
		{22, BandBorderline, false},
		{23, BandPass, true},
		{40, BandPass, true},
	}

	for _, tc := range cases {
		res, err := svc.Score(answersSumming(tc.total))
		require.NoError(t, err, "total %d", tc.total)
		assert.Equal(t, tc.total, res.Score, "total %d", tc.total)
		assert.Equal(t, tc.band, res.Band, "total %d", tc.total)
		assert.Equal(t, tc.passed, res.Passed, "total %d", tc.total)
	}
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	svc := NewScoringService()

	// every odd total lands on a half percentage point (x.5 → round up)
	cases := map[int]int{
		20: 50,
		21: 53, // 52.5
		23: 58, // 57.5
		25: 63, // 62.5
		27: 68, // 67.5
		40: 100,
	}
	for total, pct := range cases {
		res, err := svc.Score(answersSumming(total))
		require.NoError(t, err, "total %d", total)
		assert.Equal(t, pct, res.Percentage, "total %d", total)
	}
}

func TestScoreRejectsIncompleteAnswers(t *testing.T) {
	svc := NewScoringService()

	_, err := svc.Score([]int{1, 2, 3, 4, 1, 2, 3, 4, 1}) // only 9
	require.ErrorIs(t, err, ErrIncompleteAnswers)

	_, err = svc.Score([]int{1, 2, 3, 4, 1, 2, 3, 4, 1, 5}) // out of range
	require.ErrorIs(t, err, ErrIncompleteAnswers)

	_, err = svc.Score([]int{1, 2, 3, 4, 1, 2, 3, 4, 1, 0}) // unanswered slot
	require.ErrorIs(t, err, ErrIncompleteAnswers)

	_, err = svc.Score(nil)
	require.ErrorIs(t, err, ErrIncompleteAnswers)
}

func validDefinition() []qmodel.QuizQuestionModel {
	choices := []qmodel.QuizChoice{
		{Label: "a", Points: 1},
		{Label: "b", Points: 2},
		{Label: "c", Points: 3},
		{Label: "d", Points: 4},
	}
	out := make([]qmodel.QuizQuestionModel, 0, QuestionCount)
	for i := 0; i < QuestionCount; i++ {
		out = append(out, qmodel.QuizQuestionModel{
			QuizQuestionPosition: i + 1,
			QuizQuestionText:     "q",
			QuizQuestionChoices:  choices,
		})
	}
	return out
}

func TestValidateDefinition(t *testing.T) {
	require.NoError(t, ValidateDefinition(validDefinition()))

	short := validDefinition()[:9]
	require.ErrorIs(t, ValidateDefinition(short), ErrBadDefinition)

	missingChoice := validDefinition()
	missingChoice[3].QuizQuestionChoices = missingChoice[3].QuizQuestionChoices[:3]
	require.ErrorIs(t, ValidateDefinition(missingChoice), ErrBadDefinition)

	badPoints := validDefinition()
	badPoints[0].QuizQuestionChoices = []qmodel.QuizChoice{
		{Label: "a", Points: 0},
		{Label: "b", Points: 2},
		{Label: "c", Points: 3},
		{Label: "d", Points: 4},
	}
	require.ErrorIs(t, ValidateDefinition(badPoints), ErrBadDefinition)
}
