// file: internals/features/funnel/quiz/service/scoring_service.go
package service

import (
	"errors"
	"fmt"
	"math"
)

/* =========================================================
   SCORING
   score      = sum of the 10 answer point values (0..40)
   percentage = round(score / 40 * 100)
   band       = PASS >= 23, BORDERLINE 19..22, FAIL < 19
========================================================= */

// Band is the three-way outcome classification.
type Band string

const (
	BandPass       Band = "pass"
	BandBorderline Band = "borderline"
	BandFail       Band = "fail"
)

const (
	// TotalMaxScore = 10 questions × 4 max points.
	TotalMaxScore = QuestionCount * MaxPoints

	// NOTE: the old funnel's settings page and marketing copy claim the
	// passing score is 21, but the live branch logic has always used
	// 23/19. We keep parity with the enforced behavior.
	passThreshold       = 23
	borderlineThreshold = 19
)

// ErrIncompleteAnswers: fewer than 10 answers or a value outside [1,4].
var ErrIncompleteAnswers = errors.New("incomplete_answers")

// ScoreResult is the outcome of scoring one finalized submission.
type ScoreResult struct {
	Score      int  `json:"score"`
	MaxScore   int  `json:"max_score"`
	Percentage int  `json:"percentage"`
	Band       Band `json:"band"`
	Passed     bool `json:"passed"`
}

// ScoringService is pure computation; it holds no dependencies.
type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Score validates the answer sequence and classifies the result.
func (s *ScoringService) Score(answers []int) (*ScoreResult, error) {
	if len(answers) != QuestionCount {
		return nil, fmt.Errorf("%w: got %d answers", ErrIncompleteAnswers, len(answers))
	}

	total := 0
	for i, a := range answers {
		if a < MinPoints || a > MaxPoints {
			return nil, fmt.Errorf("%w: answer %d out of range (%d)", ErrIncompleteAnswers, i+1, a)
		}
		total += a
	}

	res := &ScoreResult{
		Score:      total,
		MaxScore:   TotalMaxScore,
		// multiply before dividing so half-values (odd totals) stay exact
		Percentage: int(math.Round(float64(total*100) / float64(TotalMaxScore))),
	}

	switch {
	case total >= passThreshold:
		res.Band = BandPass
		res.Passed = true
	case total >= borderlineThreshold:
		res.Band = BandBorderline
	default:
		res.Band = BandFail
	}

	return res, nil
}
