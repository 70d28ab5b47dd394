// file: internals/features/funnel/quiz/service/quiz_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	qmodel "suitability_backend/internals/features/funnel/quiz/model"
)

const (
	// QuestionCount is fixed for the suitability quiz.
	QuestionCount = 10
	// ChoiceCount per question.
	ChoiceCount = 4
	// MinPoints/MaxPoints per answer choice.
	MinPoints = 1
	MaxPoints = 4
)

// ErrBadDefinition means the stored quiz configuration is unusable for
// scoring (wrong question/choice count or point values out of range).
var ErrBadDefinition = errors.New("quiz definition invalid")

type QuizService struct {
	DB *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{DB: db}
}

// LoadDefinition returns the quiz questions ordered by position and
// verifies the definition precondition before anyone scores against it.
func (s *QuizService) LoadDefinition(ctx context.Context) ([]qmodel.QuizQuestionModel, error) {
	var questions []qmodel.QuizQuestionModel
	if err := s.DB.WithContext(ctx).
		Order("quiz_question_position ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	if err := ValidateDefinition(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// ValidateDefinition checks the read-only configuration invariant:
// exactly 10 questions, each with exactly 4 choices, points within [1,4].
func ValidateDefinition(questions []qmodel.QuizQuestionModel) error {
	if len(questions) != QuestionCount {
		return fmt.Errorf("%w: expected %d questions, got %d", ErrBadDefinition, QuestionCount, len(questions))
	}
	for i, q := range questions {
		if q.QuizQuestionPosition != i+1 {
			return fmt.Errorf("%w: question %d has position %d", ErrBadDefinition, i+1, q.QuizQuestionPosition)
		}
		if len(q.QuizQuestionChoices) != ChoiceCount {
			return fmt.Errorf("%w: question %d has %d choices", ErrBadDefinition, i+1, len(q.QuizQuestionChoices))
		}
		for _, c := range q.QuizQuestionChoices {
			if c.Points < MinPoints || c.Points > MaxPoints {
				return fmt.Errorf("%w: question %d has choice with %d points", ErrBadDefinition, i+1, c.Points)
			}
		}
	}
	return nil
}

// SeedDefaultQuestions inserts the stock suitability questions when the
// table is empty. Idempotent on restart.
func (s *QuizService) SeedDefaultQuestions() error {
	var count int64
	if err := s.DB.Model(&qmodel.QuizQuestionModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	questions := defaultQuestions()
	return s.DB.Create(&questions).Error
}

func defaultQuestions() []qmodel.QuizQuestionModel {
	texts := []string{
		"How would you describe your experience with capital market investments?",
		"How long do you plan to keep your money invested?",
		"How would you react to a 15% drop in your portfolio's value?",
		"What portion of your monthly income is available for investing?",
		"How familiar are you with leveraged financial instruments?",
		"How stable is your current employment or income source?",
		"Do you have liquid savings covering at least six months of expenses?",
		"How often do you follow financial news and markets?",
		"What is your primary goal for this investment?",
		"How comfortable are you making independent financial decisions?",
	}
	scale := []qmodel.QuizChoice{
		{Label: "Not at all / none", Points: 1},
		{Label: "A little / short term", Points: 2},
		{Label: "Moderate", Points: 3},
		{Label: "Extensive / long term", Points: 4},
	}

	out := make([]qmodel.QuizQuestionModel, 0, len(texts))
	for i, t := range texts {
		out = append(out, qmodel.QuizQuestionModel{
			QuizQuestionPosition: i + 1,
			QuizQuestionText:     t,
			QuizQuestionChoices:  scale,
		})
	}
	return out
}
