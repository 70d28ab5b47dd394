// file: internals/features/funnel/quiz/dto/quiz_dto.go
package dto

import (
	model "suitability_backend/internals/features/funnel/quiz/model"
)

/* ==============================
   GET /api/public/quiz
============================== */

type QuizChoiceResponse struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

type QuizQuestionResponse struct {
	Position int                  `json:"position"`
	Text     string               `json:"text"`
	Choices  []QuizChoiceResponse `json:"choices"`
}

func FromModel(m *model.QuizQuestionModel) QuizQuestionResponse {
	choices := make([]QuizChoiceResponse, 0, len(m.QuizQuestionChoices))
	for _, c := range m.QuizQuestionChoices {
		choices = append(choices, QuizChoiceResponse{Label: c.Label, Points: c.Points})
	}
	return QuizQuestionResponse{
		Position: m.QuizQuestionPosition,
		Text:     m.QuizQuestionText,
		Choices:  choices,
	}
}

func FromModels(ms []model.QuizQuestionModel) []QuizQuestionResponse {
	out := make([]QuizQuestionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
