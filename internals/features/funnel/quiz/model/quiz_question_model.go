// file: internals/features/funnel/quiz/model/quiz_question_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =============================================================================
   MODEL: quiz_questions
   The suitability quiz definition: exactly 10 ordered questions, each with
   exactly 4 choices carrying point values 1–4. The funnel treats this as
   read-only configuration; it is seeded at migrate time and only edited by
   hand in the DB.
============================================================================= */

// QuizChoice is one selectable answer with its point value.
type QuizChoice struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

type QuizQuestionModel struct {
	// PK
	QuizQuestionID uuid.UUID `json:"quiz_question_id" gorm:"column:quiz_question_id;type:uuid;primaryKey"`

	// 1-based order in the funnel
	QuizQuestionPosition int `json:"quiz_question_position" gorm:"column:quiz_question_position;not null;uniqueIndex:uq_quiz_question_position"`

	QuizQuestionText string `json:"quiz_question_text" gorm:"column:quiz_question_text;type:text;not null"`

	// exactly 4 entries, points 1..4
	QuizQuestionChoices datatypes.JSONSlice[QuizChoice] `json:"quiz_question_choices" gorm:"column:quiz_question_choices"`

	// Audit
	QuizQuestionCreatedAt time.Time `json:"quiz_question_created_at" gorm:"column:quiz_question_created_at;autoCreateTime"`
	QuizQuestionUpdatedAt time.Time `json:"quiz_question_updated_at" gorm:"column:quiz_question_updated_at;autoUpdateTime"`
}

func (QuizQuestionModel) TableName() string { return "quiz_questions" }

func (m *QuizQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuizQuestionID == uuid.Nil {
		m.QuizQuestionID = uuid.New()
	}
	return nil
}
