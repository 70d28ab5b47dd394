// file: internals/features/funnel/quiz/controller/quiz_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	qdto "suitability_backend/internals/features/funnel/quiz/dto"
	qservice "suitability_backend/internals/features/funnel/quiz/service"
	helper "suitability_backend/internals/helpers"
)

type QuizController struct {
	Service *qservice.QuizService
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{Service: qservice.NewQuizService(db)}
}

// GetQuiz serves the read-only quiz definition for the step 3/4 form.
func (ctl *QuizController) GetQuiz(c *fiber.Ctx) error {
	questions, err := ctl.Service.LoadDefinition(c.UserContext())
	if err != nil {
		if errors.Is(err, qservice.ErrBadDefinition) {
			log.Printf("[QUIZ] definition invalid: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Quiz configuration is invalid")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load quiz")
	}
	return helper.Success(c, "OK", qdto.FromModels(questions))
}
