// file: internals/features/funnel/quiz/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "suitability_backend/internals/features/funnel/quiz/controller"
)

// QuizUserRoutes: public read-only quiz definition.
func QuizUserRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewQuizController(db)
	public.Get("/quiz", ctl.GetQuiz)
}
