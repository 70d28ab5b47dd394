// file: internals/features/funnel/submissions/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "suitability_backend/internals/features/funnel/submissions/controller"
	middlewares "suitability_backend/internals/middlewares"
)

// SubmissionUserRoutes: the public funnel surface.
func SubmissionUserRoutes(public fiber.Router, db *gorm.DB) {
	ctl := controller.NewSubmissionController(db)

	funnel := public.Group("/funnel", middlewares.SubmitRateLimiter())
	funnel.Post("/step/:step", ctl.PostStep)
	funnel.Post("/final", ctl.PostFinal)
}
