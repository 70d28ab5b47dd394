// file: internals/features/funnel/submissions/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "suitability_backend/internals/features/funnel/submissions/controller"
)

// SubmissionAdminRoutes: viewer/reporting endpoints, mounted behind the
// admin JWT guard.
func SubmissionAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAdminController(db)

	admin.Get("/submissions", ctl.ListSubmissions)
	admin.Get("/submissions/:id", ctl.GetSubmission)
	admin.Get("/submissions/:id/signature", ctl.GetSignature)
	admin.Delete("/submissions/:id", ctl.DeleteSubmission)
}
