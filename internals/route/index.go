// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authcontroller "suitability_backend/internals/features/funnel/auth/controller"
	quizroute "suitability_backend/internals/features/funnel/quiz/route"
	subroute "suitability_backend/internals/features/funnel/submissions/route"
	middlewares "suitability_backend/internals/middlewares"
	authMiddleware "suitability_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authCtl := authcontroller.NewAuthController()
	app.Post("/api/auth/login", middlewares.LoginRateLimiter(), authCtl.Login)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	quizroute.QuizUserRoutes(public, db)
	subroute.SubmissionUserRoutes(public, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a", authMiddleware.AdminOnly())
	subroute.SubmissionAdminRoutes(admin, db)
}
