package enrollmentRoutes

import (
	enrollmentController "vle/controllers/enrollment"
	"vle/middleware"
	moduleValidator "vle/validators/module"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up self-enrolment routes
func SetupEnrollmentRoutes(app *fiber.App) {
	enrolGroup := app.Group("/api/enrolments")

	enrolGroup.Get("/", middleware.JWTMiddleware, enrollmentController.GetMyEnrollments)
	enrolGroup.Post("/:moduleId", middleware.JWTMiddleware, moduleValidator.ModuleID(), enrollmentController.EnrollInModule)
	enrolGroup.Get("/:moduleId/status", middleware.JWTMiddleware, moduleValidator.ModuleID(), enrollmentController.GetEnrollmentStatus)
}
