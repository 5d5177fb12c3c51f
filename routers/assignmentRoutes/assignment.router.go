package assignmentRoutes

import (
	assignmentController "vle/controllers/assignment"
	"vle/middleware"
	"vle/models"
	assignmentValidator "vle/validators/assignment"

	"github.com/gofiber/fiber/v2"
)

// SetupAssignmentRoutes sets up submission and grading routes
func SetupAssignmentRoutes(app *fiber.App) {
	assignmentGroup := app.Group("/api/assignments")

	// Grades first so the literal segment wins over :contentId
	assignmentGroup.Get("/grades/:contentId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor, models.RoleAdmin), assignmentValidator.ContentID(), assignmentController.ListGrades)
	assignmentGroup.Put("/grades/:submissionId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor, models.RoleAdmin), assignmentValidator.SubmissionID(), assignmentValidator.GradeBody(), assignmentController.UpdateGrade)
	assignmentGroup.Delete("/grades/:submissionId", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor, models.RoleAdmin), assignmentValidator.SubmissionID(), assignmentController.RemoveGrade)

	assignmentGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), assignmentValidator.SubmitBody(), assignmentController.SubmitAssignment)
	assignmentGroup.Get("/:contentId", middleware.JWTMiddleware, assignmentValidator.ContentID(), assignmentController.GetMySubmission)
	assignmentGroup.Delete("/:contentId", middleware.JWTMiddleware, assignmentValidator.ContentID(), assignmentController.DeleteMySubmission)
}
