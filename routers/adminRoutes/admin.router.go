package adminRoutes

import (
	adminController "vle/controllers/admin"
	"vle/middleware"
	"vle/models"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up operational admin routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin")

	adminGroup.Post("/reminders/run", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), adminController.RunReminders)
}
