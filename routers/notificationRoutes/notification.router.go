package notificationRoutes

import (
	notificationController "vle/controllers/notification"
	"vle/middleware"
	"vle/models"
	notificationValidator "vle/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up persisted-notification routes
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/api/notifications")

	notificationGroup.Post("/send-grade-notification", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor, models.RoleAdmin), notificationValidator.GradeBroadcastBody(), notificationController.SendGradeNotification)
	notificationGroup.Post("/send-admin-notification", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), notificationValidator.AdminBroadcastBody(), notificationController.SendAdminNotification)

	notificationGroup.Get("/", middleware.JWTMiddleware, notificationController.GetMyNotifications)
	notificationGroup.Post("/read-all", middleware.JWTMiddleware, notificationController.MarkAllRead)
	notificationGroup.Post("/mark-read-by-content", middleware.JWTMiddleware, notificationValidator.MarkByContentBody(), notificationController.MarkReadByContent)
	notificationGroup.Post("/:notificationId/read", middleware.JWTMiddleware, notificationValidator.NotificationID(), notificationController.MarkRead)
	notificationGroup.Delete("/:notificationId", middleware.JWTMiddleware, notificationValidator.NotificationID(), notificationController.DeleteNotification)
	notificationGroup.Delete("/", middleware.JWTMiddleware, notificationController.DeleteAllNotifications)
}
