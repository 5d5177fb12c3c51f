package notificationController

import (
	"vle/database"
	"vle/middleware"
	"vle/models"
	"vle/realtime"

	enrollmentController "vle/controllers/enrollment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SendGradeNotification persists one notification per enrolled user and then
// pushes a live copy to the module's channel. The two deliveries are
// independent: a failed push never rolls back the rows.
// POST /api/notifications/send-grade-notification
func SendGradeNotification(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedNotification").(*struct {
		ModuleID    uint   `json:"moduleId" validate:"required"`
		Message     string `json:"message" validate:"required"`
		ModuleTitle string `json:"moduleTitle"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := db.Where("id = ?", reqData.ModuleID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	role, _ := c.Locals("role").(string)
	if module.InstructorID != userID && role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the module instructor can do this!", nil)
	}

	count, err := enrollmentController.CountForModule(db, module.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send notification!", nil)
	}
	if count == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No users enrolled in this module!", nil)
	}

	created, err := CreateGradeNotifications(db, &module, reqData.Message, reqData.ModuleTitle)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send notification!", nil)
	}

	// Best-effort live push, decoupled from persistence
	if realtime.Live != nil {
		title := reqData.ModuleTitle
		if title == "" {
			title = module.Name
		}
		realtime.Live.PublishGrade(module.ID, reqData.Message, title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification sent successfully!", fiber.Map{
		"recipients": created,
	})
}

// SendAdminNotification fans a message out to every admin user
// POST /api/notifications/send-admin-notification
func SendAdminNotification(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedNotification").(*struct {
		Message string `json:"message" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	created, err := CreateAdminNotifications(database.Database.Db, reqData.Message)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send notification!", nil)
	}

	if realtime.Live != nil {
		realtime.Live.PublishAdmin(reqData.Message)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification sent successfully!", fiber.Map{
		"recipients": created,
	})
}

// GetMyNotifications lists the caller's notifications, newest first
// GET /api/notifications
func GetMyNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var notifications []models.Notification
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}

// MarkRead marks one of the caller's notifications as read. Marking an
// already-read row succeeds again.
// POST /api/notifications/:notificationId/read
func MarkRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(uint)

	db := database.Database.Db

	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if !notification.IsRead {
		if err := db.Model(&notification).Update("is_read", true).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notification!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", nil)
}

// MarkAllRead marks every unread notification for the caller
// POST /api/notifications/read-all
func MarkAllRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	marked, err := MarkAllReadForUser(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications marked as read!", fiber.Map{
		"marked": marked,
	})
}

// MarkAllReadForUser flips every unread row; reports whether anything changed
func MarkAllReadForUser(db *gorm.DB, userID uint) (bool, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkReadByContent reconciles a client-held copy of a live-pushed
// notification with its persisted row and marks it read.
// POST /api/notifications/mark-read-by-content
func MarkReadByContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedNotification").(*struct {
		ModuleID uint   `json:"moduleId" validate:"required"`
		Message  string `json:"message" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	notification, err := DefaultMatcher.Match(db, userID, reqData.ModuleID, reqData.Message)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No matching notification found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notification!", nil)
	}

	if err := db.Model(notification).Update("is_read", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", notification)
}

// DeleteNotification removes one of the caller's notifications
// DELETE /api/notifications/:notificationId
func DeleteNotification(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(uint)

	db := database.Database.Db

	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if err := db.Unscoped().Delete(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted successfully!", nil)
}

// DeleteAllNotifications removes every notification for the caller
// DELETE /api/notifications
func DeleteAllNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	result := database.Database.Db.Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications deleted successfully!", fiber.Map{
		"deleted": result.RowsAffected,
	})
}
