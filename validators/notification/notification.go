package notificationValidator

import (
	"strconv"
	"strings"
	"vle/middleware"
	"vle/validators"

	"github.com/gofiber/fiber/v2"
)

// NotificationID validates the notification route parameter
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("notificationId"))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Notification ID!", nil)
		}

		c.Locals("notificationID", uint(id))
		return c.Next()
	}
}

// GradeBroadcastBody validates the grade-broadcast payload
func GradeBroadcastBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID    uint   `json:"moduleId" validate:"required"`
			Message     string `json:"message" validate:"required"`
			ModuleTitle string `json:"moduleTitle"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNotification", reqData)
		return c.Next()
	}
}

// AdminBroadcastBody validates the admin-broadcast payload
func AdminBroadcastBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Message string `json:"message" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNotification", reqData)
		return c.Next()
	}
}

// MarkByContentBody validates the read-reconciliation payload
func MarkByContentBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID uint   `json:"moduleId" validate:"required"`
			Message  string `json:"message" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNotification", reqData)
		return c.Next()
	}
}
