package adminController

import (
	"time"
	"vle/config"
	"vle/database"
	"vle/middleware"
	"vle/utils"

	"github.com/gofiber/fiber/v2"
)

// RunReminders triggers a deadline-reminder pass outside the daily schedule.
// `?async=true` enqueues it and returns immediately.
// POST /api/admin/reminders/run
func RunReminders(c *fiber.Ctx) error {
	if c.Query("async") == "true" {
		go utils.RunDeadlineReminders()
		return middleware.JsonResponse(c, fiber.StatusAccepted, true, "Reminder run enqueued.", nil)
	}

	sent, err := utils.ProcessDeadlineReminders(
		database.Database.Db,
		time.Now(),
		utils.AllowListFilter(config.AppConfig.ReminderAllowList),
		utils.SendDeadlineReminderEmail,
	)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Reminder run failed!", fiber.Map{
			"sent": sent,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reminder run complete.", fiber.Map{
		"sent": sent,
	})
}
