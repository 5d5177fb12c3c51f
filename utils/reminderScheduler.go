package utils

import (
	"log"
	"time"
	"vle/config"
	"vle/database"
	"vle/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderSender delivers one deadline reminder
type ReminderSender func(email, name, assignmentTitle, moduleName string, deadline time.Time) error

// InitializeReminderScheduler sets up the daily deadline-reminder job
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing reminder scheduler...")

	c := cron.New()

	// Run daily at 6 AM server time
	c.AddFunc("0 6 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily deadline check...")
		RunDeadlineReminders()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Reminder scheduler started - runs daily at 6 AM")
}

// RunDeadlineReminders executes one reminder pass with the configured
// allow-list and mailer. Errors are logged once at the top level; a failed
// run is not retried, the next day's run covers whatever is still due.
func RunDeadlineReminders() {
	sent, err := ProcessDeadlineReminders(
		database.Database.Db,
		time.Now(),
		AllowListFilter(config.AppConfig.ReminderAllowList),
		SendDeadlineReminderEmail,
	)
	if err != nil {
		log.Printf("[REMINDER-SCHEDULER] Reminder run failed after %d emails: %v", sent, err)
		return
	}
	log.Printf("[REMINDER-SCHEDULER] Reminder run complete, %d emails sent", sent)
}

// ProcessDeadlineReminders finds upload assignments due tomorrow, joins the
// enrolled users of each owning module, skips anyone who already submitted
// and sends one reminder per remaining pair. Sends are sequential; the first
// send error aborts the rest of the run.
func ProcessDeadlineReminders(db *gorm.DB, runTime time.Time, allowed RecipientFilter, send ReminderSender) (int, error) {
	tomorrow := now.New(runTime.AddDate(0, 0, 1))
	dayStart := tomorrow.BeginningOfDay()
	dayEnd := tomorrow.EndOfDay()

	var assignments []models.ModuleContent
	err := db.Preload("Page.Module").
		Where("is_upload = ? AND deadline >= ? AND deadline <= ?", true, dayStart, dayEnd).
		Find(&assignments).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range assignments {
		assignment := &assignments[i]

		var userIDs []uint
		err := db.Model(&models.Enrollment{}).
			Where("module_id = ?", assignment.Page.ModuleID).
			Pluck("user_id", &userIDs).Error
		if err != nil {
			return sent, err
		}
		if len(userIDs) == 0 {
			continue
		}

		var submittedIDs []uint
		err = db.Model(&models.ModuleSubmission{}).
			Where("content_id = ? AND user_id IN ?", assignment.ID, userIDs).
			Pluck("user_id", &submittedIDs).Error
		if err != nil {
			return sent, err
		}

		submitted := make(map[uint]bool, len(submittedIDs))
		for _, id := range submittedIDs {
			submitted[id] = true
		}

		for _, userID := range userIDs {
			if submitted[userID] {
				continue
			}

			var student models.User
			if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&student).Error; err != nil {
				log.Printf("[REMINDER-SCHEDULER] Error fetching user %d: %v", userID, err)
				continue
			}

			if !allowed(student.Email) {
				continue
			}

			moduleName := assignment.Page.Module.Name
			if err := send(student.Email, student.Name, assignment.Title, moduleName, *assignment.Deadline); err != nil {
				return sent, err
			}
			sent++
			log.Printf("[REMINDER-SCHEDULER] Sent reminder for content %d to %s", assignment.ID, student.Email)
		}
	}

	return sent, nil
}
