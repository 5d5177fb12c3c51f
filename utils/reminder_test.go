package utils

import (
	"errors"
	"testing"
	"time"
	"vle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordedSend struct {
	email           string
	assignmentTitle string
	moduleName      string
}

func setupReminderDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Module{},
		&models.ModulePage{},
		&models.ModuleContent{},
		&models.ModuleSubmission{},
		&models.Enrollment{},
	)
	require.NoError(t, err)

	return db
}

// seedDeadlineScenario: one upload assignment due tomorrow 23:59, two
// enrolled students, the second already submitted.
func seedDeadlineScenario(t *testing.T, db *gorm.DB, runTime time.Time) *models.ModuleContent {
	module := models.Module{Name: "Networks", InstructorID: 1, CreatorID: 1}
	require.NoError(t, db.Create(&module).Error)

	page := models.ModulePage{ModuleID: module.ID, Title: "Week 3"}
	require.NoError(t, db.Create(&page).Error)

	deadline := time.Date(runTime.Year(), runTime.Month(), runTime.Day(), 23, 59, 0, 0, runTime.Location()).AddDate(0, 0, 1)
	content := models.ModuleContent{
		PageID:   page.ID,
		Title:    "Lab report",
		IsUpload: true,
		Deadline: &deadline,
	}
	require.NoError(t, db.Create(&content).Error)

	students := []models.User{
		{Name: "Ava", Email: "ava@example.com", Role: models.RoleStudent, Password: "x"},
		{Name: "Ben", Email: "ben@example.com", Role: models.RoleStudent, Password: "x"},
	}
	for i := range students {
		require.NoError(t, db.Create(&students[i]).Error)
		require.NoError(t, db.Create(&models.Enrollment{
			UserID:       students[i].ID,
			ModuleID:     module.ID,
			EnrolledDate: time.Now(),
		}).Error)
	}

	require.NoError(t, db.Create(&models.ModuleSubmission{
		ContentID:     content.ID,
		UserID:        students[1].ID,
		FileName:      "report.pdf",
		SubmittedDate: time.Now(),
	}).Error)

	return &content
}

func TestProcessDeadlineReminders(t *testing.T) {
	db := setupReminderDB(t)
	runTime := time.Now()
	seedDeadlineScenario(t, db, runTime)

	var sends []recordedSend
	sender := func(email, name, assignmentTitle, moduleName string, deadline time.Time) error {
		sends = append(sends, recordedSend{email, assignmentTitle, moduleName})
		return nil
	}

	sent, err := ProcessDeadlineReminders(db, runTime, AllowAll, sender)
	require.NoError(t, err)

	// Only the non-submitter gets a reminder
	assert.Equal(t, 1, sent)
	require.Len(t, sends, 1)
	assert.Equal(t, "ava@example.com", sends[0].email)
	assert.Equal(t, "Lab report", sends[0].assignmentTitle)
	assert.Equal(t, "Networks", sends[0].moduleName)
}

func TestProcessDeadlineRemindersAllowList(t *testing.T) {
	db := setupReminderDB(t)
	runTime := time.Now()
	seedDeadlineScenario(t, db, runTime)

	var sends []recordedSend
	sender := func(email, name, assignmentTitle, moduleName string, deadline time.Time) error {
		sends = append(sends, recordedSend{email, assignmentTitle, moduleName})
		return nil
	}

	// The would-be recipient is not allow-listed
	sent, err := ProcessDeadlineReminders(db, runTime, AllowListFilter([]string{"someone-else@example.com"}), sender)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, sends)

	sent, err = ProcessDeadlineReminders(db, runTime, AllowListFilter([]string{"AVA@example.com"}), sender)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestProcessDeadlineRemindersIgnoresOtherDays(t *testing.T) {
	db := setupReminderDB(t)
	runTime := time.Now()
	content := seedDeadlineScenario(t, db, runTime)

	// Push the deadline two days out; tomorrow's window no longer covers it
	later := content.Deadline.AddDate(0, 0, 1)
	require.NoError(t, db.Model(content).Update("deadline", later).Error)

	sent, err := ProcessDeadlineReminders(db, runTime, AllowAll, func(email, name, assignmentTitle, moduleName string, deadline time.Time) error {
		t.Fatalf("unexpected send to %s", email)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestProcessDeadlineRemindersStopsOnSendError(t *testing.T) {
	db := setupReminderDB(t)
	runTime := time.Now()
	seedDeadlineScenario(t, db, runTime)

	sendErr := errors.New("smtp down")
	sent, err := ProcessDeadlineReminders(db, runTime, AllowAll, func(email, name, assignmentTitle, moduleName string, deadline time.Time) error {
		return sendErr
	})
	assert.ErrorIs(t, err, sendErr)
	assert.Equal(t, 0, sent)
}

func TestAllowListFilter(t *testing.T) {
	assert.True(t, AllowAll("anyone@example.com"))

	// Empty list means no gating
	open := AllowListFilter(nil)
	assert.True(t, open("anyone@example.com"))

	gated := AllowListFilter([]string{"Ava@Example.com"})
	assert.True(t, gated("ava@example.com"))
	assert.True(t, gated("AVA@EXAMPLE.COM"))
	assert.False(t, gated("ben@example.com"))
}
