package notificationController

import (
	"testing"
	"vle/models"

	enrollmentController "vle/controllers/enrollment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Module{},
		&models.Enrollment{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

func createModule(t *testing.T, db *gorm.DB) *models.Module {
	module := models.Module{Name: "Databases 101", InstructorID: 1, CreatorID: 1}
	require.NoError(t, db.Create(&module).Error)
	return &module
}

func TestCreateGradeNotificationsNoRecipients(t *testing.T) {
	db := setupTestDB(t)
	module := createModule(t, db)

	count, err := CreateGradeNotifications(db, module, "Grades are out", "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var rows int64
	db.Model(&models.Notification{}).Count(&rows)
	assert.Equal(t, int64(0), rows)
}

func TestCreateGradeNotificationsFanOut(t *testing.T) {
	db := setupTestDB(t)
	module := createModule(t, db)

	for userID := uint(10); userID <= 12; userID++ {
		_, err := enrollmentController.EnrollUser(db, userID, module.ID)
		require.NoError(t, err)
	}

	count, err := CreateGradeNotifications(db, module, "Grades are out", "Databases 101")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 3)

	recipients := make([]uint, 0, 3)
	for _, n := range notifications {
		recipients = append(recipients, n.UserID)
		assert.Equal(t, "Grades are out", n.Message)
		assert.Equal(t, models.NotificationGrade, n.Type)
		require.NotNil(t, n.ModuleID)
		assert.Equal(t, module.ID, *n.ModuleID)
		assert.False(t, n.IsRead)
	}
	assert.ElementsMatch(t, []uint{10, 11, 12}, recipients)
}

func TestCreateGradeNotificationsDefaultsTitle(t *testing.T) {
	db := setupTestDB(t)
	module := createModule(t, db)
	_, err := enrollmentController.EnrollUser(db, 10, module.ID)
	require.NoError(t, err)

	_, err = CreateGradeNotifications(db, module, "Grades are out", "")
	require.NoError(t, err)

	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, module.Name, notification.ModuleTitle)
}

func TestCreateAdminNotifications(t *testing.T) {
	db := setupTestDB(t)

	count, err := CreateAdminNotifications(db, "Disk almost full")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	admins := []models.User{
		{Name: "Ada", Email: "ada@example.com", Role: models.RoleAdmin, Password: "x"},
		{Name: "Bob", Email: "bob@example.com", Role: models.RoleAdmin, Password: "x"},
		{Name: "Cleo", Email: "cleo@example.com", Role: models.RoleStudent, Password: "x"},
	}
	for i := range admins {
		require.NoError(t, db.Create(&admins[i]).Error)
	}

	count, err = CreateAdminNotifications(db, "Disk almost full")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var rows []models.Notification
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, n := range rows {
		assert.Equal(t, models.NotificationAdmin, n.Type)
		assert.Nil(t, n.ModuleID)
	}
}

func seedNotification(t *testing.T, db *gorm.DB, userID, moduleID uint, message string) *models.Notification {
	notification := models.Notification{
		Message:     message,
		ModuleID:    &moduleID,
		ModuleTitle: "Databases 101",
		UserID:      userID,
		Type:        models.NotificationGrade,
	}
	require.NoError(t, db.Create(&notification).Error)
	return &notification
}

func TestMatcherExact(t *testing.T) {
	db := setupTestDB(t)
	stored := seedNotification(t, db, 7, 3, "Your grade for X is 90")

	found, err := DefaultMatcher.Match(db, 7, 3, "Your grade for X is 90")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, found.ID)
}

func TestMatcherTruncatedPrefix(t *testing.T) {
	db := setupTestDB(t)
	stored := seedNotification(t, db, 7, 3, "Your grade for X is 90")

	// 15 characters, a prefix of the stored message
	found, err := DefaultMatcher.Match(db, 7, 3, "Your grade for ")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, found.ID)
}

func TestMatcherLongerMessageContainingStored(t *testing.T) {
	db := setupTestDB(t)
	stored := seedNotification(t, db, 7, 3, "Grades posted")

	found, err := DefaultMatcher.Match(db, 7, 3, "[Databases 101] Grades posted today")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, found.ID)
}

func TestMatcherRejectsUnrelated(t *testing.T) {
	db := setupTestDB(t)
	seedNotification(t, db, 7, 3, "Your grade for X is 90")

	_, err := DefaultMatcher.Match(db, 7, 3, "zzqqwwrr")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMatcherSkipsRead(t *testing.T) {
	db := setupTestDB(t)
	stored := seedNotification(t, db, 7, 3, "Your grade for X is 90")
	require.NoError(t, db.Model(stored).Update("is_read", true).Error)

	_, err := DefaultMatcher.Match(db, 7, 3, "Your grade for X is 90")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMatcherScopedToUserAndModule(t *testing.T) {
	db := setupTestDB(t)
	seedNotification(t, db, 7, 3, "Your grade for X is 90")

	_, err := DefaultMatcher.Match(db, 8, 3, "Your grade for X is 90")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = DefaultMatcher.Match(db, 7, 4, "Your grade for X is 90")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkAllReadForUser(t *testing.T) {
	db := setupTestDB(t)
	seedNotification(t, db, 7, 3, "one")
	seedNotification(t, db, 7, 3, "two")
	seedNotification(t, db, 8, 3, "other user")

	marked, err := MarkAllReadForUser(db, 7)
	require.NoError(t, err)
	assert.True(t, marked)

	var unread int64
	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", 7, false).Count(&unread)
	assert.Equal(t, int64(0), unread)

	// Second pass has nothing left to mark
	marked, err = MarkAllReadForUser(db, 7)
	require.NoError(t, err)
	assert.False(t, marked)

	db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", 8, false).Count(&unread)
	assert.Equal(t, int64(1), unread)
}
