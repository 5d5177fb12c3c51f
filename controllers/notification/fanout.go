package notificationController

import (
	"vle/models"

	enrollmentController "vle/controllers/enrollment"

	"gorm.io/gorm"
)

// CreateGradeNotifications inserts one GRADE notification per enrolled user
// of the module. Returns how many rows were created; zero recipients is a
// no-op, not an error.
func CreateGradeNotifications(db *gorm.DB, module *models.Module, message, moduleTitle string) (int, error) {
	userIDs, err := enrollmentController.ListEnrolledUserIDs(db, module.ID)
	if err != nil {
		return 0, err
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	if moduleTitle == "" {
		moduleTitle = module.Name
	}

	moduleID := module.ID
	rows := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, models.Notification{
			Message:     message,
			ModuleID:    &moduleID,
			ModuleTitle: moduleTitle,
			UserID:      userID,
			Type:        models.NotificationGrade,
		})
	}

	if err := db.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// CreateAdminNotifications inserts one ADMIN notification per admin user.
// No admins means no rows and no error.
func CreateAdminNotifications(db *gorm.DB, message string) (int, error) {
	var adminIDs []uint
	err := db.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", models.RoleAdmin, false).
		Pluck("id", &adminIDs).Error
	if err != nil {
		return 0, err
	}
	if len(adminIDs) == 0 {
		return 0, nil
	}

	rows := make([]models.Notification, 0, len(adminIDs))
	for _, userID := range adminIDs {
		rows = append(rows, models.Notification{
			Message: message,
			UserID:  userID,
			Type:    models.NotificationAdmin,
		})
	}

	if err := db.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
