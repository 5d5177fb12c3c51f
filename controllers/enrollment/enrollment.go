package enrollmentController

import (
	"errors"
	"time"
	"vle/database"
	"vle/middleware"
	"vle/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrAlreadyEnrolled is returned when the (user, module) pair already exists
var ErrAlreadyEnrolled = errors.New("user already enrolled in this module")

// EnrollUser records an enrollment. The existence pre-check answers the
// common case; the unique index backs it up under concurrency.
func EnrollUser(db *gorm.DB, userID, moduleID uint) (*models.Enrollment, error) {
	var existing models.Enrollment
	if err := db.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := models.Enrollment{
		UserID:       userID,
		ModuleID:     moduleID,
		EnrolledDate: time.Now(),
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// IsEnrolled reports whether the user is enrolled in the module
func IsEnrolled(db *gorm.DB, userID, moduleID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Enrollment{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Count(&count).Error
	return count > 0, err
}

// CountForModule returns the number of enrolled users for a module
func CountForModule(db *gorm.DB, moduleID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Enrollment{}).Where("module_id = ?", moduleID).Count(&count).Error
	return count, err
}

// ListEnrolledUserIDs returns the user ids enrolled in a module
func ListEnrolledUserIDs(db *gorm.DB, moduleID uint) ([]uint, error) {
	var userIDs []uint
	err := db.Model(&models.Enrollment{}).
		Where("module_id = ?", moduleID).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// EnrollInModule enrolls the caller in a module
// POST /api/enrolments/:moduleId
func EnrollInModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(uint)

	db := database.Database.Db

	// Check if module exists
	var module models.Module
	if err := db.Where("id = ?", moduleID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	enrollment, err := EnrollUser(db, userID, moduleID)
	if err != nil {
		if errors.Is(err, ErrAlreadyEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User already enrolled in this module!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in module successfully!", enrollment)
}

// GetEnrollmentStatus reports whether the caller is enrolled in a module
// GET /api/enrolments/:moduleId/status
func GetEnrollmentStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(uint)

	enrolled, err := IsEnrolled(database.Database.Db, userID, moduleID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status fetched successfully!", fiber.Map{
		"enrolled": enrolled,
	})
}

// GetMyEnrollments lists the caller's enrollments with module details
// GET /api/enrolments
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Preload("Module").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
