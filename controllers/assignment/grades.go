package assignmentController

import (
	"vle/database"
	"vle/middleware"
	"vle/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetGrade records a grade and feedback on a submission
func SetGrade(db *gorm.DB, submissionID uint, grade float64, feedback string) (*models.ModuleSubmission, error) {
	var submission models.ModuleSubmission
	if err := db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		return nil, err
	}

	submission.Grade = &grade
	submission.Feedback = &feedback
	if err := db.Save(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// ClearGrade resets grade and feedback together; never one without the other
func ClearGrade(db *gorm.DB, submissionID uint) (*models.ModuleSubmission, error) {
	var submission models.ModuleSubmission
	if err := db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		return nil, err
	}

	err := db.Model(&submission).Updates(map[string]interface{}{
		"grade":    nil,
		"feedback": nil,
	}).Error
	if err != nil {
		return nil, err
	}
	submission.Grade = nil
	submission.Feedback = nil
	return &submission, nil
}

// GradeRow is a submission enriched with the submitter's identity
type GradeRow struct {
	models.ModuleSubmission
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
}

// moduleInstructorForContent resolves the content's owning module instructor
func moduleInstructorForContent(db *gorm.DB, contentID uint) (*models.ModuleContent, uint, error) {
	var content models.ModuleContent
	if err := db.Preload("Page.Module").Where("id = ?", contentID).First(&content).Error; err != nil {
		return nil, 0, err
	}
	return &content, content.Page.Module.InstructorID, nil
}

// ListGrades lists all submissions for a content item with student details
// GET /api/assignments/grades/:contentId
func ListGrades(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(uint)

	db := database.Database.Db

	_, instructorID, err := moduleInstructorForContent(db, contentID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	role, _ := c.Locals("role").(string)
	if instructorID != userID && role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the module instructor can do this!", nil)
	}

	var submissions []models.ModuleSubmission
	if err := db.Where("content_id = ?", contentID).Order("submitted_date desc").Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grades!", nil)
	}

	// Per-row lookup is fine at module scale
	rows := make([]GradeRow, 0, len(submissions))
	for _, submission := range submissions {
		var student models.User
		db.Where("id = ?", submission.UserID).First(&student)
		rows = append(rows, GradeRow{
			ModuleSubmission: submission,
			StudentName:      student.Name,
			StudentEmail:     student.Email,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grades fetched successfully!", rows)
}

// UpdateGrade sets grade and feedback on a submission
// PUT /api/assignments/grades/:submissionId
func UpdateGrade(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(uint)

	reqData, ok := c.Locals("validatedGrade").(*struct {
		Grade    *float64 `json:"grade" validate:"required"`
		Feedback string   `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var submission models.ModuleSubmission
	if err := db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	_, instructorID, err := moduleInstructorForContent(db, submission.ContentID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	role, _ := c.Locals("role").(string)
	if instructorID != userID && role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the module instructor can do this!", nil)
	}

	graded, err := SetGrade(db, submissionID, *reqData.Grade, reqData.Feedback)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update grade!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grade updated successfully!", graded)
}

// RemoveGrade clears grade and feedback from a submission
// DELETE /api/assignments/grades/:submissionId
func RemoveGrade(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID := c.Locals("submissionID").(uint)

	db := database.Database.Db

	var submission models.ModuleSubmission
	if err := db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	_, instructorID, err := moduleInstructorForContent(db, submission.ContentID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	role, _ := c.Locals("role").(string)
	if instructorID != userID && role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the module instructor can do this!", nil)
	}

	cleared, err := ClearGrade(db, submissionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear grade!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grade cleared successfully!", cleared)
}
