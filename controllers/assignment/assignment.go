package assignmentController

import (
	"errors"
	"mime/multipart"
	"time"
	"vle/database"
	"vle/middleware"
	"vle/models"
	"vle/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// signedReadExpiry matches the content store: effectively permanent read URLs
const signedReadExpiry = 10 * 365 * 24 * time.Hour

// ErrNotUploadContent is returned when the target content is not an assignment
var ErrNotUploadContent = errors.New("content does not accept submissions")

// ReplaceSubmission stores a submission for (content, user). The write is a
// single ON CONFLICT upsert on the (content_id, user_id) unique index, so two
// concurrent submits cannot both insert; the loser overwrites the winner.
// A replaced submission loses any grade and feedback, and its old blob is
// deleted after the row lands.
func ReplaceSubmission(db *gorm.DB, blob storage.BlobStore, content *models.ModuleContent, userID uint, file *multipart.FileHeader) (*models.ModuleSubmission, error) {
	if !content.IsUpload {
		return nil, ErrNotUploadContent
	}

	var oldBlobPath string
	var existing models.ModuleSubmission
	if err := db.Where("content_id = ? AND user_id = ?", content.ID, userID).First(&existing).Error; err == nil {
		oldBlobPath = existing.BlobPath
	}

	path, err := blob.Upload(file, "submissions")
	if err != nil {
		return nil, err
	}
	url, err := blob.SignedURL(path, signedReadExpiry)
	if err != nil {
		return nil, err
	}

	submission := models.ModuleSubmission{
		ContentID:     content.ID,
		UserID:        userID,
		FileName:      file.Filename,
		FileURL:       url,
		BlobPath:      path,
		SubmittedDate: time.Now(),
	}

	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"file_name":      submission.FileName,
			"file_url":       submission.FileURL,
			"blob_path":      submission.BlobPath,
			"submitted_date": submission.SubmittedDate,
			"grade":          nil,
			"feedback":       nil,
			"updated_at":     time.Now(),
		}),
	}).Create(&submission).Error
	if err != nil {
		blob.Delete(path)
		return nil, err
	}

	if oldBlobPath != "" && oldBlobPath != path {
		blob.Delete(oldBlobPath)
	}

	// The upsert path does not refresh the struct's ID
	var saved models.ModuleSubmission
	if err := db.Where("content_id = ? AND user_id = ?", content.ID, userID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// SubmitAssignment stores the caller's file for an upload-type content item
// POST /api/assignments
func SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(uint)

	file, err := c.FormFile("file")
	if err != nil || file == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A file is required!", nil)
	}

	db := database.Database.Db

	var content models.ModuleContent
	if err := db.Where("id = ?", contentID).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	submission, err := ReplaceSubmission(db, storage.Blob, &content, userID, file)
	if err != nil {
		if errors.Is(err, ErrNotUploadContent) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content does not accept submissions!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

// GetMySubmission fetches the caller's submission for a content item. A row
// without a completed upload counts as no submission.
// GET /api/assignments/:contentId
func GetMySubmission(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(uint)

	var submission models.ModuleSubmission
	err := database.Database.Db.
		Where("content_id = ? AND user_id = ?", contentID, userID).
		First(&submission).Error
	if err != nil || submission.FileName == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No submission found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully!", submission)
}

// DeleteMySubmission removes the caller's submission and its stored file
// DELETE /api/assignments/:contentId
func DeleteMySubmission(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(uint)

	db := database.Database.Db

	var submission models.ModuleSubmission
	if err := db.Where("content_id = ? AND user_id = ?", contentID, userID).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No submission found!", nil)
	}

	if submission.BlobPath != "" {
		storage.Blob.Delete(submission.BlobPath)
	}
	if err := db.Unscoped().Delete(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission deleted successfully!", nil)
}
