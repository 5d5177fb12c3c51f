package moduleController

import (
	"mime/multipart"
	"time"
	"vle/database"
	"vle/middleware"
	"vle/models"

	enrollmentController "vle/controllers/enrollment"

	"github.com/gofiber/fiber/v2"
)

// signedReadExpiry is how long stored-file read URLs stay valid. Clients
// keep the URL on the row, so it is effectively permanent.
const signedReadExpiry = 10 * 365 * 24 * time.Hour

// ContentForm is the validated multipart body for content create/update
type ContentForm struct {
	Title       string
	Description string
	IsLink      bool
	IsUpload    bool
	LinkURL     string
	Deadline    *time.Time
	File        *multipart.FileHeader
}

// CreateContent adds a content item to a page. The body is multipart: a
// link, an uploaded file, or an upload assignment with an optional deadline.
// POST /api/pages/:pageId/content
func CreateContent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pageID := c.Locals("pageID").(uint)

	var page models.ModulePage
	if err := database.Database.Db.Preload("Module").Where("id = ?", pageID).First(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Page not found!", nil)
	}

	if !canManageModule(user, &page.Module) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the module instructor can do this!", nil)
	}

	reqData, ok := c.Locals("validatedContent").(*ContentForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	content := models.ModuleContent{
		PageID:      pageID,
		Title:       reqData.Title,
		Description: reqData.Description,
		IsLink:      reqData.IsLink,
		IsUpload:    reqData.IsUpload,
		LinkURL:     reqData.LinkURL,
		Deadline:    reqData.Deadline,
	}

	if reqData.File != nil {
		path, err := currentBlob().Upload(reqData.File, "content")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
		}
		url, err := currentBlob().SignedURL(path, signedReadExpiry)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
		}
		content.BlobPath = path
		content.FileURL = url
		content.FileType = reqData.File.Header.Get("Content-Type")
	}

	if err := database.Database.Db.Create(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// UpdateContent edits a content item's fields and optionally replaces its file
// PUT /api/content/:contentId
func UpdateContent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(uint)

	var content models.ModuleContent
	if err := database.Database.Db.Preload("Page.Module").Where("id = ?", contentID).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if !canManageModule(user, &content.Page.Module) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the module instructor can do this!", nil)
	}

	reqData, ok := c.Locals("validatedContent").(*ContentForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	content.Title = reqData.Title
	content.Description = reqData.Description
	content.IsLink = reqData.IsLink
	content.IsUpload = reqData.IsUpload
	content.LinkURL = reqData.LinkURL
	content.Deadline = reqData.Deadline

	if reqData.File != nil {
		// Replace the stored file; old blob goes first
		if content.BlobPath != "" {
			currentBlob().Delete(content.BlobPath)
		}
		path, err := currentBlob().Upload(reqData.File, "content")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
		}
		url, err := currentBlob().SignedURL(path, signedReadExpiry)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
		}
		content.BlobPath = path
		content.FileURL = url
		content.FileType = reqData.File.Header.Get("Content-Type")
	}

	if err := database.Database.Db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", content)
}

// DeleteContent removes a content item, its blob and its submissions
// DELETE /api/content/:contentId
func DeleteContent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(uint)

	var content models.ModuleContent
	if err := database.Database.Db.Preload("Page.Module").Where("id = ?", contentID).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if !canManageModule(user, &content.Page.Module) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the module instructor can do this!", nil)
	}

	if err := DeleteContentTree(database.Database.Db, currentBlob(), &content); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// GetPageContent lists a page's content for enrolled users and module staff
// GET /api/pages/:pageId/content
func GetPageContent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pageID := c.Locals("pageID").(uint)

	var page models.ModulePage
	if err := database.Database.Db.Preload("Module").Where("id = ?", pageID).First(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Page not found!", nil)
	}

	if !canManageModule(user, &page.Module) {
		enrolled, err := enrollmentController.IsEnrolled(database.Database.Db, user.ID, page.ModuleID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
		}
		if !enrolled {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enrollment required to view this content!", nil)
		}
	}

	var contents []models.ModuleContent
	if err := database.Database.Db.Where("page_id = ?", pageID).Order("created_at asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", contents)
}
