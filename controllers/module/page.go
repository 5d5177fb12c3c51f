package moduleController

import (
	"vle/database"
	"vle/middleware"
	"vle/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePage adds a page to a module
// POST /api/modules/:moduleId/pages
func CreatePage(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(uint)

	var module models.Module
	if err := database.Database.Db.Where("id = ?", moduleID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if !canManageModule(user, &module) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the module instructor can do this!", nil)
	}

	reqData, ok := c.Locals("validatedPage").(*struct {
		Title string `json:"title" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := models.ModulePage{
		ModuleID: moduleID,
		Title:    reqData.Title,
	}

	if err := database.Database.Db.Create(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create page!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Page created successfully!", page)
}

// UpdatePage renames a page
// PUT /api/pages/:pageId
func UpdatePage(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedPage").(*struct {
		Title string `json:"title" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page.Title = reqData.Title
	if err := database.Database.Db.Save(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update page!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Page updated successfully!", page)
}

// DeletePage removes a page, its content and their submissions
// DELETE /api/pages/:pageId
func DeletePage(c *fiber.Ctx) error {
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

	if err := DeletePageTree(database.Database.Db, currentBlob(), &page); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete page!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Page deleted successfully!", nil)
}

// GetModulePages lists a module's pages with pagination
// GET /api/modules/:moduleId/pages
func GetModulePages(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	var module models.Module
	if err := database.Database.Db.Where("id = ?", moduleID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	db := database.Database.Db.Model(&models.ModulePage{}).Where("module_id = ?", moduleID)

	var total int64
	db.Count(&total)

	query := database.Database.Db.Where("module_id = ?", moduleID).Order("created_at asc")
	page, limit := 1, int(total)
	if ok {
		page = *reqData.Page
		limit = *reqData.Limit
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var pages []models.ModulePage
	if err := query.Find(&pages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pages!", nil)
	}

	response := map[string]interface{}{
		"pages": pages,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pages fetched successfully!", response)
}
