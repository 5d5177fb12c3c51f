package moduleController

import (
	"vle/database"
	"vle/middleware"
	"vle/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// canManageModule reports whether the user may manage the module: its
// instructor, or an admin.
func canManageModule(user *models.User, module *models.Module) bool {
	return user.Role == models.RoleAdmin || module.InstructorID == user.ID
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, false
	}
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// CreateModule creates a new module owned by an instructor
// POST /api/modules
func CreateModule(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Name         string  `json:"name" validate:"required,min=3"`
		Description  string  `json:"description"`
		Price        float64 `json:"price" validate:"gte=0"`
		InstructorID uint    `json:"instructor_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Instructors own their modules; admins may create on behalf of one
	instructorID := user.ID
	if user.Role == models.RoleAdmin && reqData.InstructorID > 0 {
		var instructor models.User
		if err := database.Database.Db.
			Where("id = ? AND role = ? AND is_deleted = ?", reqData.InstructorID, models.RoleInstructor, false).
			First(&instructor).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Instructor not found!", nil)
		}
		instructorID = instructor.ID
	}

	module := models.Module{
		Name:         reqData.Name,
		Description:  reqData.Description,
		Price:        reqData.Price,
		InstructorID: instructorID,
		CreatorID:    user.ID,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule updates a module's name, description and price. The
// instructor association is immutable after creation.
// PUT /api/modules/:moduleId
func UpdateModule(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedModule").(*struct {
		Name         string  `json:"name" validate:"required,min=3"`
		Description  string  `json:"description"`
		Price        float64 `json:"price" validate:"gte=0"`
		InstructorID uint    `json:"instructor_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module.Name = reqData.Name
	module.Description = reqData.Description
	module.Price = reqData.Price

	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule removes a module and everything under it
// DELETE /api/modules/:moduleId
func DeleteModule(c *fiber.Ctx) error {
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

	if err := DeleteModuleTree(database.Database.Db, currentBlob(), &module); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// GetModules lists modules with pagination
// GET /api/modules
func GetModules(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	db := database.Database.Db.Model(&models.Module{})

	var total int64
	db.Count(&total)

	var modules []models.Module
	query := database.Database.Db.Order("created_at desc")
	page, limit := 1, int(total)
	if ok {
		page = *reqData.Page
		limit = *reqData.Limit
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	if err := query.Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	response := map[string]interface{}{
		"modules": modules,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", response)
}

// GetModuleDetails fetches a single module
// GET /api/modules/:moduleId
func GetModuleDetails(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	var module models.Module
	if err := database.Database.Db.Where("id = ?", moduleID).First(&module).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", module)
}
