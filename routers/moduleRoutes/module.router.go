package moduleRoutes

import (
	moduleController "vle/controllers/module"
	"vle/middleware"
	"vle/models"
	moduleValidator "vle/validators/module"

	"github.com/gofiber/fiber/v2"
)

// SetupModuleRoutes sets up module, page and content routes
func SetupModuleRoutes(app *fiber.App) {
	moduleGroup := app.Group("/api/modules")

	// Module CRUD
	moduleGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor, models.RoleAdmin), moduleValidator.ModuleBody(), moduleController.CreateModule)
	moduleGroup.Get("/", middleware.JWTMiddleware, moduleValidator.List(), moduleController.GetModules)
	moduleGroup.Get("/:moduleId", middleware.JWTMiddleware, moduleValidator.ModuleID(), moduleController.GetModuleDetails)
	moduleGroup.Put("/:moduleId", middleware.JWTMiddleware, moduleValidator.ModuleID(), moduleValidator.ModuleBody(), moduleController.UpdateModule)
	moduleGroup.Delete("/:moduleId", middleware.JWTMiddleware, moduleValidator.ModuleID(), moduleController.DeleteModule)

	// Pages
	moduleGroup.Post("/:moduleId/pages", middleware.JWTMiddleware, moduleValidator.ModuleID(), moduleValidator.PageBody(), moduleController.CreatePage)
	moduleGroup.Get("/:moduleId/pages", middleware.JWTMiddleware, moduleValidator.ModuleID(), moduleValidator.List(), moduleController.GetModulePages)

	pageGroup := app.Group("/api/pages")
	pageGroup.Put("/:pageId", middleware.JWTMiddleware, moduleValidator.PageID(), moduleValidator.PageBody(), moduleController.UpdatePage)
	pageGroup.Delete("/:pageId", middleware.JWTMiddleware, moduleValidator.PageID(), moduleController.DeletePage)

	// Content
	pageGroup.Post("/:pageId/content", middleware.JWTMiddleware, moduleValidator.PageID(), moduleValidator.ContentBody(), moduleController.CreateContent)
	pageGroup.Get("/:pageId/content", middleware.JWTMiddleware, moduleValidator.PageID(), moduleController.GetPageContent)

	contentGroup := app.Group("/api/content")
	contentGroup.Put("/:contentId", middleware.JWTMiddleware, moduleValidator.ContentID(), moduleValidator.ContentBody(), moduleController.UpdateContent)
	contentGroup.Delete("/:contentId", middleware.JWTMiddleware, moduleValidator.ContentID(), moduleController.DeleteContent)
}
