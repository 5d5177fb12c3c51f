package moduleValidator

import (
	"strconv"
	"strings"
	"time"
	"vle/middleware"
	"vle/validators"

	moduleController "vle/controllers/module"

	"github.com/gofiber/fiber/v2"
)

// uintParam parses a positive integer route parameter into locals
func uintParam(name, local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(name))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(local, uint(id))
		return c.Next()
	}
}

func ModuleID() fiber.Handler  { return uintParam("moduleId", "moduleID") }
func PageID() fiber.Handler    { return uintParam("pageId", "pageID") }
func ContentID() fiber.Handler { return uintParam("contentId", "contentID") }

// List validates optional pagination query parameters
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("page") == "" && c.Query("limit") == "" {
			return c.Next()
		}

		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// ModuleBody validates the create/update module payload
func ModuleBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string  `json:"name" validate:"required,min=3"`
			Description  string  `json:"description"`
			Price        float64 `json:"price" validate:"gte=0"`
			InstructorID uint    `json:"instructor_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// PageBody validates the create/update page payload
func PageBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title string `json:"title" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPage", reqData)
		return c.Next()
	}
}

// ContentBody validates the multipart content payload: a link needs a URL,
// a link and a file are mutually exclusive, deadlines only make sense on
// upload assignments.
func ContentBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form := &moduleController.ContentForm{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Description: c.FormValue("description"),
			LinkURL:     strings.TrimSpace(c.FormValue("link_url")),
			IsLink:      c.FormValue("is_link") == "true",
			IsUpload:    c.FormValue("is_upload") == "true",
		}

		if file, err := c.FormFile("file"); err == nil {
			form.File = file
		}

		errors := make(map[string]string)

		if form.Title == "" {
			errors["title"] = "Title is required!"
		}

		if form.IsLink && form.LinkURL == "" {
			errors["link_url"] = "Link URL is required for link content!"
		}

		if form.IsLink && form.File != nil {
			errors["file"] = "Link content cannot carry a file!"
		}

		if deadlineRaw := strings.TrimSpace(c.FormValue("deadline")); deadlineRaw != "" {
			if !form.IsUpload {
				errors["deadline"] = "Deadline is only valid on upload assignments!"
			} else if deadline, err := time.Parse(time.RFC3339, deadlineRaw); err != nil {
				errors["deadline"] = "Deadline must be RFC3339 formatted!"
			} else {
				form.Deadline = &deadline
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", form)
		return c.Next()
	}
}
