package assignmentValidator

import (
	"strconv"
	"strings"
	"vle/middleware"
	"vle/validators"

	"github.com/gofiber/fiber/v2"
)

// ContentID validates the content route parameter
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("contentId"))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("contentID", uint(id))
		return c.Next()
	}
}

// SubmissionID validates the submission route parameter
func SubmissionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("submissionId"))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Submission ID!", nil)
		}

		c.Locals("submissionID", uint(id))
		return c.Next()
	}
}

// SubmitBody validates the multipart submission payload: the content id
// travels as a form field next to the file
func SubmitBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.FormValue("content_id"))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("contentID", uint(id))
		return c.Next()
	}
}

// GradeBody validates the grade payload
func GradeBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Grade    *float64 `json:"grade" validate:"required"`
			Feedback string   `json:"feedback"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}
