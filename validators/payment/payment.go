package paymentValidator

import (
	"vle/middleware"
	"vle/validators"

	"github.com/gofiber/fiber/v2"
)

// CheckoutBody validates the checkout payload
func CheckoutBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID uint `json:"moduleId" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.CheckStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCheckout", reqData)
		return c.Next()
	}
}
