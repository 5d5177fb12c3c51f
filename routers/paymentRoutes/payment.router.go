package paymentRoutes

import (
	paymentController "vle/controllers/payment"
	"vle/middleware"
	paymentValidator "vle/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up paid-enrolment routes. The webhook carries no
// bearer token; its signature is the authentication.
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/api/payment")

	paymentGroup.Post("/checkout", middleware.JWTMiddleware, paymentValidator.CheckoutBody(), paymentController.CreateCheckout)
	paymentGroup.Post("/webhook", paymentController.PaymentWebhook)
}
