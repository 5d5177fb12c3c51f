package paymentController

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"vle/config"
	"vle/database"
	"vle/middleware"
	"vle/models"

	enrollmentController "vle/controllers/enrollment"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Reference string `json:"reference"`
		SessionID string `json:"session_id"`
	} `json:"data"`
}

// CreateCheckout starts a provider checkout session for a paid module.
// Free modules enrol immediately without touching the provider.
// POST /api/payment/checkout
func CreateCheckout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCheckout").(*struct {
		ModuleID uint `json:"moduleId" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := db.Where("id = ?", reqData.ModuleID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	enrolled, err := enrollmentController.IsEnrolled(db, userID, module.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create checkout!", nil)
	}
	if enrolled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User already enrolled in this module!", nil)
	}

	if module.Price == 0 {
		if _, err := enrollmentController.EnrollUser(db, userID, module.ID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in module!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Module is free, enrolled directly!", nil)
	}

	reference := uuid.NewString()

	client := resty.New()
	resp, err := client.R().
		SetAuthToken(config.AppConfig.PaymentApiKey).
		SetBody(map[string]interface{}{
			"amount":      module.Price,
			"reference":   reference,
			"description": "Enrolment: " + module.Name,
			"success_url": config.AppConfig.CheckoutSuccessURL,
			"cancel_url":  config.AppConfig.CheckoutCancelURL,
		}).
		Post(config.AppConfig.PaymentApiURL + "checkout/sessions")
	if err != nil || resp.StatusCode() >= 300 {
		log.Printf("Checkout session error: %v %s", err, resp.String())
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment provider error!", nil)
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Invalid payment provider response!", nil)
	}

	payment := models.PaymentSession{
		Reference: reference,
		SessionID: session.ID,
		UserID:    userID,
		ModuleID:  module.ID,
		Amount:    module.Price,
		Status:    models.PaymentPending,
	}
	if err := db.Create(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create checkout!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"reference":    reference,
		"checkout_url": session.URL,
	})
}

// VerifyWebhookSignature checks the provider's HMAC-SHA256 hex signature
// over the raw request body
func VerifyWebhookSignature(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// PaymentWebhook handles provider callbacks. A completed checkout enrols the
// user; enrolment is idempotent so replayed events stay harmless.
// POST /api/payment/webhook
func PaymentWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("X-Webhook-Signature")

	if !VerifyWebhookSignature(payload, signature, config.AppConfig.PaymentWebhookSecret) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid webhook signature!", nil)
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}

	db := database.Database.Db

	var session models.PaymentSession
	if err := db.Where("reference = ?", event.Data.Reference).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown payment reference!", nil)
	}

	switch event.Type {
	case "checkout.session.completed":
		if session.Status == models.PaymentCompleted {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Already processed.", nil)
		}
		if err := db.Model(&session).Update("status", models.PaymentCompleted).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process webhook!", nil)
		}
		if _, err := enrollmentController.EnrollUser(db, session.UserID, session.ModuleID); err != nil &&
			!errors.Is(err, enrollmentController.ErrAlreadyEnrolled) {
			log.Printf("Webhook enrolment failed for reference %s: %v", session.Reference, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll user!", nil)
		}
	case "checkout.session.expired", "checkout.session.failed":
		db.Model(&session).Update("status", models.PaymentFailed)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook processed.", nil)
}
