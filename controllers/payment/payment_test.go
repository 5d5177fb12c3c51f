package paymentController

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed","data":{"reference":"abc"}}`)
	secret := "whsec_test"

	assert.True(t, VerifyWebhookSignature(payload, signPayload(payload, secret), secret))

	// Wrong secret
	assert.False(t, VerifyWebhookSignature(payload, signPayload(payload, "whsec_other"), secret))

	// Tampered payload
	tampered := []byte(`{"type":"checkout.session.completed","data":{"reference":"xyz"}}`)
	assert.False(t, VerifyWebhookSignature(tampered, signPayload(payload, secret), secret))

	// Garbage signature
	assert.False(t, VerifyWebhookSignature(payload, "not-hex-at-all", secret))
}
