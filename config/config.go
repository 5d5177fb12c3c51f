package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender string
	Password    string // SMTP Password
	SMTPHost    string
	SMTPPort    string

	// Comma-separated list of addresses reminder emails may be sent to.
	// Empty means no restriction.
	ReminderAllowList []string

	UploadDir    string
	UploadSecret string // signs download URLs
	BaseURL      string

	RedisAddr     string
	RedisPassword string

	PaymentApiURL        string
	PaymentApiKey        string
	PaymentWebhookSecret string
	CheckoutSuccessURL   string
	CheckoutCancelURL    string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),
		SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    getEnv("SMTP_PORT", "587"),

		ReminderAllowList: getEnvList("REMINDER_ALLOW_LIST"),

		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		UploadSecret: getEnv("UPLOAD_SECRET_KEY", "defaultSecret"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:3000"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		PaymentApiURL:        getEnv("PAYMENT_API_URL", "https://api.sandbox.credpay.io/v1/"),
		PaymentApiKey:        getEnv("PAYMENT_API_KEY", "defaultSecret"),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", "defaultSecret"),
		CheckoutSuccessURL:   getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:4200/payment/success"),
		CheckoutCancelURL:    getEnv("CHECKOUT_CANCEL_URL", "http://localhost:4200/payment/cancel"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.UploadSecret == "defaultSecret" {
		log.Println("Warning: Using default UPLOAD_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvList retrieves a comma-separated environment variable as a string slice
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var list []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return list
}
