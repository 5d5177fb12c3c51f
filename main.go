package main

import (
	"log"
	"vle/config"
	"vle/database"
	"vle/middleware"
	"vle/realtime"
	"vle/storage"
	"vle/utils"

	adminRoutes "vle/routers/adminRoutes"
	assignmentRoutes "vle/routers/assignmentRoutes"
	authRoutes "vle/routers/authRoutes"
	enrollmentRoutes "vle/routers/enrollmentRoutes"
	moduleRoutes "vle/routers/moduleRoutes"
	notificationRoutes "vle/routers/notificationRoutes"
	paymentRoutes "vle/routers/paymentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Blob store for content files and submissions
	blob := storage.NewLocalBlobStore(
		config.AppConfig.UploadDir,
		config.AppConfig.UploadSecret,
		config.AppConfig.BaseURL,
	)
	storage.Blob = blob

	// Live notification channel; Redis bridges instances when configured
	var rdb *redis.Client
	if config.AppConfig.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
		})
	}
	realtime.Live = realtime.NewHub(rdb)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Signed blob downloads
	app.Get("/uploads/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		if !blob.VerifySignature(path, c.Query("exp"), c.Query("sig")) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Invalid or expired download link!", nil)
		}
		return c.SendFile(blob.FilePath(path))
	})

	// Websocket live channel
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/notifications", websocket.New(realtime.Live.HandleSocket))

	authRoutes.SetupAuthRoutes(app)
	moduleRoutes.SetupModuleRoutes(app)
	assignmentRoutes.SetupAssignmentRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializeReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
