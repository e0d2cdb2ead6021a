package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"venue-booking/controllers/auth"
	"venue-booking/database"
	"venue-booking/logger"
	"venue-booking/middleware"
	sessionModel "venue-booking/models/session"
	"venue-booking/routes"
	"venue-booking/services/notify"
	sessionService "venue-booking/services/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       50 * 1024 * 1024, // 50MB body limit
	})
	env := godotenv.Load()
	if env != nil {
		logger.Error("Error loading .env file", env)
		fmt.Println("Error loading .env file", env)
	}
	logger.Success("Server is running on ip: " + os.Getenv("APP_HOST") + " port: " + os.Getenv("APP_PORT") +
		"\n\t\t\t\t\t\t******************************************************************************************\n")

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	// The broker is optional; without it lifecycle notifications are dropped.
	var notifier *notify.Publisher
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		notifier, err = notify.NewPublisher(url)
		if err != nil {
			logger.Error("Failed to connect to RabbitMQ, notifications disabled", err)
			notifier = nil
		} else {
			defer notifier.Close()
		}
	}

	sessions := sessionService.NewStore(db, auth.SessionTTL)
	sessions.OnExpire(func(sess sessionModel.Session) {
		notifier.PublishBooking(notify.RouteSessionExpired, notify.BookingMessage{
			Actor: fmt.Sprintf("session-%d", sess.ID),
		})
	})

	middleware.UseSessionChecker(func(c *fiber.Ctx, sessionID uint) error {
		_, err := sessions.Get(c.Context(), sessionID)
		return err
	})

	// Expired sessions are revoked on a schedule rather than per request.
	sweepSpec := os.Getenv("SESSION_SWEEP_CRON")
	if sweepSpec == "" {
		sweepSpec = "@every 15m"
	}
	scheduler := cron.New()
	_, err = scheduler.AddFunc(sweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := sessions.SweepExpired(ctx)
		if err != nil {
			logger.Error("Session sweep failed", err)
			return
		}
		if n > 0 {
			logger.Info(fmt.Sprintf("Session sweep revoked %d session(s)", n))
		}
	})
	if err != nil {
		logger.Error("Invalid SESSION_SWEEP_CRON expression", err)
		return
	}
	scheduler.Start()
	defer scheduler.Stop()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db, sessions, notifier)

	app_host := os.Getenv("APP_HOST")
	app_port := os.Getenv("APP_PORT")
	app.Listen(app_host + ":" + app_port)
}
