package routes

import (
	"os"

	"venue-booking/constants"
	"venue-booking/controllers/auth"
	companyController "venue-booking/controllers/company"
	eventController "venue-booking/controllers/event"
	"venue-booking/controllers/user"
	"venue-booking/httpServices/storage"
	"venue-booking/logger"
	"venue-booking/middleware"
	attachmentService "venue-booking/services/attachment"
	"venue-booking/services/directory"
	"venue-booking/services/notify"
	receiptService "venue-booking/services/receipt"
	searchService "venue-booking/services/search"
	sessionService "venue-booking/services/session"
	"venue-booking/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, sessions *sessionService.Store, notifier *notify.Publisher) {
	storageClient := storage.NewClient(os.Getenv("STORAGE_BASE_URL"), os.Getenv("STORAGE_BUCKET"))
	asyncLogger := logger.NewAsyncLogger(db)

	attachments := attachmentService.NewManager(storageClient)
	receipts := receiptService.NewService()
	search := searchService.NewService(searchService.NewGormEventQuerier(db), searchService.NewGormCompanyQuerier(db))
	companies := directory.NewService(directory.NewGormRepository(db))

	authController := auth.NewAuthController(db, sessions, asyncLogger)
	events := eventController.NewEventController(db, asyncLogger, attachments, receipts, search, notifier)
	companyCtrl := companyController.NewCompanyController(db, companies, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message: "venue-booking up",
			Status:  fiber.StatusOK,
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)
	api.Post("/register", authController.Register)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAnyPermission())
	authGroup.Get("/profile", user.GetUserInfo)
	authGroup.Get("/session", authController.Touch)
	authGroup.Post("/locale", authController.UpdateLocale)
	authGroup.Post("/logout", authController.LogOut)

	/*=============================================================================
	| Event Routes
	===============================================================================*/
	eventGroup := api.Group("/events")

	eventGroup.Get("/", middleware.RequireAnyPermission(), events.Index)
	eventGroup.Get("/calendar", middleware.RequireAnyPermission(), events.CalendarFeed)
	eventGroup.Get("/calendar.ics", middleware.RequireAnyPermission(), events.CalendarICS)
	eventGroup.Post("/search", middleware.RequireAnyPermission(), events.SearchEvents)
	eventGroup.Get("/:id", middleware.RequireAnyPermission(), events.Show)

	eventGroup.Post("/", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), events.Store)

	eventGroup.Put("/:id", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), events.Update)

	eventGroup.Patch("/:id/reschedule", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), events.Reschedule)

	eventGroup.Post("/:id/cancel", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), events.Cancel)

	eventGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermManagerFull,
	), events.Destroy)

	// Payment ledger routes
	eventGroup.Post("/:id/payments", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), events.AddPayment)

	eventGroup.Delete("/:id/payments", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), events.RemovePayment)

	eventGroup.Post("/parse-receipt", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), events.ParseReceipt)

	// Attachment routes
	eventGroup.Post("/:id/attachments", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), events.UploadAttachments)

	eventGroup.Delete("/:id/attachments/:attachmentId", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), events.RemoveAttachment)

	eventGroup.Get("/:id/attachments/:attachmentId/download", middleware.RequireAnyPermission(), events.DownloadAttachment)

	/*=============================================================================
	| Company Routes
	===============================================================================*/
	companyGroup := api.Group("/companies")

	companyGroup.Get("/search", middleware.RequireAnyPermission(), companyCtrl.Search)
	companyGroup.Get("/:id", middleware.RequireAnyPermission(), companyCtrl.Show)

	companyGroup.Post("/", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), companyCtrl.Store)

	companyGroup.Put("/:id", middleware.RequirePermissions(
		constants.BookingWritePermissions...,
	), companyCtrl.Update)
}
