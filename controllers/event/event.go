package event

import (
	"fmt"
	"strconv"
	"time"

	"venue-booking/logger"
	eventModel "venue-booking/models/event"
	attachmentService "venue-booking/services/attachment"
	"venue-booking/services/draft"
	"venue-booking/services/notify"
	receiptService "venue-booking/services/receipt"
	searchService "venue-booking/services/search"
	"venue-booking/types"
	eventTypes "venue-booking/types/event"
	"venue-booking/utils"

	ics "github.com/arran4/golang-ical"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// EventController handles booking-related HTTP requests
type EventController struct {
	DB          *gorm.DB
	Logger      *logger.AsyncLogger
	Attachments *attachmentService.Manager
	Receipts    *receiptService.Service
	Search      *searchService.Service
	Notifier    *notify.Publisher
}

// NewEventController creates a new event controller
func NewEventController(db *gorm.DB, asyncLogger *logger.AsyncLogger, attachments *attachmentService.Manager, receipts *receiptService.Service, search *searchService.Service, notifier *notify.Publisher) *EventController {
	return &EventController{
		DB:          db,
		Logger:      asyncLogger,
		Attachments: attachments,
		Receipts:    receipts,
		Search:      search,
		Notifier:    notifier,
	}
}

// actorFromClaims resolves the acting username for audit fields.
func actorFromClaims(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}

// loadEvent fetches a live booking with its ledger and attachments.
func (ec *EventController) loadEvent(c *fiber.Ctx, id uint) (*eventModel.Event, error) {
	var booking eventModel.Event
	err := ec.DB.WithContext(c.Context()).
		Where("deleted_at IS NULL").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Company").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (ec *EventController) publishBooking(route string, booking *eventModel.Event, actor string) {
	ec.Notifier.PublishBooking(route, notify.BookingMessage{
		EventID:     booking.ID,
		CompanyName: booking.CompanyName,
		StartAt:     booking.StartAt,
		Status:      booking.Status.String(),
		Actor:       actor,
	})
}

// Store creates a new booking
func (ec *EventController) Store(c *fiber.Ctx) error {
	var req eventTypes.EventSaveRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		logger.Error("Event validation failed", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	actor := actorFromClaims(c)

	d := draft.FromRequest(nil, req)
	if errs := d.Validate(); errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ValidationErrorResponse{
			Message: "Event validation failed",
			Status:  fiber.StatusUnprocessableEntity,
			Fields:  errs,
		})
	}

	payload, err := d.Serialize(true)
	if err != nil {
		logger.Error("Failed to serialize event draft", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "Invalid event dates",
			Data:    nil,
		})
	}

	booking := payload.ToModel()
	booking.CreatedBy = actor

	if err := ec.DB.Create(&booking).Error; err != nil {
		logger.Error("Failed to create event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save event",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Event created successfully with ID: %d", booking.ID))
	ec.publishBooking(notify.RouteBookingCreated, &booking, actor)

	created, err := ec.loadEvent(c, booking.ID)
	if err != nil {
		logger.Error("Failed to load created event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Event created but failed to retrieve complete data",
			Data:    nil,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	ec.Logger.Log(logEntry)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Event created successfully",
		Data:    created,
	})
}

// Update replaces an existing booking's editable fields
func (ec *EventController) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}

	var req eventTypes.EventSaveRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	booking, err := ec.loadEvent(c, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Event not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	d := draft.FromRequest(booking, req)
	if errs := d.Validate(); errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ValidationErrorResponse{
			Message: "Event validation failed",
			Status:  fiber.StatusUnprocessableEntity,
			Fields:  errs,
		})
	}

	payload, err := d.Serialize(false)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "Invalid event dates",
			Data:    nil,
		})
	}

	actor := actorFromClaims(c)

	booking.StartAt = payload.StartAt
	booking.EndAt = payload.EndAt
	booking.CompanyID = payload.CompanyID
	booking.CompanyName = payload.CompanyName
	booking.ContactName = payload.ContactName
	booking.ContactPhone = payload.ContactPhone
	booking.ContactEmail = payload.ContactEmail
	booking.PeopleCount = payload.PeopleCount
	booking.Location = payload.Location
	booking.Description = payload.Description
	booking.FoodPackages = payload.FoodPackages
	booking.Deposit = payload.Deposit
	booking.PendingAmount = payload.PendingAmount
	booking.Status = eventModel.EventStatus(payload.Status)
	booking.UpdatedBy = actor

	if err := ec.DB.Save(booking).Error; err != nil {
		logger.Error("Failed to update event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save event",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Event %d updated successfully", booking.ID))
	ec.publishBooking(notify.RouteBookingUpdated, booking, actor)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Event updated successfully",
		Data:    booking,
	})
}

// Show returns one booking with its ledger and attachments
func (ec *EventController) Show(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}

	booking, err := ec.loadEvent(c, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Event not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Event fetched successfully",
		Data:    booking,
	})
}

// Index lists bookings ordered by start, optionally windowed by from/to dates
func (ec *EventController) Index(c *fiber.Ctx) error {
	tx := ec.DB.WithContext(c.Context()).
		Where("deleted_at IS NULL").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("start_at ASC")

	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation(searchService.DateLayout, from, time.UTC)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: fmt.Sprintf("Invalid from date %q", from),
				Data:    nil,
			})
		}
		tx = tx.Where("start_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation(searchService.DateLayout, to, time.UTC)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: fmt.Sprintf("Invalid to date %q", to),
				Data:    nil,
			})
		}
		tx = tx.Where("start_at < ?", t.Add(24*time.Hour))
	}

	var bookings []eventModel.Event
	if err := tx.Find(&bookings).Error; err != nil {
		logger.Error("Failed to list events", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list events",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Events fetched successfully",
		Data:    bookings,
	})
}

// Reschedule moves a booking, used by calendar drag and resize
func (ec *EventController) Reschedule(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}

	var req eventTypes.RescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	booking, err := ec.loadEvent(c, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Event not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	// A drag carries only the new start; the end then follows at one day out.
	d := draft.New(booking)
	d.SetStartDate(req.StartAt)
	if req.EndAt != "" {
		d.SetEndDate(req.EndAt)
	}
	if errs := d.Validate(); errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ValidationErrorResponse{
			Message: "Event validation failed",
			Status:  fiber.StatusUnprocessableEntity,
			Fields:  errs,
		})
	}

	payload, err := d.Serialize(false)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "Invalid event dates",
			Data:    nil,
		})
	}

	actor := actorFromClaims(c)
	err = ec.DB.Model(&eventModel.Event{}).
		Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"start_at":   payload.StartAt,
			"end_at":     payload.EndAt,
			"updated_by": actor,
		}).Error
	if err != nil {
		logger.Error("Failed to reschedule event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to reschedule event",
			Data:    nil,
		})
	}

	booking.StartAt = payload.StartAt
	booking.EndAt = payload.EndAt

	logger.Success(fmt.Sprintf("Event %d rescheduled successfully", booking.ID))
	ec.publishBooking(notify.RouteBookingRescheduled, booking, actor)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Event rescheduled successfully",
		Data:    booking,
	})
}

// Cancel marks a booking cancelled without deleting it
func (ec *EventController) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}

	booking, err := ec.loadEvent(c, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Event not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	actor := actorFromClaims(c)
	err = ec.DB.Model(&eventModel.Event{}).
		Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"status":     eventModel.StatusCancelled,
			"updated_by": actor,
		}).Error
	if err != nil {
		logger.Error("Failed to cancel event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to cancel event",
			Data:    nil,
		})
	}

	booking.Status = eventModel.StatusCancelled

	logger.Success(fmt.Sprintf("Event %d cancelled", booking.ID))
	ec.publishBooking(notify.RouteBookingCancelled, booking, actor)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Event cancelled successfully",
		Data:    booking,
	})
}

// Destroy soft-deletes a booking
func (ec *EventController) Destroy(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}

	now := time.Now()
	result := ec.DB.Model(&eventModel.Event{}).
		Where("id = ? AND deleted_at IS NULL", uint(id)).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_by": actorFromClaims(c),
		})
	if result.Error != nil {
		logger.Error("Failed to delete event", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete event",
			Data:    nil,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Event not found",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Event %d deleted", id))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Event deleted successfully",
		Data:    nil,
	})
}

// calendarWindow parses the from/to query parameters of the calendar feeds.
func calendarWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	from := time.Now().UTC().AddDate(0, -1, 0)
	to := time.Now().UTC().AddDate(0, 2, 0)

	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation(searchService.DateLayout, v, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q", v)
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation(searchService.DateLayout, v, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q", v)
		}
		to = t.Add(24 * time.Hour)
	}
	return from, to, nil
}

func (ec *EventController) calendarEvents(c *fiber.Ctx) ([]eventModel.Event, error) {
	from, to, err := calendarWindow(c)
	if err != nil {
		return nil, err
	}

	var bookings []eventModel.Event
	err = ec.DB.WithContext(c.Context()).
		Where("deleted_at IS NULL").
		Where("start_at >= ? AND start_at < ?", from, to).
		Order("start_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("query calendar events: %w", err)
	}
	return bookings, nil
}

// CalendarFeed serves the JSON feed the calendar view renders directly.
func (ec *EventController) CalendarFeed(c *fiber.Ctx) error {
	bookings, err := ec.calendarEvents(c)
	if err != nil {
		logger.Error("Failed to build calendar feed", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	entries := make([]fiber.Map, 0, len(bookings))
	for _, b := range bookings {
		entries = append(entries, fiber.Map{
			"id":    b.ID,
			"title": b.CompanyName,
			"start": b.StartAt,
			"end":   b.EndAt,
			"extendedProps": fiber.Map{
				"status":         b.Status.String(),
				"company_id":     b.CompanyID,
				"contact_name":   b.ContactName,
				"people_count":   b.PeopleCount,
				"deposit":        b.Deposit,
				"pending_amount": b.PendingAmount,
			},
		})
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

// CalendarICS serves the same window as an iCalendar feed for external
// calendar subscriptions.
func (ec *EventController) CalendarICS(c *fiber.Ctx) error {
	bookings, err := ec.calendarEvents(c)
	if err != nil {
		logger.Error("Failed to build calendar export", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//venue-booking//calendar//EN")

	for _, b := range bookings {
		entry := cal.AddEvent(fmt.Sprintf("booking-%d@venue-booking", b.ID))
		entry.SetCreatedTime(b.CreatedAt)
		entry.SetModifiedAt(b.UpdatedAt)
		entry.SetStartAt(b.StartAt)
		entry.SetEndAt(b.EndAt)
		entry.SetSummary(b.CompanyName)
		if b.Location != nil {
			entry.SetLocation(*b.Location)
		}
		if b.Description != nil {
			entry.SetDescription(*b.Description)
		}
		entry.SetStatus(ics.ObjectStatusConfirmed)
		if b.Status == eventModel.StatusCancelled {
			entry.SetStatus(ics.ObjectStatusCancelled)
		}
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="calendar.ics"`)
	return c.SendString(cal.Serialize())
}
