package event

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"venue-booking/logger"
	eventModel "venue-booking/models/event"
	"venue-booking/services/ledger"
	"venue-booking/services/notify"
	searchService "venue-booking/services/search"
	"venue-booking/types"
	eventTypes "venue-booking/types/event"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// syncLedger rewrites the stored ledger rows and patches the derived deposit
// and status on the parent booking inside one transaction. The pending amount
// is user-entered and left untouched.
func (ec *EventController) syncLedger(booking *eventModel.Event, entries []eventModel.Payment, total float64, actor string) error {
	status := booking.Status
	if status != eventModel.StatusCancelled {
		status = eventModel.DeriveStatus(total, booking.PendingAmount)
	}

	err := ec.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", booking.ID).Delete(&eventModel.Payment{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].EventID = booking.ID
			entries[i].Position = i
			if entries[i].CreatedBy == "" {
				entries[i].CreatedBy = actor
			}
			if err := tx.Create(&entries[i]).Error; err != nil {
				return err
			}
		}

		return tx.Model(&eventModel.Event{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"deposit":    total,
				"status":     status,
				"updated_by": actor,
			}).Error
	})
	if err != nil {
		return err
	}

	booking.Payments = entries
	booking.Deposit = total
	booking.Status = status
	booking.UpdatedBy = actor
	return nil
}

// AddPayment appends a ledger entry and re-derives the deposit and status
func (ec *EventController) AddPayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}

	var req eventTypes.PaymentCreateRequest
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

	paidOn, err := time.ParseInLocation(searchService.DateLayout, req.PaidOn, time.UTC)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: fmt.Sprintf("Invalid payment date %q", req.PaidOn),
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

	if !booking.Status.CanAcceptPayments() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Cancelled events cannot accept payments",
			Data:    nil,
		})
	}

	actor := actorFromClaims(c)
	entry := eventModel.Payment{
		EventID:     booking.ID,
		Amount:      req.Amount,
		PaidOn:      paidOn,
		Description: req.Description,
		CreatedBy:   actor,
	}

	entries, total, err := ledger.Add(booking.Payments, entry)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	if err := ec.syncLedger(booking, entries, total, actor); err != nil {
		logger.Error("Failed to save payment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save payment",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Payment of %.2f added to event %d", req.Amount, booking.ID))
	if booking.Status == eventModel.StatusPaidInFull {
		ec.publishBooking(notify.RouteBookingSettled, booking, actor)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Payment added successfully",
		Data:    booking,
	})
}

// RemovePayment deletes a ledger entry by position and re-derives the totals
func (ec *EventController) RemovePayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid event id",
			Data:    nil,
		})
	}

	var req eventTypes.PaymentRemoveRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
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
	entries, total := ledger.Remove(booking.Payments, req.Index)

	if err := ec.syncLedger(booking, entries, total, actor); err != nil {
		logger.Error("Failed to remove payment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to remove payment",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Payment %d removed from event %d", req.Index, booking.ID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment removed successfully",
		Data:    booking,
	})
}

// ParseReceipt extracts prefill data for a new ledger entry from an uploaded
// receipt image
func (ec *EventController) ParseReceipt(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Receipt file is required",
			Data:    nil,
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded receipt", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to read receipt file",
			Data:    nil,
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded receipt", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to read receipt file",
			Data:    nil,
		})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	parsed, err := ec.Receipts.Parse(c.Context(), content, mimeType)
	if err != nil {
		logger.Error("Failed to parse receipt", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to parse receipt",
			Data:    nil,
		})
	}

	logger.Success("Receipt parsed successfully")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Receipt parsed successfully",
		Data:    parsed,
	})
}
