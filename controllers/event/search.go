package event

import (
	"fmt"

	"venue-booking/logger"
	searchService "venue-booking/services/search"
	"venue-booking/types"
	eventTypes "venue-booking/types/event"

	"github.com/gofiber/fiber/v2"
)

// SearchEvents runs the mode-based booking search
func (ec *EventController) SearchEvents(c *fiber.Ctx) error {
	var req eventTypes.SearchRequest
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

	// Inputs belonging to the other modes are dropped before the query runs.
	req = searchService.ClearInactiveFilters(req)

	rows, err := ec.Search.Execute(c.Context(), req)
	if err != nil {
		logger.Error("Search failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Search failed",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("%d event(s) found", len(rows)),
		Data:    rows,
	})
}
