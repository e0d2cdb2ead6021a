package company

import (
	"fmt"
	"strconv"

	"venue-booking/logger"
	directoryService "venue-booking/services/directory"
	"venue-booking/types"
	companyTypes "venue-booking/types/company"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// CompanyController handles company directory HTTP requests
type CompanyController struct {
	DB        *gorm.DB
	Directory *directoryService.Service
	Logger    *logger.AsyncLogger
}

// NewCompanyController creates a new company controller
func NewCompanyController(db *gorm.DB, directory *directoryService.Service, asyncLogger *logger.AsyncLogger) *CompanyController {
	return &CompanyController{
		DB:        db,
		Directory: directory,
		Logger:    asyncLogger,
	}
}

func actorFromClaims(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}

// Search returns directory matches for the booking form's company picker.
// When no exact name match exists the response flags that creating a new
// company should be offered.
func (cc *CompanyController) Search(c *fiber.Ctx) error {
	query := c.Query("q")

	matches, err := cc.Directory.Search(c.Context(), query)
	if err != nil {
		logger.Error("Company search failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Company search failed",
			Data:    nil,
		})
	}

	exact, offerCreate := directoryService.ResolveOrFlagNew(query, matches)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("%d compan(ies) found", len(matches)),
		Data: map[string]interface{}{
			"matches":      matches,
			"exact_match":  exact,
			"offer_create": offerCreate,
		},
	})
}

// Show returns one company
func (cc *CompanyController) Show(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid company id",
			Data:    nil,
		})
	}

	record, err := cc.Directory.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Company not found",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Company fetched successfully",
		Data:    record,
	})
}

// Store creates a company from the inline creation form
func (cc *CompanyController) Store(c *fiber.Ctx) error {
	var req companyTypes.CompanyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	record, err := cc.Directory.Create(c.Context(), req, actorFromClaims(c))
	if err != nil {
		logger.Error("Failed to create company", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Company created successfully with ID: %d", record.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Company created successfully",
		Data:    record,
	})
}

// Update edits an existing company
func (cc *CompanyController) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid company id",
			Data:    nil,
		})
	}

	var req companyTypes.CompanyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	record, err := cc.Directory.Update(c.Context(), uint(id), req, actorFromClaims(c))
	if err != nil {
		logger.Error("Failed to update company", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Company %d updated successfully", record.ID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Company updated successfully",
		Data:    record,
	})
}
