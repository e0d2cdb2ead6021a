package user

import (
	"errors"

	"venue-booking/database"
	"venue-booking/logger"
	"venue-booking/models/user"
	"venue-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func GetUserInfo(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		response := types.ApiResponse{
			Message: "Invalid token data",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		}
		return c.JSON(&response)
	}
	userUUID, ok := claims["uuid"].(string)
	if !ok || userUUID == "" {
		response := types.ApiResponse{
			Message: "Invalid token data",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		}
		return c.JSON(&response)
	}

	var account user.User
	if err := database.DB.Where("uuid = ?", userUUID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("User not found", err)
			response := types.ApiResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
				Data:    nil,
			}
			return c.JSON(&response)
		}
		logger.Error("Error fetching user", err)
		response := types.ApiResponse{
			Message: "Error fetching user",
			Status:  fiber.StatusInternalServerError,
			Data:    nil,
		}
		return c.JSON(&response)
	}

	// Construct user info response
	userInfo := map[string]interface{}{
		"uuid":           account.Uuid,
		"username":       account.Username,
		"legal_name":     account.LegalName,
		"phone":          account.Phone,
		"email":          account.Email,
		"email_verified": account.EmailVerified,
		"role":           account.Role,
		"permissions":    account.Permissions,
		"created_at":     account.CreatedAt.Format("2006-01-02 15:04:05"),
		"updated_at":     account.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	// Send successful response
	response := types.ApiResponse{
		Message: "User fetched successfully",
		Status:  fiber.StatusOK,
		Data:    userInfo,
	}
	logger.Success("User fetched successfully")
	return c.JSON(&response)
}
