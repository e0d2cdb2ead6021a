package auth

import (
	"fmt"
	"os"
	"strings"
	"time"

	"venue-booking/constants"
	"venue-booking/logger"
	"venue-booking/models/user"
	sessionService "venue-booking/services/session"
	"venue-booking/types"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionTTL is how long an issued session and its token stay valid.
const SessionTTL = 8 * time.Hour

type AuthController struct {
	db             *gorm.DB
	sessions       *sessionService.Store
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, sessions *sessionService.Store, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, sessions: sessions, loggerInstance: asyncLogger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: false,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// permissionsForRole maps an account role to its permission set.
func permissionsForRole(role string) user.StringSlice {
	switch role {
	case "admin":
		return user.StringSlice{constants.PermAdminFull}
	case "manager":
		return user.StringSlice{constants.PermManagerFull}
	case "viewer":
		return user.StringSlice{constants.PermViewerRead}
	default:
		return user.StringSlice{constants.PermStaffFull}
	}
}

// signToken issues the HS256 token for a user and session.
func signToken(u *user.User, sessionID uint, expiresAt time.Time) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET not found in environment variables")
	}

	claims := jwt.MapClaims{
		"uuid":        u.Uuid,
		"username":    u.Username,
		"role":        u.Role,
		"permissions": []string(u.Permissions),
		"sid":         sessionID,
		"iat":         time.Now().Unix(),
		"exp":         expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	var req types.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Register validation failed", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	// Username is the login identity, reject duplicates up front.
	var existing user.User
	err := h.db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: "Username is already taken",
			Status:  fiber.StatusConflict,
		})
	} else if err != gorm.ErrRecordNotFound {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}

	newUser := user.User{
		Uuid:         uuid.NewString(),
		Username:     req.Username,
		LegalName:    req.LegalName,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         role,
		Permissions:  permissionsForRole(role),
	}
	if req.Email != nil && *req.Email != "" {
		newUser.Email = req.Email
	}

	if err := h.db.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success("User registered successfully. UUID: " + newUser.Uuid)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "User registered successfully",
		Status:  fiber.StatusCreated,
		Data:    newUser,
	})
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Login validation failed", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	var account user.User
	if err := h.db.Where("username = ?", req.Username).First(&account).Error; err != nil {
		logger.Error("Login failed, user not found", err)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid username or password",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		logger.Error("Login failed, password mismatch", err)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid username or password",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	// The session row is created first so its id can live in the token claims.
	sess, err := h.sessions.Create(c.Context(), &account, "", req.Locale)
	if err != nil {
		logger.Error("Failed to create session", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to open session",
			Status:  fiber.StatusInternalServerError,
			Data:    nil,
		})
	}

	token, err := signToken(&account, sess.ID, sess.ExpiresAt)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to open session",
			Status:  fiber.StatusInternalServerError,
			Data:    nil,
		})
	}

	if err := h.sessions.AttachToken(c.Context(), sess.ID, token); err != nil {
		logger.Error("Failed to store session token", err)
	}

	h.setSecureCookie(c, "access", token, int(SessionTTL.Seconds()))

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")
	logger.Success("User logged in successfully. uuid: " + account.Uuid + " at " + currentTime)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data: map[string]interface{}{
			"uuid":        account.Uuid,
			"username":    account.Username,
			"legal_name":  account.LegalName,
			"role":        account.Role,
			"permissions": account.Permissions,
			"session_id":  sess.ID,
			"locale":      sess.Locale,
			"expires_at":  sess.ExpiresAt,
		},
	})
}

func (h *AuthController) LogOut(c *fiber.Ctx) error {
	sessionID, ok := c.Locals("session_id").(uint)
	if ok {
		if err := h.sessions.Revoke(c.Context(), sessionID); err != nil {
			logger.Error("Failed to revoke session", err)
		}
	}

	// Clear the access cookie
	h.setSecureCookie(c, "access", "", -1)

	response := types.ApiResponse{
		Message: "Logout successful",
		Status:  fiber.StatusOK,
		Data:    nil,
	}
	logger.Success("Logout successful")
	return c.Status(fiber.StatusOK).JSON(response)
}

// UpdateLocale persists the signed-in session's language preference.
func (h *AuthController) UpdateLocale(c *fiber.Ctx) error {
	var req types.LocaleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}
	if strings.TrimSpace(req.Locale) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "locale is required",
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		})
	}

	sessionID, ok := c.Locals("session_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	if err := h.sessions.SetLocale(c.Context(), sessionID, req.Locale); err != nil {
		logger.Error("Failed to update session locale", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to update locale",
			Status:  fiber.StatusInternalServerError,
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Locale updated successfully",
		Status:  fiber.StatusOK,
		Data:    map[string]interface{}{"locale": req.Locale},
	})
}

// Touch extends nothing but confirms the session is still open; the client
// calls it on tab focus to decide whether to force a re-login.
func (h *AuthController) Touch(c *fiber.Ctx) error {
	sessionID, ok := c.Locals("session_id").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	sess, err := h.sessions.Get(c.Context(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Session active",
		Status:  fiber.StatusOK,
		Data: map[string]interface{}{
			"session_id": sess.ID,
			"locale":     sess.Locale,
			"expires_at": sess.ExpiresAt,
		},
	})
}
