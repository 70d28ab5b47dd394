// file: internals/features/funnel/auth/controller/auth_controller.go
package controller

import (
	"log"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"suitability_backend/internals/configs"
	sdto "suitability_backend/internals/features/funnel/submissions/dto"
	helper "suitability_backend/internals/helpers"
)

const tokenTTL = 12 * time.Hour

// AuthController issues admin tokens for the viewer endpoints. There is a
// single admin identity configured via ADMIN_EMAIL + ADMIN_PASSWORD_HASH
// (bcrypt).
type AuthController struct {
	validator *validator.Validate
}

func NewAuthController() *AuthController {
	return &AuthController{validator: validator.New()}
}

// Login: POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req sdto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if configs.AdminPasswordHash == "" || configs.AdminEmail == "" {
		log.Println("[AUTH] admin login attempted but not configured")
		return helper.Error(c, fiber.StatusServiceUnavailable, "Admin login is not configured")
	}

	if req.Email != configs.AdminEmail {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(configs.AdminPasswordHash), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  req.Email,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		log.Printf("[AUTH] token sign failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.Success(c, "Login successful", sdto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(tokenTTL.Seconds()),
	})
}
