package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/ecotrack/backend/internal/middleware"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"github.com/ecotrack/backend/internal/utils"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository) *AuthHandler {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey"
	}
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers the public authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// RegisterProtectedAuthRoutes registers routes requiring a valid token
func (h *AuthHandler) RegisterProtectedAuthRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
	g.POST("/logout", h.Logout)
}

// Register handles user registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return fail(c, http.StatusConflict, "User with this email already registered")
	}
	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return fail(c, http.StatusConflict, "Username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return failInternal(c, "Failed to register", err)
	}

	user := &models.User{
		Name:     utils.SanitizePlain(req.Name),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return failInternal(c, "Failed to register", err)
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return failInternal(c, "Failed to generate token after registration", err)
	}

	return ok(c, http.StatusCreated, echo.Map{
		"message": "Registered successfully",
		"token":   token,
		"user":    user,
	})
}

// Login handles user authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return failInternal(c, "Failed to sign in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive() {
		return fail(c, http.StatusForbidden, "Account is not active")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return failInternal(c, "Failed to generate token", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's full account record
func (h *AuthHandler) Me(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Account no longer exists")
	}
	return ok(c, http.StatusOK, echo.Map{"user": user})
}

// Logout acknowledges a client-side token discard. Tokens are stateless, so
// there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)), // Token expires in 72 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
