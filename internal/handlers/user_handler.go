package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecotrack/backend/internal/middleware"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"github.com/ecotrack/backend/internal/utils"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles profile-related HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
	}
}

// RegisterProfileRoutes registers authenticated profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/user/profile", h.Profile)
	g.PUT("/user/profile", h.UpdateProfile)
}

// RegisterPublicRoutes registers publicly readable user routes
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/:id", h.PublicProfile)
}

// Profile returns the authenticated user's account data
func (h *UserHandler) Profile(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return failInternal(c, "Failed to get profile data", err)
	}
	return ok(c, http.StatusOK, echo.Map{"user": user})
}

// UpdateProfile updates the authenticated user's account data
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims := middleware.CurrentUser(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return failInternal(c, "Failed to update profile", err)
	}

	// Username and email must stay unique across other accounts.
	if other, err := h.userRepository.GetUserByUsername(req.Username); err == nil && other.ID != user.ID {
		return fail(c, http.StatusConflict, "Username already taken")
	}
	if other, err := h.userRepository.GetUserByEmail(req.Email); err == nil && other.ID != user.ID {
		return fail(c, http.StatusConflict, "Email already in use")
	}

	user.Name = utils.SanitizePlain(req.Name)
	user.Username = req.Username
	user.Email = req.Email
	user.Bio = req.Bio
	user.Phone = req.Phone
	if req.Language != "" {
		user.Language = req.Language
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return failInternal(c, "Failed to update profile", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// PublicProfile returns public profile data for any user
func (h *UserHandler) PublicProfile(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return failInternal(c, "Failed to load profile", err)
	}

	postsCount, err := h.postRepository.CountPublishedByUser(user.ID)
	if err != nil {
		return failInternal(c, "Failed to load profile", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":            user.ID,
			"name":          user.Name,
			"username":      user.Username,
			"bio":           user.Bio,
			"profile_image": user.ProfileImage,
			"eco_score":     user.EcoScore,
			"role":          user.Role,
			"created_at":    user.CreatedAt,
		},
		"posts_count": postsCount,
	})
}
