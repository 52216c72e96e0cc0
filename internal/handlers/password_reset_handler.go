package handlers

import (
	"errors"
	"net/http"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PasswordResetHandler exposes the reset-code lifecycle over HTTP
type PasswordResetHandler struct {
	resetService *services.PasswordResetService
}

// NewPasswordResetHandler creates a new PasswordResetHandler
func NewPasswordResetHandler(resetService *services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: resetService}
}

// RegisterPasswordResetRoutes registers the public reset-flow routes
func (h *PasswordResetHandler) RegisterPasswordResetRoutes(g *echo.Group) {
	g.POST("/password/request-reset", h.RequestReset)
	g.POST("/password/verify-code", h.VerifyCode)
	g.POST("/password/reset", h.ResetPassword)
}

// RequestReset issues a reset code for an active account and emails it
func (h *PasswordResetHandler) RequestReset(c echo.Context) error {
	var req models.RequestResetRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	if err := h.resetService.RequestReset(req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			return fail(c, http.StatusNotFound, "Account not found or not active")
		case errors.Is(err, services.ErrTooManyRequests):
			return fail(c, http.StatusTooManyRequests, "A code was sent recently. Please wait before retrying")
		default:
			return failInternal(c, "Failed to send reset code", err)
		}
	}

	return ok(c, http.StatusOK, echo.Map{
		"message": "Password reset code sent to your email address",
		"email":   req.Email,
	})
}

// VerifyCode validates a pending reset code and marks it verified
func (h *PasswordResetHandler) VerifyCode(c echo.Context) error {
	var req models.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	if err := h.resetService.VerifyCode(req.Email, req.Code); err != nil {
		if errors.Is(err, services.ErrInvalidCode) {
			return fail(c, http.StatusBadRequest, "Invalid or expired code")
		}
		return failInternal(c, "Failed to verify code", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"message": "Code verified successfully",
		"email":   req.Email,
	})
}

// ResetPassword changes the account credential after a recent verification
func (h *PasswordResetHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	if err := h.resetService.ResetPassword(req.Email, req.Code, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrCodeNotVerified):
			return fail(c, http.StatusBadRequest, "Code not verified or verification expired. Please verify the code first")
		case errors.Is(err, services.ErrUserNotFound):
			return fail(c, http.StatusNotFound, "User not found")
		default:
			return failInternal(c, "Failed to reset password", err)
		}
	}

	return ok(c, http.StatusOK, echo.Map{"message": "Password reset successfully"})
}
