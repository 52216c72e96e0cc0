package models

import "time"

// PasswordResetCode is a short-lived 4-digit credential proving control of
// an email address. "used" doubles as "verified": it is set by a successful
// code verification, and the password change itself requires the
// verification to be recent.
type PasswordResetCode struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Email     string     `json:"email" gorm:"index;index:idx_reset_email_code_used"`
	Code      string     `json:"-" gorm:"size:4;index:idx_reset_email_code_used"`
	ExpiresAt time.Time  `json:"expires_at"`
	Used      bool       `json:"used" gorm:"default:false;index:idx_reset_email_code_used"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsExpired reports whether the code's expiry has passed.
func (c *PasswordResetCode) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// IsValid reports whether the code can still be verified.
func (c *PasswordResetCode) IsValid() bool {
	return !c.Used && !c.IsExpired()
}

type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=4,numeric"`
}

type ResetPasswordRequest struct {
	Email                string `json:"email" validate:"required,email"`
	Code                 string `json:"code" validate:"required,len=4,numeric"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}
