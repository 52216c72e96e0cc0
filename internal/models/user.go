package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User roles
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User account statuses
const (
	StatusActive    = "active"
	StatusBanned    = "banned"
	StatusSuspended = "suspended"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name"`
	Username     string         `json:"username" gorm:"size:50;uniqueIndex"`
	Email        string         `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password     string         `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Role         string         `json:"role" gorm:"size:20;default:user;index"`
	Status       string         `json:"status" gorm:"size:20;default:active;index"`
	ProfileImage *string        `json:"profile_image"`
	Bio          *string        `json:"bio"`
	Phone        *string        `json:"phone" gorm:"size:20"`
	EcoScore     int            `json:"eco_score" gorm:"default:0;index"`
	Language     string         `json:"language" gorm:"size:2;default:en"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	return u.Role == role
}

// CanModerate reports whether the user may act on other users' content.
func (u *User) CanModerate() bool {
	return u.Role == RoleAdmin || u.Role == RoleModerator
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func (u *User) IsBanned() bool {
	return u.Status == StatusBanned
}

// PublicProfile is the subset of user fields exposed alongside posts and comments.
type PublicProfile struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profile_image"`
}

// Public returns the user's public display fields.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Username string  `json:"username" validate:"required,max=50,alphanum"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Language string  `json:"language,omitempty" validate:"omitempty,oneof=en de"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
