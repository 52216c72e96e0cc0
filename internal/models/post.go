package models

import (
	"time"
)

// Post represents a community feed post. Reaction and comment counts are
// denormalized caches maintained by full recount after every mutation.
type Post struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	UserID         uint           `json:"user_id" gorm:"not null;index:idx_posts_user_created"`
	User           User           `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Title          string         `json:"title" gorm:"not null"`
	Content        string         `json:"content" gorm:"type:text;not null"`
	Image          *string        `json:"image"` // Path to uploaded image
	IsPublished    bool           `json:"is_published" gorm:"default:true;index"`
	ReactionsCount int            `json:"reactions_count" gorm:"default:0"`
	CommentsCount  int            `json:"comments_count" gorm:"default:0"`
	Metadata       map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt      time.Time      `json:"created_at" gorm:"index:idx_posts_user_created"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Content     string  `json:"content" validate:"required,max=5000"`
	Image       *string `json:"image" validate:"omitempty,max=255"`
	IsPublished *bool   `json:"is_published"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title   string  `json:"title,omitempty" validate:"omitempty,max=255"`
	Content string  `json:"content,omitempty" validate:"omitempty,max=5000"`
	Image   *string `json:"image" validate:"omitempty,max=255"`
}

// Pagination describes the page window returned with list responses.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// NewPagination computes the page window for a total row count.
func NewPagination(page, perPage int, total int64) Pagination {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
}
