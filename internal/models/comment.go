package models

import "time"

// Comment belongs to a post and optionally to a parent comment. A nil
// ParentID marks a top-level comment; replies nest one level deep in
// practice.
type Comment struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	PostID    uint       `json:"post_id" gorm:"not null;index"`
	Post      Post       `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	UserID    uint       `json:"user_id" gorm:"not null;index"`
	User      User       `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ParentID  *uint      `json:"parent_id" gorm:"index"` // Nullable for top-level comments
	Replies   []Comment  `json:"replies,omitempty" gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	IsEdited  bool       `json:"is_edited" gorm:"default:false"`
	EditedAt  *time.Time `json:"edited_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsReply reports whether the comment is attached to a parent comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=1000"`
	ParentID *uint  `json:"parent_id"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
