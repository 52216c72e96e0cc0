package repositories

import (
	"github.com/ecotrack/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPublishedPosts(page, perPage int) ([]models.Post, int64, error)
	GetUserPosts(userID uint, page, perPage int) ([]models.Post, int64, error)
	CountPublishedByUser(userID uint) (int64, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
	RecountReactions(postID uint) (int64, error)
	RecountComments(postID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID with its author preloaded
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPublishedPosts retrieves a page of published posts, latest first
func (r *PostgresPostRepository) GetPublishedPosts(page, perPage int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Where("is_published = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Where("is_published = ?", true).
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetUserPosts retrieves a page of a user's published posts, latest first
func (r *PostgresPostRepository) GetUserPosts(userID uint, page, perPage int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Where("user_id = ? AND is_published = ?", userID, true).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Where("user_id = ? AND is_published = ?", userID, true).
		Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// CountPublishedByUser returns the number of published posts a user owns
func (r *PostgresPostRepository) CountPublishedByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).
		Where("user_id = ? AND is_published = ?", userID, true).
		Count(&count).Error
	return count, err
}

// UpdatePost updates an existing post in PostgreSQL
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost deletes a post by ID; reactions and comments cascade
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// RecountReactions recomputes the post's cached reaction count from the live
// row count. A full recount is self-healing under concurrent writers, unlike
// increment/decrement deltas.
func (r *PostgresPostRepository) RecountReactions(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reaction{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	err := r.db.Model(&models.Post{}).Where("id = ?", postID).Update("reactions_count", count).Error
	return count, err
}

// RecountComments recomputes the post's cached comment count. Replies count
// too: the cache is "all comments attached to the post", not top-level only.
func (r *PostgresPostRepository) RecountComments(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	err := r.db.Model(&models.Post{}).Where("id = ?", postID).Update("comments_count", count).Error
	return count, err
}
