package repositories

import (
	"github.com/ecotrack/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	CreateReaction(reaction *models.Reaction) error
	GetReaction(postID, userID uint) (*models.Reaction, error)
	UpdateReactionType(reaction *models.Reaction, newType string) error
	DeleteReaction(reaction *models.Reaction) error
	CountByPost(postID uint) (int64, error)
	CountsByType(postID uint) (map[string]int64, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CreateReaction inserts a reaction row. The unique (user_id, post_id) index
// rejects a duplicate insert from a racing request; callers translate that
// into a retry of the lookup branch.
func (r *PostgresReactionRepository) CreateReaction(reaction *models.Reaction) error {
	return r.db.Create(reaction).Error
}

// GetReaction retrieves the reaction a user left on a post, if any
func (r *PostgresReactionRepository) GetReaction(postID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

// UpdateReactionType changes a reaction's type in place, preserving row identity
func (r *PostgresReactionRepository) UpdateReactionType(reaction *models.Reaction, newType string) error {
	return r.db.Model(reaction).Update("type", newType).Error
}

// DeleteReaction removes a reaction row
func (r *PostgresReactionRepository) DeleteReaction(reaction *models.Reaction) error {
	return r.db.Delete(reaction).Error
}

// CountByPost returns the total number of reactions on a post
func (r *PostgresReactionRepository) CountByPost(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CountsByType groups a post's reactions by type. Types with no reactions
// are absent from the map, not present with value 0.
func (r *PostgresReactionRepository) CountsByType(postID uint) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	if err := r.db.Model(&models.Reaction{}).
		Select("type, count(*) as count").
		Where("post_id = ?", postID).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}
