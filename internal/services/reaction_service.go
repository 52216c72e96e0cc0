package services

import (
	"errors"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"gorm.io/gorm"
)

// Toggle actions
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
	ActionUpdated = "updated"
)

// ToggleResult describes the outcome of a reaction toggle.
type ToggleResult struct {
	Action         string
	UserReaction   *models.Reaction
	ReactionCounts map[string]int64
	TotalReactions int64
}

// ReactionService implements the reaction toggle state machine and keeps the
// post's cached reaction count in sync.
type ReactionService struct {
	reactionRepository repositories.ReactionRepository
	postRepository     repositories.PostRepository
}

// NewReactionService creates a new ReactionService
func NewReactionService(reactionRepo repositories.ReactionRepository, postRepo repositories.PostRepository) *ReactionService {
	return &ReactionService{
		reactionRepository: reactionRepo,
		postRepository:     postRepo,
	}
}

// Toggle applies one transition of the reaction state machine for
// (post, user): no reaction ⇒ add, same type ⇒ remove, different type ⇒
// update in place. The post's cached count is recomputed from the live row
// count afterwards.
func (s *ReactionService) Toggle(postID, userID uint, requestedType string) (*ToggleResult, error) {
	if !models.IsValidReactionType(requestedType) {
		return nil, ErrInvalidReactionType
	}

	action, err := s.toggle(postID, userID, requestedType)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race against another toggle by the same user; the unique
		// (user_id, post_id) index rejected our insert. The row now exists,
		// so a single retry lands in the update-or-remove branch.
		action, err = s.toggle(postID, userID, requestedType)
	}
	if err != nil {
		return nil, err
	}

	// Full recount, not a delta. Safe under concurrent writers.
	total, err := s.postRepository.RecountReactions(postID)
	if err != nil {
		return nil, err
	}

	counts, err := s.reactionRepository.CountsByType(postID)
	if err != nil {
		return nil, err
	}

	result := &ToggleResult{
		Action:         action,
		ReactionCounts: counts,
		TotalReactions: total,
	}
	if action != ActionRemoved {
		reaction, err := s.reactionRepository.GetReaction(postID, userID)
		if err != nil {
			return nil, err
		}
		result.UserReaction = reaction
	}
	return result, nil
}

func (s *ReactionService) toggle(postID, userID uint, requestedType string) (string, error) {
	existing, err := s.reactionRepository.GetReaction(postID, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		reaction := &models.Reaction{
			PostID: postID,
			UserID: userID,
			Type:   requestedType,
		}
		if err := s.reactionRepository.CreateReaction(reaction); err != nil {
			return "", err
		}
		return ActionAdded, nil
	case err != nil:
		return "", err
	case existing.Type == requestedType:
		if err := s.reactionRepository.DeleteReaction(existing); err != nil {
			return "", err
		}
		return ActionRemoved, nil
	default:
		if err := s.reactionRepository.UpdateReactionType(existing, requestedType); err != nil {
			return "", err
		}
		return ActionUpdated, nil
	}
}

// CountsByType returns the post's current per-type reaction counts.
func (s *ReactionService) CountsByType(postID uint) (map[string]int64, error) {
	return s.reactionRepository.CountsByType(postID)
}

// UserReaction returns the reaction a user left on a post, or nil.
func (s *ReactionService) UserReaction(postID, userID uint) (*models.Reaction, error) {
	reaction, err := s.reactionRepository.GetReaction(postID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reaction, nil
}
