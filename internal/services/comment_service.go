package services

import (
	"errors"
	"time"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"github.com/ecotrack/backend/internal/utils"
	"gorm.io/gorm"
)

// CommentService manages the two-level comment tree of a post and keeps the
// post's cached comment count in sync.
type CommentService struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// AddComment creates a comment on a post, optionally as a reply. The parent
// must exist and belong to the same post. The post's cached comment count is
// recomputed from the live row count, replies included.
func (s *CommentService) AddComment(postID, userID uint, content string, parentID *uint) (*models.Comment, error) {
	if parentID != nil {
		parent, err := s.commentRepository.GetCommentByID(*parentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrParentWrongPost
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: parentID,
		Content:  utils.SanitizeUserContent(content),
	}
	if err := s.commentRepository.CreateComment(comment); err != nil {
		return nil, err
	}

	if _, err := s.postRepository.RecountComments(postID); err != nil {
		return nil, err
	}

	return s.commentRepository.GetCommentByID(comment.ID)
}

// DeleteComment removes a comment and recounts the post's cache, mirroring
// the recount-on-change rule applied on creation.
func (s *CommentService) DeleteComment(comment *models.Comment) error {
	if err := s.commentRepository.DeleteComment(comment.ID); err != nil {
		return err
	}
	_, err := s.postRepository.RecountComments(comment.PostID)
	return err
}

// ListTopLevel returns a page of a post's top-level comments, oldest first,
// each carrying its replies and authors.
func (s *CommentService) ListTopLevel(postID uint, page, perPage int) ([]models.Comment, int64, error) {
	return s.commentRepository.GetTopLevelComments(postID, page, perPage)
}

// Preview returns the newest top-level comments for inline display on feed
// and detail views.
func (s *CommentService) Preview(postID uint, limit int) ([]models.Comment, error) {
	return s.commentRepository.GetLatestTopLevelComments(postID, limit)
}

// UpdateContent replaces a comment's content and marks it edited. Editing
// state is stamped here, not by dirty-tracking.
func (s *CommentService) UpdateContent(comment *models.Comment, content string) error {
	now := time.Now()
	comment.Content = utils.SanitizeUserContent(content)
	comment.IsEdited = true
	comment.EditedAt = &now
	return s.commentRepository.UpdateComment(comment)
}
