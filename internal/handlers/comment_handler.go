package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecotrack/backend/internal/middleware"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"github.com/ecotrack/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const commentsPerPage = 10

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService    *services.CommentService
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService, commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentService:    commentService,
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterPublicCommentRoutes registers comment routes readable without auth
func (h *CommentHandler) RegisterPublicCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.ListComments)
}

// RegisterProtectedCommentRoutes registers comment routes requiring auth
func (h *CommentHandler) RegisterProtectedCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.AddComment)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// AddComment creates a comment (or reply) on a post
func (h *CommentHandler) AddComment(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	postID, err := postIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return failInternal(c, "Failed to add comment", err)
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	comment, err := h.commentService.AddComment(postID, claims.UserID, req.Content, req.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrParentNotFound), errors.Is(err, services.ErrParentWrongPost):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"success": false,
				"message": "Validation failed",
				"errors":  map[string]string{"parent_id": "The selected parent_id is invalid"},
			})
		default:
			return failInternal(c, "Failed to add comment", err)
		}
	}

	return ok(c, http.StatusCreated, echo.Map{
		"message": "Comment added successfully",
		"comment": newCommentView(*comment),
	})
}

// ListComments returns a post's top-level comments, oldest first, with replies
func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return failInternal(c, "Failed to load comments", err)
	}

	page := pageParam(c)
	comments, total, err := h.commentService.ListTopLevel(postID, page, commentsPerPage)
	if err != nil {
		return failInternal(c, "Failed to load comments", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"comments":   newCommentViews(comments),
		"pagination": models.NewPagination(page, commentsPerPage, total),
	})
}

// UpdateComment edits a comment's content; only the author may edit. The
// comment is marked edited with a timestamp.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "Comment not found")
		}
		return failInternal(c, "Failed to update comment", err)
	}

	if comment.UserID != claims.UserID {
		return fail(c, http.StatusForbidden, "Unauthorized to edit this comment")
	}

	if err := h.commentService.UpdateContent(comment, req.Content); err != nil {
		return failInternal(c, "Failed to update comment", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"message": "Comment updated successfully",
		"comment": newCommentView(*comment),
	})
}

// DeleteComment removes a comment. The author may always delete; moderators
// and admins may remove any comment.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "Comment not found")
		}
		return failInternal(c, "Failed to delete comment", err)
	}

	canModerate := claims.Role == models.RoleAdmin || claims.Role == models.RoleModerator
	if comment.UserID != claims.UserID && !canModerate {
		return fail(c, http.StatusForbidden, "Unauthorized to delete this comment")
	}

	if err := h.commentService.DeleteComment(comment); err != nil {
		return failInternal(c, "Failed to delete comment", err)
	}

	return ok(c, http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}
