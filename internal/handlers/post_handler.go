package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecotrack/backend/internal/middleware"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"github.com/ecotrack/backend/internal/services"
	"github.com/ecotrack/backend/internal/utils"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	postsPerPage        = 10
	commentPreviewCount = 3 // Show only 3 recent comments initially
)

// PostHandler handles HTTP requests for the community feed
type PostHandler struct {
	postRepository  repositories.PostRepository
	reactionService *services.ReactionService
	commentService  *services.CommentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, reactionService *services.ReactionService, commentService *services.CommentService) *PostHandler {
	return &PostHandler{
		postRepository:  postRepo,
		reactionService: reactionService,
		commentService:  commentService,
	}
}

// RegisterPublicPostRoutes registers routes readable without authentication.
// Optional auth lets the feed include the viewer's own reaction.
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.ShowPost)
	g.GET("/users/:id/posts", h.ListUserPosts)
	g.GET("/reactions/types", h.ListReactionTypes)
}

// RegisterProtectedPostRoutes registers routes requiring authentication
func (h *PostHandler) RegisterProtectedPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/react", h.ToggleReaction)
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func postIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// buildPostView assembles the feed/detail shape of a post: author, viewer's
// reaction, per-type counts and a short preview of recent comments.
func (h *PostHandler) buildPostView(post models.Post, viewer *models.JwtCustomClaims, previewLimit int) (postView, error) {
	view := postView{
		Post:             post,
		User:             post.User.Public(),
		TopLevelComments: []commentView{},
	}

	counts, err := h.reactionService.CountsByType(post.ID)
	if err != nil {
		return view, err
	}
	view.ReactionCounts = counts

	if viewer != nil {
		reaction, err := h.reactionService.UserReaction(post.ID, viewer.UserID)
		if err != nil {
			return view, err
		}
		view.UserReaction = reaction
	}

	if previewLimit > 0 {
		preview, err := h.commentService.Preview(post.ID, previewLimit)
		if err != nil {
			return view, err
		}
		view.TopLevelComments = newCommentViews(preview)
	}
	return view, nil
}

func (h *PostHandler) buildPostViews(posts []models.Post, viewer *models.JwtCustomClaims) ([]postView, error) {
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		view, err := h.buildPostView(post, viewer, commentPreviewCount)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ListPosts returns the community feed, latest first
func (h *PostHandler) ListPosts(c echo.Context) error {
	page := pageParam(c)
	posts, total, err := h.postRepository.GetPublishedPosts(page, postsPerPage)
	if err != nil {
		return failInternal(c, "Failed to load posts", err)
	}

	views, err := h.buildPostViews(posts, middleware.CurrentUser(c))
	if err != nil {
		return failInternal(c, "Failed to load posts", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"posts":      views,
		"pagination": models.NewPagination(page, postsPerPage, total),
	})
}

// ListUserPosts returns a specific user's published posts, latest first
func (h *PostHandler) ListUserPosts(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid user ID")
	}

	page := pageParam(c)
	posts, total, err := h.postRepository.GetUserPosts(uint(userID), page, postsPerPage)
	if err != nil {
		return failInternal(c, "Failed to load user posts", err)
	}

	views, err := h.buildPostViews(posts, middleware.CurrentUser(c))
	if err != nil {
		return failInternal(c, "Failed to load user posts", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"posts":      views,
		"pagination": models.NewPagination(page, postsPerPage, total),
	})
}

// CreatePost creates a new post owned by the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims := middleware.CurrentUser(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	post := &models.Post{
		UserID:      claims.UserID,
		Title:       utils.SanitizePlain(req.Title),
		Content:     utils.SanitizeUserContent(req.Content),
		Image:       req.Image,
		IsPublished: published,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return failInternal(c, "Failed to create post", err)
	}

	created, err := h.postRepository.GetPostByID(post.ID)
	if err != nil {
		return failInternal(c, "Failed to create post", err)
	}
	view, err := h.buildPostView(*created, claims, 0)
	if err != nil {
		return failInternal(c, "Failed to create post", err)
	}

	return ok(c, http.StatusCreated, echo.Map{
		"message": "Post created successfully",
		"post":    view,
	})
}

// ShowPost returns a single post with its full comment tree preview
func (h *PostHandler) ShowPost(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return failInternal(c, "Failed to load post", err)
	}

	view, err := h.buildPostView(*post, middleware.CurrentUser(c), commentPreviewCount)
	if err != nil {
		return failInternal(c, "Failed to load post", err)
	}

	return ok(c, http.StatusOK, echo.Map{"post": view})
}

// UpdatePost updates a post; only the owner may edit
func (h *PostHandler) UpdatePost(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	postID, err := postIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return failInternal(c, "Failed to update post", err)
	}

	if post.UserID != claims.UserID {
		return fail(c, http.StatusForbidden, "Unauthorized to edit this post")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	if req.Title != "" {
		post.Title = utils.SanitizePlain(req.Title)
	}
	if req.Content != "" {
		post.Content = utils.SanitizeUserContent(req.Content)
	}
	if req.Image != nil {
		post.Image = req.Image
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return failInternal(c, "Failed to update post", err)
	}

	view, err := h.buildPostView(*post, claims, 0)
	if err != nil {
		return failInternal(c, "Failed to update post", err)
	}

	return ok(c, http.StatusOK, echo.Map{
		"message": "Post updated successfully",
		"post":    view,
	})
}

// DeletePost deletes a post. The owner may always delete; moderators and
// admins may remove any post.
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	postID, err := postIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return failInternal(c, "Failed to delete post", err)
	}

	canModerate := claims.Role == models.RoleAdmin || claims.Role == models.RoleModerator
	if post.UserID != claims.UserID && !canModerate {
		return fail(c, http.StatusForbidden, "Unauthorized to delete this post")
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return failInternal(c, "Failed to delete post", err)
	}

	return ok(c, http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// ToggleReaction applies one reaction toggle for the authenticated user
func (h *PostHandler) ToggleReaction(c echo.Context) error {
	claims := middleware.CurrentUser(c)
	postID, err := postIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid post ID")
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return failInternal(c, "Failed to toggle reaction", err)
	}

	var req models.ToggleReactionRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return failValidation(c, err)
	}

	result, err := h.reactionService.Toggle(postID, claims.UserID, req.Type)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReactionType) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"success": false,
				"message": "Invalid reaction type",
				"errors":  map[string]string{"type": "The type must be a valid reaction"},
			})
		}
		return failInternal(c, "Failed to toggle reaction", err)
	}

	var message string
	switch result.Action {
	case services.ActionAdded:
		message = "Reaction added"
	case services.ActionRemoved:
		message = "Reaction removed"
	case services.ActionUpdated:
		message = "Reaction updated"
	}

	return ok(c, http.StatusOK, echo.Map{
		"message":         message,
		"action":          result.Action,
		"user_reaction":   result.UserReaction,
		"reaction_counts": result.ReactionCounts,
		"total_reactions": result.TotalReactions,
	})
}

// ListReactionTypes returns the closed reaction enumeration with its
// display metadata
func (h *PostHandler) ListReactionTypes(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{
		"reactions": models.AvailableReactionsWithDetails(),
	})
}
