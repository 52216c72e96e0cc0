package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ecotrack/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// All responses share the {success, message?} envelope plus
// operation-specific fields.

func ok(c echo.Context, status int, fields echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(status, body)
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"message": message,
	})
}

// failInternal logs the underlying error and returns a non-committal 500.
// The raw error string never reaches the client.
func failInternal(c echo.Context, message string, err error) error {
	c.Logger().Errorf("%s: %v", message, err)
	return fail(c, http.StatusInternalServerError, message)
}

// failValidation returns a 422 with field-level messages.
func failValidation(c echo.Context, err error) error {
	fieldErrors := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fieldErrors[strings.ToLower(fe.Field())] = validationMessage(fe)
		}
	}
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  fieldErrors,
	})
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required"
	case "email":
		return "The " + field + " must be a valid email address"
	case "min":
		return "The " + field + " must be at least " + fe.Param() + " characters"
	case "max":
		return "The " + field + " may not be greater than " + fe.Param() + " characters"
	case "len":
		return "The " + field + " must be " + fe.Param() + " characters"
	case "eqfield":
		return "The " + field + " confirmation does not match"
	case "oneof":
		return "The " + field + " must be one of: " + fe.Param()
	default:
		return "The " + field + " is invalid"
	}
}

// commentView augments a comment with its author's public fields and
// recursively-shaped replies for JSON output.
type commentView struct {
	models.Comment
	User    models.PublicProfile `json:"user"`
	Replies []commentView        `json:"replies"`
}

func newCommentView(comment models.Comment) commentView {
	view := commentView{
		Comment: comment,
		User:    comment.User.Public(),
		Replies: []commentView{},
	}
	for _, reply := range comment.Replies {
		view.Replies = append(view.Replies, newCommentView(reply))
	}
	return view
}

func newCommentViews(comments []models.Comment) []commentView {
	views := make([]commentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, newCommentView(comment))
	}
	return views
}

// postView augments a post with its author, the viewer's reaction, per-type
// reaction counts and the inline comment preview.
type postView struct {
	models.Post
	User             models.PublicProfile `json:"user"`
	UserReaction     *models.Reaction     `json:"user_reaction"`
	ReactionCounts   map[string]int64     `json:"reaction_counts"`
	TopLevelComments []commentView        `json:"top_level_comments"`
}
