package handlers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecotrack/backend/internal/middleware"
	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"github.com/ecotrack/backend/internal/services"
	"github.com/ecotrack/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full handler stack onto an in-memory database, mirroring
// the production router.
type testEnv struct {
	e           *echo.Echo
	db          *gorm.DB
	authHandler *AuthHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Reaction{},
		&models.Comment{},
		&models.PasswordResetCode{},
	))

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	reactionRepo := repositories.NewPostgresReactionRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	resetCodeRepo := repositories.NewPostgresResetCodeRepository(db)

	reactionService := services.NewReactionService(reactionRepo, postRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	resetService := services.NewPasswordResetService(resetCodeRepo, userRepo, nil)

	e := echo.New()
	e.Validator = validators.NewValidator()

	authHandler := NewAuthHandler(userRepo)
	resetHandler := NewPasswordResetHandler(resetService)
	postHandler := NewPostHandler(postRepo, reactionService, commentService)
	commentHandler := NewCommentHandler(commentService, commentRepo, postRepo)
	userHandler := NewUserHandler(userRepo, postRepo)

	authGroup := e.Group("/api/auth")
	authHandler.RegisterAuthRoutes(authGroup)
	resetHandler.RegisterPasswordResetRoutes(authGroup)

	public := e.Group("/api")
	public.Use(middleware.OptionalJWTAuthMiddleware())
	postHandler.RegisterPublicPostRoutes(public)
	commentHandler.RegisterPublicCommentRoutes(public)
	userHandler.RegisterPublicRoutes(public)

	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	authHandler.RegisterProtectedAuthRoutes(api.Group("/auth"))
	userHandler.RegisterProfileRoutes(api)
	postHandler.RegisterProtectedPostRoutes(api)
	commentHandler.RegisterProtectedCommentRoutes(api)

	return &testEnv{e: e, db: db, authHandler: authHandler}
}

func (env *testEnv) createUser(t *testing.T, username, role string) (*models.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Name:     "Test " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Role:     role,
		Status:   models.StatusActive,
	}
	require.NoError(t, env.db.Create(user).Error)

	token, err := env.authHandler.generateJWT(user)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) createPost(t *testing.T, userID uint) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      userID,
		Title:       "Community cleanup",
		Content:     "Join us on Saturday!",
		IsPublished: true,
	}
	require.NoError(t, env.db.Create(post).Error)
	return post
}

func (env *testEnv) request(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
