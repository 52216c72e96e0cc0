package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ecotrack/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentEndpoint_TopLevelAndReply(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "alice", models.RoleUser)
	post := env.createPost(t, user.ID)
	path := "/api/posts/" + itoa(post.ID) + "/comments"

	rec := env.request(http.MethodPost, path, token, `{"content":"Great initiative!"}`)
	requireStatus(t, rec, http.StatusCreated)
	body := decode(t, rec.Body.Bytes())
	comment := body["comment"].(map[string]any)
	parentID := uint(comment["id"].(float64))
	assert.Nil(t, comment["parent_id"])

	rec = env.request(http.MethodPost, path, token, fmt.Sprintf(`{"content":"Thanks!","parent_id":%d}`, parentID))
	requireStatus(t, rec, http.StatusCreated)

	// The cached count covers replies; the top-level listing shows one entry
	// carrying one reply.
	var reloaded models.Post
	require.NoError(t, env.db.First(&reloaded, post.ID).Error)
	assert.Equal(t, 2, reloaded.CommentsCount)

	rec = env.request(http.MethodGet, path, "", "")
	requireStatus(t, rec, http.StatusOK)
	body = decode(t, rec.Body.Bytes())
	comments := body["comments"].([]any)
	require.Len(t, comments, 1)
	replies := comments[0].(map[string]any)["replies"].([]any)
	require.Len(t, replies, 1)
	assert.Equal(t, "Thanks!", replies[0].(map[string]any)["content"])
}

func TestAddCommentEndpoint_ParentOnOtherPostRejected(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "alice", models.RoleUser)
	postA := env.createPost(t, user.ID)
	postB := env.createPost(t, user.ID)

	rec := env.request(http.MethodPost, "/api/posts/"+itoa(postA.ID)+"/comments", token, `{"content":"on A"}`)
	requireStatus(t, rec, http.StatusCreated)
	parentID := uint(decode(t, rec.Body.Bytes())["comment"].(map[string]any)["id"].(float64))

	rec = env.request(http.MethodPost, "/api/posts/"+itoa(postB.ID)+"/comments", token,
		fmt.Sprintf(`{"content":"cross-post","parent_id":%d}`, parentID))
	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestAddCommentEndpoint_ValidationAndAuth(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "alice", models.RoleUser)
	post := env.createPost(t, user.ID)
	path := "/api/posts/" + itoa(post.ID) + "/comments"

	rec := env.request(http.MethodPost, path, token, `{"content":""}`)
	requireStatus(t, rec, http.StatusUnprocessableEntity)

	rec = env.request(http.MethodPost, path, "", `{"content":"anonymous"}`)
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestUpdateCommentEndpoint_MarksEdited(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "alice", models.RoleUser)
	post := env.createPost(t, user.ID)

	rec := env.request(http.MethodPost, "/api/posts/"+itoa(post.ID)+"/comments", token, `{"content":"typo here"}`)
	requireStatus(t, rec, http.StatusCreated)
	commentID := uint(decode(t, rec.Body.Bytes())["comment"].(map[string]any)["id"].(float64))

	rec = env.request(http.MethodPut, "/api/comments/"+itoa(commentID), token, `{"content":"typo fixed"}`)
	requireStatus(t, rec, http.StatusOK)
	comment := decode(t, rec.Body.Bytes())["comment"].(map[string]any)
	assert.Equal(t, "typo fixed", comment["content"])
	assert.Equal(t, true, comment["is_edited"])
	assert.NotNil(t, comment["edited_at"])
}

func TestUpdateCommentEndpoint_AuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "alice", models.RoleUser)
	_, otherToken := env.createUser(t, "bob", models.RoleUser)
	post := env.createPost(t, user.ID)

	rec := env.request(http.MethodPost, "/api/posts/"+itoa(post.ID)+"/comments", token, `{"content":"mine"}`)
	requireStatus(t, rec, http.StatusCreated)
	commentID := uint(decode(t, rec.Body.Bytes())["comment"].(map[string]any)["id"].(float64))

	rec = env.request(http.MethodPut, "/api/comments/"+itoa(commentID), otherToken, `{"content":"hijacked"}`)
	requireStatus(t, rec, http.StatusForbidden)
}

func TestDeleteCommentEndpoint_RecountsCache(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "alice", models.RoleUser)
	post := env.createPost(t, user.ID)

	rec := env.request(http.MethodPost, "/api/posts/"+itoa(post.ID)+"/comments", token, `{"content":"temporary"}`)
	requireStatus(t, rec, http.StatusCreated)
	commentID := uint(decode(t, rec.Body.Bytes())["comment"].(map[string]any)["id"].(float64))

	rec = env.request(http.MethodDelete, "/api/comments/"+itoa(commentID), token, "")
	requireStatus(t, rec, http.StatusOK)

	var reloaded models.Post
	require.NoError(t, env.db.First(&reloaded, post.ID).Error)
	assert.Equal(t, 0, reloaded.CommentsCount)
}
