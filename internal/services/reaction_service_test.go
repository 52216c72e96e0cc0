package services

import (
	"testing"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReactionService(t *testing.T) (*ReactionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewReactionService(
		repositories.NewPostgresReactionRepository(db),
		repositories.NewPostgresPostRepository(db),
	), db
}

func reactionRows(t *testing.T, db *gorm.DB, postID uint) []models.Reaction {
	t.Helper()
	var rows []models.Reaction
	require.NoError(t, db.Where("post_id = ?", postID).Find(&rows).Error)
	return rows
}

func cachedReactionCount(t *testing.T, db *gorm.DB, postID uint) int {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, postID).Error)
	return post.ReactionsCount
}

func TestToggle_AddsNewReaction(t *testing.T) {
	svc, db := newReactionService(t)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	result, err := svc.Toggle(post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)

	assert.Equal(t, ActionAdded, result.Action)
	require.NotNil(t, result.UserReaction)
	assert.Equal(t, models.ReactionLike, result.UserReaction.Type)
	assert.Equal(t, map[string]int64{models.ReactionLike: 1}, result.ReactionCounts)
	assert.Equal(t, int64(1), result.TotalReactions)
	assert.Equal(t, 1, cachedReactionCount(t, db, post.ID))
}

func TestToggle_SameTypeTwiceRemoves(t *testing.T) {
	svc, db := newReactionService(t)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	_, err := svc.Toggle(post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)

	result, err := svc.Toggle(post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)

	assert.Equal(t, ActionRemoved, result.Action)
	assert.Nil(t, result.UserReaction)
	assert.Empty(t, result.ReactionCounts)
	assert.Equal(t, int64(0), result.TotalReactions)
	assert.Empty(t, reactionRows(t, db, post.ID))
	assert.Equal(t, 0, cachedReactionCount(t, db, post.ID))
}

func TestToggle_DifferentTypeUpdatesInPlace(t *testing.T) {
	svc, db := newReactionService(t)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	first, err := svc.Toggle(post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)

	result, err := svc.Toggle(post.ID, user.ID, models.ReactionLove)
	require.NoError(t, err)

	assert.Equal(t, ActionUpdated, result.Action)
	require.NotNil(t, result.UserReaction)
	assert.Equal(t, models.ReactionLove, result.UserReaction.Type)
	// Row identity is preserved: updated in place, not delete+recreate.
	assert.Equal(t, first.UserReaction.ID, result.UserReaction.ID)

	rows := reactionRows(t, db, post.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ReactionLove, rows[0].Type)
	assert.Equal(t, map[string]int64{models.ReactionLove: 1}, result.ReactionCounts)
	assert.Equal(t, int64(1), result.TotalReactions)
}

func TestToggle_InvalidTypeRejected(t *testing.T) {
	svc, db := newReactionService(t)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	_, err := svc.Toggle(post.ID, user.ID, "thumbsup")
	assert.ErrorIs(t, err, ErrInvalidReactionType)
	assert.Empty(t, reactionRows(t, db, post.ID))
}

func TestToggle_LikeThenLoveThenLoveScenario(t *testing.T) {
	svc, db := newReactionService(t)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	result, err := svc.Toggle(post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{models.ReactionLike: 1}, result.ReactionCounts)
	assert.Equal(t, int64(1), result.TotalReactions)

	result, err = svc.Toggle(post.ID, user.ID, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{models.ReactionLove: 1}, result.ReactionCounts)
	assert.Equal(t, int64(1), result.TotalReactions)

	result, err = svc.Toggle(post.ID, user.ID, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, ActionRemoved, result.Action)
	assert.Empty(t, result.ReactionCounts)
	assert.Equal(t, int64(0), result.TotalReactions)
}

func TestToggle_CountsPerUserIndependent(t *testing.T) {
	svc, db := newReactionService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	post := createTestPost(t, db, alice.ID)

	_, err := svc.Toggle(post.ID, alice.ID, models.ReactionEcoLove)
	require.NoError(t, err)
	_, err = svc.Toggle(post.ID, bob.ID, models.ReactionEcoLove)
	require.NoError(t, err)
	result, err := svc.Toggle(post.ID, carol.ID, models.ReactionRecycle)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		models.ReactionEcoLove: 2,
		models.ReactionRecycle: 1,
	}, result.ReactionCounts)
	assert.Equal(t, int64(3), result.TotalReactions)
	assert.Equal(t, 3, cachedReactionCount(t, db, post.ID))
}

func TestToggle_DuplicateInsertFallsBackToUpdate(t *testing.T) {
	svc, db := newReactionService(t)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	// Simulate a racing request that inserted between our lookup and insert:
	// the row already exists, so a direct insert hits the unique index.
	require.NoError(t, db.Create(&models.Reaction{
		PostID: post.ID,
		UserID: user.ID,
		Type:   models.ReactionLike,
	}).Error)

	err := db.Create(&models.Reaction{
		PostID: post.ID,
		UserID: user.ID,
		Type:   models.ReactionLove,
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The toggle path sees the existing row and updates it instead.
	result, err := svc.Toggle(post.ID, user.ID, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, result.Action)
	require.Len(t, reactionRows(t, db, post.ID), 1)
}

func TestCountsByType_OmitsZeroTypes(t *testing.T) {
	svc, db := newReactionService(t)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	_, err := svc.Toggle(post.ID, user.ID, models.ReactionGreenEnergy)
	require.NoError(t, err)

	counts, err := svc.CountsByType(post.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{models.ReactionGreenEnergy: 1}, counts)
	_, present := counts[models.ReactionDislike]
	assert.False(t, present, "types with zero reactions must be absent, not zero")
}

func TestUserReaction_NoneIsNil(t *testing.T) {
	svc, db := newReactionService(t)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	reaction, err := svc.UserReaction(post.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, reaction)
}
