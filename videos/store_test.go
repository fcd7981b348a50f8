package videos_test

import (
	"context"
	"testing"

	"github.com/princev89/chai-backend/models"
	"github.com/princev89/chai-backend/videos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *videos.GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Video{}))
	return videos.NewGormStore(db)
}

func seedVideo(t *testing.T, store *videos.GormStore, owner uint, title, description string) *models.Video {
	t.Helper()
	video := &models.Video{
		VideoFile:   "https://cdn.test/" + title + ".mp4",
		Thumbnail:   "https://cdn.test/" + title + ".jpg",
		Title:       title,
		Description: description,
		Duration:    12.5,
		OwnerID:     owner,
		IsPublished: true,
	}
	require.NoError(t, store.Create(context.Background(), video))
	return video
}

func TestGormStoreFindByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := seedVideo(t, store, 1, "Intro", "First video")

	found, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro", found.Title)
	assert.Equal(t, uint(1), found.OwnerID)

	_, err = store.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, videos.ErrNotFound)
}

func TestGormStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := seedVideo(t, store, 1, "Intro", "First video")

	updated, err := store.Update(ctx, created.ID, map[string]interface{}{
		"title":        "Intro v2",
		"is_published": false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Intro v2", updated.Title)
	assert.False(t, updated.IsPublished)
	assert.Equal(t, created.VideoFile, updated.VideoFile)

	_, err = store.Update(ctx, 9999, map[string]interface{}{"title": "x"})
	assert.ErrorIs(t, err, videos.ErrNotFound)
}

func TestGormStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := seedVideo(t, store, 1, "Intro", "First video")
	require.NoError(t, store.Delete(ctx, created.ID))

	_, err := store.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, videos.ErrNotFound)
}

func TestGormStoreList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedVideo(t, store, 1, "Go tutorial", "learn go basics")
	seedVideo(t, store, 1, "Cooking show", "pasta from scratch")
	seedVideo(t, store, 2, "Go concurrency", "channels and goroutines")

	result, err := store.List(ctx, videos.ListParams{Page: 1, Limit: 10, Query: "go"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	assert.Len(t, result.Videos, 2)

	result, err = store.List(ctx, videos.ListParams{Page: 1, Limit: 10, OwnerID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Videos, 1)
	assert.Equal(t, "Go concurrency", result.Videos[0].Title)

	// sort by title ascending
	result, err = store.List(ctx, videos.ListParams{Page: 1, Limit: 10, SortBy: "title", SortType: "asc"})
	require.NoError(t, err)
	require.Len(t, result.Videos, 3)
	assert.Equal(t, "Cooking show", result.Videos[0].Title)

	// an unknown sort column falls back to created_at rather than erroring
	result, err = store.List(ctx, videos.ListParams{Page: 1, Limit: 10, SortBy: "owner_id; DROP TABLE videos"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)

	// pagination windows
	result, err = store.List(ctx, videos.ListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Len(t, result.Videos, 1)
}
