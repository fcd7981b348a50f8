package videos

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/princev89/chai-backend/httpx"
	"github.com/princev89/chai-backend/media"
	"github.com/princev89/chai-backend/models"
	"github.com/princev89/chai-backend/tasks"
)

const videoEventsChannel = "video_events"

// VideoEventMessage is published to Redis after every successful mutation.
type VideoEventMessage struct {
	Event   string `json:"event"`
	VideoID uint   `json:"video_id"`
	OwnerID uint   `json:"owner_id"`
}

type Handler struct {
	Store Store
	Media media.Store
	Redis *redis.Client
}

func NewHandler(store Store, mediaStore media.Store, rdb *redis.Client) *Handler {
	return &Handler{Store: store, Media: mediaStore, Redis: rdb}
}

// listRequest is the fully-parsed input of ListVideos. Each operation binds
// its input into one of these structs up front; handler logic below the
// binding never reads the gin context again.
type listRequest struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	UserID   uint
}

type publishRequest struct {
	Title       string
	Description string
	VideoFile   *multipart.FileHeader
	Thumbnail   *multipart.FileHeader
	CallerID    uint
}

type updateRequest struct {
	VideoID     uint
	Title       string
	Description string
	Thumbnail   *multipart.FileHeader
	CallerID    uint
}

// ListVideos returns one page of the video collection, optionally filtered
// by a title/description substring and by owner.
func (h *Handler) ListVideos(c *gin.Context) error {
	req := listRequest{
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 10),
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
	}
	if raw := c.Query("userId"); raw != "" {
		ownerID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return httpx.ErrBadRequest("userId must be numeric")
		}
		req.UserID = uint(ownerID)
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 10
	}

	result, err := h.Store.List(c.Request.Context(), ListParams{
		Page:     req.Page,
		Limit:    req.Limit,
		Query:    req.Query,
		SortBy:   req.SortBy,
		SortType: req.SortType,
		OwnerID:  req.UserID,
	})
	if err != nil {
		return err
	}

	httpx.OK(c, result, "Videos fetched successfully")
	return nil
}

// PublishAVideo uploads both assets and creates the video record. If the
// record insert fails after the uploads succeeded, the uploaded assets are
// deleted again so nothing is left orphaned in the media store.
func (h *Handler) PublishAVideo(c *gin.Context) error {
	req := publishRequest{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		CallerID:    c.GetUint("user_id"),
	}
	req.VideoFile, _ = c.FormFile("videoFile")
	req.Thumbnail, _ = c.FormFile("thumbnail")

	if req.Title == "" || req.Description == "" {
		return httpx.ErrBadRequest("Title and description are required")
	}
	if req.VideoFile == nil || req.Thumbnail == nil {
		return httpx.ErrBadRequest("Both video and thumbnail files are required")
	}

	ctx := c.Request.Context()

	videoPath, err := saveUpload(c, req.VideoFile)
	if err != nil {
		return err
	}
	defer os.Remove(videoPath)

	thumbPath, err := saveUpload(c, req.Thumbnail)
	if err != nil {
		return err
	}
	defer os.Remove(thumbPath)

	videoAsset, err := h.Media.Upload(ctx, videoPath)
	if err != nil {
		log.Printf("Error uploading video asset: %v", err)
		return httpx.ErrInternal("Error while uploading video")
	}

	thumbAsset, err := h.Media.Upload(ctx, thumbPath)
	if err != nil {
		log.Printf("Error uploading thumbnail asset: %v", err)
		h.discardAsset(ctx, videoAsset.URL)
		return httpx.ErrInternal("Error while uploading thumbnail")
	}

	video := &models.Video{
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbAsset.URL,
		Title:       req.Title,
		Description: req.Description,
		Duration:    videoAsset.Duration,
		OwnerID:     req.CallerID,
		IsPublished: true,
	}
	if err := h.Store.Create(ctx, video); err != nil {
		h.discardAsset(ctx, videoAsset.URL)
		h.discardAsset(ctx, thumbAsset.URL)
		return err
	}

	h.publishEvent(ctx, "video.created", video)
	httpx.OK(c, video, "Video uploaded successfully")
	return nil
}

// GetVideoByID fetches a single video.
func (h *Handler) GetVideoByID(c *gin.Context) error {
	videoID, err := videoIDParam(c)
	if err != nil {
		return err
	}

	video, err := h.fetch(c.Request.Context(), videoID)
	if err != nil {
		return err
	}

	httpx.OK(c, video, "Video fetched successfully")
	return nil
}

// UpdateVideo replaces title, description and thumbnail. The previous
// thumbnail asset is deleted best-effort once the new one is in place.
func (h *Handler) UpdateVideo(c *gin.Context) error {
	videoID, err := videoIDParam(c)
	if err != nil {
		return err
	}

	req := updateRequest{
		VideoID:     videoID,
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		CallerID:    c.GetUint("user_id"),
	}
	req.Thumbnail, _ = c.FormFile("thumbnail")

	if req.Title == "" || req.Description == "" {
		return httpx.ErrBadRequest("Title and description are required")
	}
	if req.Thumbnail == nil {
		return httpx.ErrBadRequest("Thumbnail is required")
	}

	ctx := c.Request.Context()

	video, err := h.fetchOwned(ctx, req.VideoID, req.CallerID)
	if err != nil {
		return err
	}

	thumbPath, err := saveUpload(c, req.Thumbnail)
	if err != nil {
		return err
	}
	defer os.Remove(thumbPath)

	thumbAsset, err := h.Media.Upload(ctx, thumbPath)
	if err != nil {
		log.Printf("Error uploading replacement thumbnail: %v", err)
		return httpx.ErrBadRequest("Error while uploading thumbnail")
	}

	previousThumbnail := video.Thumbnail

	updated, err := h.Store.Update(ctx, video.ID, map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"thumbnail":   thumbAsset.URL,
	})
	if err != nil {
		h.discardAsset(ctx, thumbAsset.URL)
		return err
	}

	h.discardAsset(ctx, previousThumbnail)

	h.publishEvent(ctx, "video.updated", updated)
	httpx.OK(c, updated, "Video updated successfully")
	return nil
}

// DeleteVideo removes the record and queues deletion of both assets.
func (h *Handler) DeleteVideo(c *gin.Context) error {
	videoID, err := videoIDParam(c)
	if err != nil {
		return err
	}
	callerID := c.GetUint("user_id")

	ctx := c.Request.Context()

	video, err := h.fetchOwned(ctx, videoID, callerID)
	if err != nil {
		return err
	}

	if err := h.Store.Delete(ctx, video.ID); err != nil {
		return err
	}

	h.enqueueCleanup(ctx, video.VideoFile, video.Thumbnail)

	h.publishEvent(ctx, "video.deleted", video)
	httpx.OK(c, video, "Video deleted successfully")
	return nil
}

// TogglePublishStatus flips the published flag.
func (h *Handler) TogglePublishStatus(c *gin.Context) error {
	videoID, err := videoIDParam(c)
	if err != nil {
		return err
	}
	callerID := c.GetUint("user_id")

	ctx := c.Request.Context()

	video, err := h.fetchOwned(ctx, videoID, callerID)
	if err != nil {
		return err
	}

	updated, err := h.Store.Update(ctx, video.ID, map[string]interface{}{
		"is_published": !video.IsPublished,
	})
	if err != nil {
		return err
	}

	h.publishEvent(ctx, "video.publish_toggled", updated)
	httpx.OK(c, updated, "Video publish status updated")
	return nil
}

// fetch loads a video, mapping a miss to a clean 404.
func (h *Handler) fetch(ctx context.Context, id uint) (*models.Video, error) {
	video, err := h.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httpx.ErrNotFound("Video not found")
		}
		return nil, err
	}
	return video, nil
}

// fetchOwned loads a video and verifies the caller owns it. The not-found
// check runs first so a missing record never reaches the owner comparison.
func (h *Handler) fetchOwned(ctx context.Context, id, callerID uint) (*models.Video, error) {
	video, err := h.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != callerID {
		return nil, httpx.ErrForbidden("Only the owner can modify this video")
	}
	return video, nil
}

// discardAsset deletes a media asset best-effort. Cleanup failures are
// logged and never fail the user-facing operation.
func (h *Handler) discardAsset(ctx context.Context, assetURL string) {
	if assetURL == "" {
		return
	}
	if err := h.Media.Delete(ctx, assetURL); err != nil {
		log.Printf("Error deleting asset %s: %v", assetURL, err)
	}
}

// enqueueCleanup hands asset deletion to the worker queue so the request
// path does not wait on the media store. Without a Redis connection the
// deletes happen inline, still best-effort.
func (h *Handler) enqueueCleanup(ctx context.Context, assetURLs ...string) {
	if h.Redis == nil {
		for _, u := range assetURLs {
			h.discardAsset(ctx, u)
		}
		return
	}

	payload, err := tasks.Marshal(tasks.AssetCleanupPayload{AssetURLs: assetURLs})
	if err != nil {
		log.Printf("Error marshalling cleanup task: %v", err)
		return
	}
	if err := h.Redis.LPush(ctx, tasks.QueueAssetCleanup, payload).Err(); err != nil {
		log.Printf("Error pushing cleanup task to queue %s: %v", tasks.QueueAssetCleanup, err)
	}
}

func (h *Handler) publishEvent(ctx context.Context, event string, video *models.Video) {
	if h.Redis == nil {
		return
	}
	message := VideoEventMessage{Event: event, VideoID: video.ID, OwnerID: video.OwnerID}
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshalling json: %v", err)
		return
	}
	if err := h.Redis.Publish(ctx, videoEventsChannel, payload).Err(); err != nil {
		log.Printf("Error publishing to redis: %v", err)
	}
}

func videoIDParam(c *gin.Context) (uint, error) {
	raw := c.Param("videoId")
	if raw == "" {
		return 0, httpx.ErrBadRequest("Video id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, httpx.ErrBadRequest("Video id must be numeric")
	}
	return uint(id), nil
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// saveUpload spools a multipart file to the upload dir so the media store
// can read it from disk. Callers remove the file when done.
func saveUpload(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	dst := filepath.Join(UploadDir(), uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// UploadDir is where multipart uploads are spooled before reaching the
// media store. The scheduler sweeps stale files out of it.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}
