package videos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/princev89/chai-backend/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned by FindByID when no video has the given id.
var ErrNotFound = errors.New("video not found")

// ListParams narrows the video listing. Zero values mean "no filter".
type ListParams struct {
	Page     int
	Limit    int
	Query    string // substring match on title or description
	SortBy   string
	SortType string // "asc" or "desc"
	OwnerID  uint
}

// ListResult is one page of videos plus the windowing metadata.
type ListResult struct {
	Videos []models.Video `json:"videos"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

// Store is the persistence contract the handlers depend on. Writes are
// atomic per row; concurrent writers race with last-write-wins semantics.
type Store interface {
	FindByID(ctx context.Context, id uint) (*models.Video, error)
	Create(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Video, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

// GormStore implements Store on a GORM connection.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := s.DB.WithContext(ctx).First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (s *GormStore) Create(ctx context.Context, video *models.Video) error {
	return s.DB.WithContext(ctx).Create(video).Error
}

func (s *GormStore) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Video, error) {
	result := s.DB.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *GormStore) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.Video{}, id).Error
}

// sortColumns whitelists what ListParams.SortBy may reference.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
	"duration":   "duration",
}

func (s *GormStore) List(ctx context.Context, params ListParams) (*ListResult, error) {
	q := s.DB.WithContext(ctx).Model(&models.Video{})

	if params.Query != "" {
		pattern := "%" + strings.ToLower(params.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if params.OwnerID != 0 {
		q = q.Where("owner_id = ?", params.OwnerID)
	}

	// separate sessions so the count and the page query do not share state
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	q = q.Session(&gorm.Session{})

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(params.SortType, "asc") {
		direction = "ASC"
	}

	var items []models.Video
	err := q.Order(fmt.Sprintf("%s %s", column, direction)).
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Videos: items,
		Total:  total,
		Page:   params.Page,
		Limit:  params.Limit,
	}, nil
}
