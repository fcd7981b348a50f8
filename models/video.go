package models

import (
	"time"
)

type Video struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	VideoFile   string  `gorm:"not null" json:"video_file"`
	Thumbnail   string  `gorm:"not null" json:"thumbnail"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Duration    float64 `json:"duration"`

	// Owner is set at creation and never reassigned.
	OwnerID uint `gorm:"not null;index" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	IsPublished bool      `gorm:"default:true" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}
