package works

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Work struct {
	ID   string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Type Type   `gorm:"type:varchar(20);not null;index" json:"type"`

	Title       string  `gorm:"not null" json:"title"`
	Slug        string  `gorm:"type:varchar(191);uniqueIndex;not null" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	Status      Status  `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	ThumbnailImageID *string `json:"thumbnail_image_id"`
	OgImageID        *string `json:"og_image_id"`

	Tags datatypes.JSONSlice[string] `json:"tags"`

	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
	PublishedAt *int64 `gorm:"index" json:"published_at"`
}

func (w *Work) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
