package works

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Illustration struct {
	ID     string `gorm:"type:varchar(64);primaryKey" json:"id"`
	WorkID string `gorm:"type:varchar(64);not null;index" json:"work_id"`

	Title       string  `gorm:"not null" json:"title"`
	Slug        string  `gorm:"type:varchar(191);uniqueIndex;not null" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	Content     *string `gorm:"type:text" json:"content"`

	ImageID   string  `gorm:"not null" json:"image_id"`
	OgImageID *string `json:"og_image_id"`

	Tags   datatypes.JSONSlice[string] `json:"tags"`
	Status Status                      `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	ViewCount int64 `gorm:"not null;default:0" json:"view_count"`

	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
	PublishedAt *int64 `gorm:"index" json:"published_at"`
}

func (i *Illustration) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
