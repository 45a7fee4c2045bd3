package works

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Episode is one chapter of a comic work. Content is either a JSON list of
// image ids or markdown with inline images; see package pages.
type Episode struct {
	ID            string `gorm:"type:varchar(64);primaryKey" json:"id"`
	WorkID        string `gorm:"type:varchar(64);not null;index:idx_episodes_work_number,priority:1" json:"work_id"`
	EpisodeNumber int    `gorm:"not null;index:idx_episodes_work_number,priority:2" json:"episode_number"`

	Title       string  `gorm:"not null" json:"title"`
	Slug        string  `gorm:"type:varchar(191);uniqueIndex;not null" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	Content     string  `gorm:"type:text;not null" json:"content"`
	Status      Status  `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	ThumbnailImageID *string `json:"thumbnail_image_id"`
	OgImageID        *string `json:"og_image_id"`

	ViewCount int64 `gorm:"not null;default:0" json:"view_count"`

	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
	PublishedAt *int64 `gorm:"index" json:"published_at"`
}

func (e *Episode) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EpisodeWithWork is an episode row joined with its parent's title and slug.
// Both are nil when the parent work no longer exists.
type EpisodeWithWork struct {
	Episode
	WorkTitle *string `json:"work_title"`
	WorkSlug  *string `json:"work_slug"`
}
