package media

// Image is metadata for a file held by the external image CDN. ID is the
// identifier the CDN issued; it is never generated here.
type Image struct {
	ID       string  `gorm:"type:varchar(191);primaryKey" json:"id"`
	Filename string  `gorm:"not null" json:"filename"`
	AltText  *string `json:"alt_text"`

	Width  *int    `json:"width"`
	Height *int    `json:"height"`
	Format *string `gorm:"type:varchar(20)" json:"format"`
	Size   *int64  `json:"size"`

	UploadedBy *string `json:"uploaded_by"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
