package images

import (
	"unbelong-api/internal/api/request"
	"unbelong-api/internal/apperr"
	"unbelong-api/internal/domain/media"
	"unbelong-api/internal/domain/patch"
)

// CreateImageRequest registers metadata for a file already uploaded to the
// CDN. ID is the CDN's identifier.
type CreateImageRequest struct {
	ID         string  `json:"id" validate:"required,max=191"`
	Filename   string  `json:"filename" validate:"required"`
	AltText    *string `json:"alt_text"`
	Width      *int    `json:"width" validate:"omitempty,gte=1"`
	Height     *int    `json:"height" validate:"omitempty,gte=1"`
	Format     *string `json:"format" validate:"omitempty,max=20"`
	Size       *int64  `json:"size" validate:"omitempty,gte=0"`
	UploadedBy *string `json:"uploaded_by"`
}

func (r CreateImageRequest) Image(now int64) media.Image {
	return media.Image{
		ID:         r.ID,
		Filename:   r.Filename,
		AltText:    request.NullIfEmpty(r.AltText),
		Width:      r.Width,
		Height:     r.Height,
		Format:     request.NullIfEmpty(r.Format),
		Size:       r.Size,
		UploadedBy: request.NullIfEmpty(r.UploadedBy),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// UpdateImageRequest treats every field as clearable.
type UpdateImageRequest struct {
	AltText patch.Field[string] `json:"alt_text"`
	Width   patch.Field[int]    `json:"width"`
	Height  patch.Field[int]    `json:"height"`
	Format  patch.Field[string] `json:"format"`
	Size    patch.Field[int64]  `json:"size"`
}

func (r UpdateImageRequest) Validate() error {
	if v, ok := r.Width.Get(); ok && v < 1 {
		return apperr.Invalid("width must be at least 1")
	}
	if v, ok := r.Height.Get(); ok && v < 1 {
		return apperr.Invalid("height must be at least 1")
	}
	if v, ok := r.Size.Get(); ok && v < 0 {
		return apperr.Invalid("size must be at least 0")
	}
	return nil
}

func (r UpdateImageRequest) Patch() patch.Patch {
	return patch.New(
		patch.Clearable("alt_text", r.AltText),
		patch.Clearable("width", r.Width),
		patch.Clearable("height", r.Height),
		patch.Clearable("format", r.Format),
		patch.Clearable("size", r.Size),
	)
}
