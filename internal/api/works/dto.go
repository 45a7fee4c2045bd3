package works

import (
	"unbelong-api/internal/api/request"
	"unbelong-api/internal/domain/patch"
	"unbelong-api/internal/domain/works"
)

type CreateWorkRequest struct {
	Type        works.Type   `json:"type" validate:"required,oneof=comic illustration"`
	Title       string       `json:"title" validate:"required"`
	Slug        string       `json:"slug" validate:"required,max=191,slug"`
	Description *string      `json:"description"`
	Status      works.Status `json:"status" validate:"omitempty,oneof=draft published archived"`

	ThumbnailImageID *string `json:"thumbnail_image_id"`
	OgImageID        *string `json:"og_image_id"`

	Tags []string `json:"tags" validate:"omitempty,dive,required,max=50"`
}

func (r CreateWorkRequest) Work(now int64) works.Work {
	status := r.Status.OrDraft()
	return works.Work{
		Type:             r.Type,
		Title:            r.Title,
		Slug:             r.Slug,
		Description:      request.NullIfEmpty(r.Description),
		Status:           status,
		ThumbnailImageID: request.NullIfEmpty(r.ThumbnailImageID),
		OgImageID:        request.NullIfEmpty(r.OgImageID),
		Tags:             request.TagList(r.Tags),
		CreatedAt:        now,
		UpdatedAt:        now,
		PublishedAt:      works.PublishedAt(status, now),
	}
}

// UpdateWorkRequest is a sparse update. The type of a work is fixed at
// creation.
type UpdateWorkRequest struct {
	Title       patch.Field[string]       `json:"title"`
	Slug        patch.Field[string]       `json:"slug"`
	Description patch.Field[string]       `json:"description"`
	Status      patch.Field[works.Status] `json:"status"`

	ThumbnailImageID patch.Field[string] `json:"thumbnail_image_id"`
	OgImageID        patch.Field[string] `json:"og_image_id"`

	Tags patch.Field[[]string] `json:"tags"`
}

func (r UpdateWorkRequest) Validate() error {
	return request.First(
		request.Slug(r.Slug),
		request.Status(r.Status),
		request.Tags(r.Tags),
	)
}

func (r UpdateWorkRequest) Patch() patch.Patch {
	return patch.New(
		patch.NonEmpty("title", r.Title),
		patch.NonEmpty("slug", r.Slug),
		patch.Clearable("description", r.Description),
		patch.Status("status", r.Status, works.StatusPublished),
		patch.Clearable("thumbnail_image_id", r.ThumbnailImageID),
		patch.Clearable("og_image_id", r.OgImageID),
		patch.Provided("tags", patch.Map(r.Tags, request.TagList)),
	)
}
