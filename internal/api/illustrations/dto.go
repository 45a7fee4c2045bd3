package illustrations

import (
	"unbelong-api/internal/api/request"
	"unbelong-api/internal/domain/patch"
	"unbelong-api/internal/domain/works"
)

type CreateIllustrationRequest struct {
	WorkID      string       `json:"work_id" validate:"required"`
	Title       string       `json:"title" validate:"required"`
	Slug        string       `json:"slug" validate:"required,max=191,slug"`
	Description *string      `json:"description"`
	Content     *string      `json:"content"`
	ImageID     string       `json:"image_id" validate:"required"`
	OgImageID   *string      `json:"og_image_id"`
	Tags        []string     `json:"tags" validate:"omitempty,dive,required,max=50"`
	Status      works.Status `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func (r CreateIllustrationRequest) Illustration(now int64) works.Illustration {
	status := r.Status.OrDraft()
	return works.Illustration{
		WorkID:      r.WorkID,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: request.NullIfEmpty(r.Description),
		Content:     request.NullIfEmpty(r.Content),
		ImageID:     r.ImageID,
		OgImageID:   request.NullIfEmpty(r.OgImageID),
		Tags:        request.TagList(r.Tags),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: works.PublishedAt(status, now),
	}
}

type UpdateIllustrationRequest struct {
	Title       patch.Field[string]       `json:"title"`
	Slug        patch.Field[string]       `json:"slug"`
	Description patch.Field[string]       `json:"description"`
	Content     patch.Field[string]       `json:"content"`
	ImageID     patch.Field[string]       `json:"image_id"`
	OgImageID   patch.Field[string]       `json:"og_image_id"`
	Tags        patch.Field[[]string]     `json:"tags"`
	Status      patch.Field[works.Status] `json:"status"`
}

func (r UpdateIllustrationRequest) Validate() error {
	return request.First(
		request.Slug(r.Slug),
		request.Status(r.Status),
		request.Tags(r.Tags),
	)
}

func (r UpdateIllustrationRequest) Patch() patch.Patch {
	return patch.New(
		patch.NonEmpty("title", r.Title),
		patch.NonEmpty("slug", r.Slug),
		patch.Clearable("description", r.Description),
		patch.Clearable("content", r.Content),
		patch.NonEmpty("image_id", r.ImageID),
		patch.Clearable("og_image_id", r.OgImageID),
		patch.Provided("tags", patch.Map(r.Tags, request.TagList)),
		patch.Status("status", r.Status, works.StatusPublished),
	)
}
