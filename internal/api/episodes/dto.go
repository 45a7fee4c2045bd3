package episodes

import (
	"unbelong-api/internal/api/request"
	"unbelong-api/internal/apperr"
	"unbelong-api/internal/domain/pages"
	"unbelong-api/internal/domain/patch"
	"unbelong-api/internal/domain/works"
)

type CreateEpisodeRequest struct {
	WorkID        string       `json:"work_id" validate:"required"`
	EpisodeNumber int          `json:"episode_number" validate:"required,gte=1"`
	Title         string       `json:"title" validate:"required"`
	Slug          string       `json:"slug" validate:"required,max=191,slug"`
	Description   *string      `json:"description"`
	Content       string       `json:"content" validate:"required"`
	Status        works.Status `json:"status" validate:"omitempty,oneof=draft published archived"`

	ThumbnailImageID *string `json:"thumbnail_image_id"`
	OgImageID        *string `json:"og_image_id"`
}

func (r CreateEpisodeRequest) Episode(now int64) works.Episode {
	status := r.Status.OrDraft()
	return works.Episode{
		WorkID:           r.WorkID,
		EpisodeNumber:    r.EpisodeNumber,
		Title:            r.Title,
		Slug:             r.Slug,
		Description:      request.NullIfEmpty(r.Description),
		Content:          r.Content,
		Status:           status,
		ThumbnailImageID: request.NullIfEmpty(r.ThumbnailImageID),
		OgImageID:        request.NullIfEmpty(r.OgImageID),
		CreatedAt:        now,
		UpdatedAt:        now,
		PublishedAt:      works.PublishedAt(status, now),
	}
}

// UpdateEpisodeRequest is a sparse update. An episode cannot be moved to
// another work.
type UpdateEpisodeRequest struct {
	EpisodeNumber patch.Field[int]          `json:"episode_number"`
	Title         patch.Field[string]       `json:"title"`
	Slug          patch.Field[string]       `json:"slug"`
	Description   patch.Field[string]       `json:"description"`
	Content       patch.Field[string]       `json:"content"`
	Status        patch.Field[works.Status] `json:"status"`

	ThumbnailImageID patch.Field[string] `json:"thumbnail_image_id"`
	OgImageID        patch.Field[string] `json:"og_image_id"`
}

func (r UpdateEpisodeRequest) Validate() error {
	if n, ok := r.EpisodeNumber.Get(); ok && n < 1 {
		return apperr.Invalid("episode_number must be at least 1")
	}
	return request.First(
		request.Slug(r.Slug),
		request.Status(r.Status),
	)
}

func (r UpdateEpisodeRequest) Patch() patch.Patch {
	return patch.New(
		patch.Provided("episode_number", r.EpisodeNumber),
		patch.NonEmpty("title", r.Title),
		patch.NonEmpty("slug", r.Slug),
		patch.Clearable("description", r.Description),
		patch.NonEmpty("content", r.Content),
		patch.Status("status", r.Status, works.StatusPublished),
		patch.Clearable("thumbnail_image_id", r.ThumbnailImageID),
		patch.Clearable("og_image_id", r.OgImageID),
	)
}

// PagesResponse is the decoded reader view of an episode.
type PagesResponse struct {
	EpisodeID string       `json:"episode_id"`
	WorkID    string       `json:"work_id"`
	Format    pages.Format `json:"format"`
	Images    []string     `json:"images"`
}
