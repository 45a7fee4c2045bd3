package comments

import (
	"fmt"
	"strings"

	"unbelong-api/internal/api/request"
	"unbelong-api/internal/apperr"
	"unbelong-api/internal/domain/comments"
	"unbelong-api/internal/domain/patch"
)

var errContentTooLong = apperr.Invalid(fmt.Sprintf("Comment must be %d characters or less", comments.MaxContentLength))

type CreateCommentRequest struct {
	TargetType string `json:"target_type" validate:"required"`
	TargetID   string `json:"target_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// Comment validates the request and builds the row to insert.
func (r CreateCommentRequest) Comment(now int64) (comments.Comment, error) {
	if err := request.Struct(r); err != nil {
		return comments.Comment{}, err
	}
	target, err := comments.ParseTarget(r.TargetType, r.TargetID)
	if err != nil {
		return comments.Comment{}, apperr.Invalid(err.Error())
	}
	if err := checkContent(r.Content); err != nil {
		return comments.Comment{}, err
	}

	row := comments.Comment{
		Content:   r.Content,
		Status:    comments.StatusApproved,
		CreatedAt: now,
		UpdatedAt: now,
	}
	row.SetTarget(target)
	return row, nil
}

// UpdateCommentRequest is the moderation update.
type UpdateCommentRequest struct {
	Content patch.Field[string]          `json:"content"`
	Status  patch.Field[comments.Status] `json:"status"`
}

func (r UpdateCommentRequest) Validate() error {
	if v, ok := r.Content.Get(); ok && v != "" {
		if err := checkContent(v); err != nil {
			return err
		}
	}
	if v, ok := r.Status.Get(); ok && v != "" && !v.Valid() {
		return apperr.Invalid("status must be one of pending, approved, rejected, spam")
	}
	return nil
}

func (r UpdateCommentRequest) Patch() patch.Patch {
	return patch.New(
		patch.NonEmpty("content", r.Content),
		patch.NonEmpty("status", r.Status),
	)
}

func checkContent(s string) error {
	if strings.TrimSpace(s) == "" {
		return apperr.Invalid("content is required")
	}
	if !comments.ContentFits(s) {
		return errContentTooLong
	}
	return nil
}
