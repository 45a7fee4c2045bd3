// Package request holds the query and body helpers shared by the resource
// handlers.
package request

import (
	"unbelong-api/internal/app/validation"
	"unbelong-api/internal/apperr"
	"unbelong-api/internal/domain/patch"
	"unbelong-api/internal/domain/works"
	"unbelong-api/internal/infra/store"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// StatusAll disables the status filter on listings.
const StatusAll = "all"

const tagRules = "dive,required,max=50"

// StatusFilter starts a listing filter from ?status=. def is used when the
// parameter is absent; an empty def means no filter.
func StatusFilter(c *gin.Context, def string) store.Filter {
	filter := store.Filter{}
	if s := c.DefaultQuery("status", def); s != "" && s != StatusAll {
		filter["status"] = s
	}
	return filter
}

// Lookup resolves the :identifier path parameter, honouring ?by=.
func Lookup(c *gin.Context) (works.Lookup, error) {
	lookup, ok := works.ResolveAs(c.Param("identifier"), c.Query("by"))
	if !ok {
		return works.Lookup{}, apperr.Invalid("by must be one of id, slug")
	}
	return lookup, nil
}

// BindError classifies a body that failed to decode.
func BindError(err error) error {
	return apperr.Wrap(apperr.InvalidInput, "Invalid request body: "+err.Error(), err)
}

// Struct runs the validate tags of a create request.
func Struct(req any) error {
	if err := validation.Struct(req); err != nil {
		return apperr.Invalid(err.Error())
	}
	return nil
}

// NullIfEmpty stores empty optional strings as NULL.
func NullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func TagList(tags []string) datatypes.JSONSlice[string] {
	if tags == nil {
		return nil
	}
	return datatypes.JSONSlice[string](tags)
}

func Slug(f patch.Field[string]) error {
	if v, ok := f.Get(); ok && v != "" && !validation.Slug(v) {
		return apperr.Invalid("slug must be URL-safe")
	}
	return nil
}

func Status(f patch.Field[works.Status]) error {
	if v, ok := f.Get(); ok && v != "" && !v.Valid() {
		return apperr.Invalid("status must be one of draft, published, archived")
	}
	return nil
}

func Tags(f patch.Field[[]string]) error {
	if v, ok := f.Get(); ok {
		if err := validation.Var(v, tagRules); err != nil {
			return apperr.Invalid("tags: " + err.Error())
		}
	}
	return nil
}

// First returns the first error in errs.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
