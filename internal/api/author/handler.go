package author

import (
	"time"

	"unbelong-api/internal/api/request"
	"unbelong-api/internal/api/respond"
	"unbelong-api/internal/app/validation"
	"unbelong-api/internal/apperr"
	"unbelong-api/internal/domain/author"
	"unbelong-api/internal/domain/patch"
	"unbelong-api/internal/infra/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UpdateProfileRequest is a sparse update of the single author profile.
type UpdateProfileRequest struct {
	Name          patch.Field[string]            `json:"name"`
	Bio           patch.Field[string]            `json:"bio"`
	AvatarImageID patch.Field[string]            `json:"avatar_image_id"`
	SocialLinks   patch.Field[map[string]string] `json:"social_links"`
}

func (r UpdateProfileRequest) Validate() error {
	if links, ok := r.SocialLinks.Get(); ok {
		if err := validation.SocialLinks(links); err != nil {
			return apperr.Invalid(err.Error())
		}
	}
	return nil
}

func (r UpdateProfileRequest) Patch() patch.Patch {
	return patch.New(
		patch.NonEmpty("name", r.Name),
		patch.Clearable("bio", r.Bio),
		patch.Clearable("avatar_image_id", r.AvatarImageID),
		patch.Provided("social_links", patch.Map(r.SocialLinks, author.NewSocialLinks)),
	)
}

type Handler struct {
	Profiles *store.Repo[author.Profile]
	Log      logrus.FieldLogger
	Now      func() time.Time
}

func NewHandler(db *gorm.DB, log logrus.FieldLogger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		Profiles: store.New[author.Profile](db, "Author profile"),
		Log:      log,
		Now:      now,
	}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("", h.Get)
	admin.PUT("", h.Update)
}

// GET /author
func (h *Handler) Get(c *gin.Context) {
	row, err := h.Profiles.Get(c.Request.Context(), author.ProfileID)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, row)
}

// PUT /author
func (h *Handler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	row, err := h.Profiles.Apply(c.Request.Context(), author.ProfileID, req.Patch(), h.Now())
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Updated(c, row, "Author profile updated successfully")
}
