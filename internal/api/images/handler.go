package images

import (
	"time"

	"unbelong-api/internal/api/request"
	"unbelong-api/internal/api/respond"
	"unbelong-api/internal/apperr"
	"unbelong-api/internal/domain/media"
	"unbelong-api/internal/infra/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Images *store.Repo[media.Image]
	URLs   media.URLBuilder
	Log    logrus.FieldLogger
	Now    func() time.Time
}

func NewHandler(db *gorm.DB, imageBase string, log logrus.FieldLogger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		Images: store.New[media.Image](db, "Image"),
		URLs:   media.NewURLBuilder(imageBase),
		Log:    log,
		Now:    now,
	}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:id", h.Get)

	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// ImageResponse adds the CDN delivery URL to the stored metadata.
type ImageResponse struct {
	media.Image
	URL string `json:"url"`
}

func (h *Handler) view(img media.Image) ImageResponse {
	return ImageResponse{Image: img, URL: h.URLs.URL(img.ID, media.Options{})}
}

func (h *Handler) List(c *gin.Context) {
	rows, err := h.Images.List(c.Request.Context(), nil, store.Desc("created_at"))
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	out := make([]ImageResponse, 0, len(rows))
	for _, img := range rows {
		out = append(out, h.view(img))
	}
	respond.OK(c, out)
}

func (h *Handler) Get(c *gin.Context) {
	row, err := h.Images.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, h.view(*row))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := request.Struct(req); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Images.Get(ctx, req.ID); err == nil {
		respond.Fail(c, h.Log, apperr.Invalid("Image "+req.ID+" is already registered"))
		return
	} else if !apperr.Is(err, apperr.NotFound) {
		respond.Fail(c, h.Log, err)
		return
	}

	row := req.Image(h.Now().Unix())
	if err := h.Images.Insert(ctx, &row); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	created, err := h.Images.Get(ctx, row.ID)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Created(c, h.view(*created), "Image registered successfully")
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	row, err := h.Images.Apply(c.Request.Context(), c.Param("id"), req.Patch(), h.Now())
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	if row == nil {
		respond.Updated(c, nil, "Image updated successfully")
		return
	}
	respond.Updated(c, h.view(*row), "Image updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	if _, err := h.Images.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Message(c, "Image deleted successfully")
}
