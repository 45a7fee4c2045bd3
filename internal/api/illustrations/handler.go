package illustrations

import (
	"time"

	"unbelong-api/internal/api/request"
	"unbelong-api/internal/api/respond"
	"unbelong-api/internal/domain/works"
	"unbelong-api/internal/infra/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Illustrations *store.Repo[works.Illustration]
	Log           logrus.FieldLogger
	Now           func() time.Time
}

func NewHandler(db *gorm.DB, log logrus.FieldLogger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		Illustrations: store.New[works.Illustration](db, "Illustration"),
		Log:           log,
		Now:           now,
	}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:identifier", h.Get)

	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// GET /illustrations?work_id=&status=
func (h *Handler) List(c *gin.Context) {
	filter := request.StatusFilter(c, string(works.StatusPublished))
	if workID := c.Query("work_id"); workID != "" {
		filter["work_id"] = workID
	}

	rows, err := h.Illustrations.List(c.Request.Context(), filter, store.Desc("published_at"))
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, rows)
}

// GET /illustrations/:identifier counts a view after reading.
func (h *Handler) Get(c *gin.Context) {
	lookup, err := request.Lookup(c)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	ctx := c.Request.Context()
	row, err := h.Illustrations.Find(ctx, lookup.Column(), lookup.Token)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	if err := h.Illustrations.Increment(ctx, row.ID, "view_count"); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, row)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateIllustrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := request.Struct(req); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	ctx := c.Request.Context()
	row := req.Illustration(h.Now().Unix())
	if err := h.Illustrations.Insert(ctx, &row); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	created, err := h.Illustrations.Get(ctx, row.ID)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Created(c, created, "Illustration created successfully")
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateIllustrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	row, err := h.Illustrations.Apply(c.Request.Context(), c.Param("id"), req.Patch(), h.Now())
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Updated(c, row, "Illustration updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	if _, err := h.Illustrations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Message(c, "Illustration deleted successfully")
}
