package works

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
	Works *store.Repo[works.Work]
	Log   logrus.FieldLogger
	Now   func() time.Time
}

func NewHandler(db *gorm.DB, log logrus.FieldLogger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		Works: store.New[works.Work](db, "Work"),
		Log:   log,
		Now:   now,
	}
}

// RegisterRoutes mounts reads on public and writes on admin. Both groups are
// expected to be rooted at /works.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:identifier", h.Get)

	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// ------------------------------
// GET /works?type=&status=
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	filter := request.StatusFilter(c, string(works.StatusPublished))
	if t := c.Query("type"); t != "" {
		filter["type"] = t
	}

	rows, err := h.Works.List(c.Request.Context(), filter, store.Desc("published_at"))
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, rows)
}

// ------------------------------
// GET /works/:identifier?by=id|slug
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	lookup, err := request.Lookup(c)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	row, err := h.Works.Find(c.Request.Context(), lookup.Column(), lookup.Token)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, row)
}

// ------------------------------
// POST /works
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := request.Struct(req); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	ctx := c.Request.Context()
	row := req.Work(h.Now().Unix())
	if err := h.Works.Insert(ctx, &row); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	created, err := h.Works.Get(ctx, row.ID)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Created(c, created, "Work created successfully")
}

// ------------------------------
// PUT /works/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	row, err := h.Works.Apply(c.Request.Context(), c.Param("id"), req.Patch(), h.Now())
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Updated(c, row, "Work updated successfully")
}

// ------------------------------
// DELETE /works/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	n, err := h.Works.Delete(c.Request.Context(), id)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	if n == 0 && h.Log != nil {
		h.Log.WithField("id", id).Debug("delete matched no work")
	}
	respond.Message(c, "Work deleted successfully")
}
