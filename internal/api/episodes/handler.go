package episodes

import (
	"time"

	"unbelong-api/internal/api/request"
	"unbelong-api/internal/api/respond"
	"unbelong-api/internal/domain/media"
	"unbelong-api/internal/domain/pages"
	"unbelong-api/internal/domain/works"
	"unbelong-api/internal/infra/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Episodes *store.Repo[works.Episode]
	Pages    *pages.Decoder
	Log      logrus.FieldLogger
	Now      func() time.Time
}

// NewHandler wires the episode routes. Page images are resolved to viewer
// URLs of the given width on the image CDN at imageBase.
func NewHandler(db *gorm.DB, imageBase string, viewerWidth int, log logrus.FieldLogger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	resolve := media.NewURLBuilder(imageBase).Resolver(media.Options{Width: viewerWidth})
	return &Handler{
		Episodes: store.New[works.Episode](db, "Episode"),
		Pages:    pages.Default(resolve),
		Log:      log,
		Now:      now,
	}
}

func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:identifier", h.Get)
	public.GET("/:identifier/pages", h.GetPages)

	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// ------------------------------
// GET /episodes?work_id=&status=
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	filter := request.StatusFilter(c, string(works.StatusPublished))
	if workID := c.Query("work_id"); workID != "" {
		filter["work_id"] = workID
	}

	rows, err := h.listWithWork(c.Request.Context(), filter)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, rows)
}

// ------------------------------
// GET /episodes/:identifier
// ------------------------------

// Get returns the episode as read and then counts the view, so the payload
// carries the count from before this request.
func (h *Handler) Get(c *gin.Context) {
	lookup, err := request.Lookup(c)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	ctx := c.Request.Context()
	row, err := h.findWithWork(ctx, lookup)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	if err := h.Episodes.Increment(ctx, row.ID, "view_count"); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, row)
}

// ------------------------------
// GET /episodes/:identifier/pages
// ------------------------------
func (h *Handler) GetPages(c *gin.Context) {
	lookup, err := request.Lookup(c)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	row, err := h.Episodes.Find(c.Request.Context(), lookup.Column(), lookup.Token)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	res := h.Pages.Decode(row.Content)
	respond.OK(c, PagesResponse{
		EpisodeID: row.ID,
		WorkID:    row.WorkID,
		Format:    res.Format,
		Images:    res.Images,
	})
}

// ------------------------------
// POST /episodes
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req CreateEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := request.Struct(req); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	ctx := c.Request.Context()
	row := req.Episode(h.Now().Unix())
	if err := h.Episodes.Insert(ctx, &row); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	created, err := h.Episodes.Get(ctx, row.ID)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Created(c, created, "Episode created successfully")
}

// ------------------------------
// PUT /episodes/:id
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req UpdateEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	row, err := h.Episodes.Apply(c.Request.Context(), c.Param("id"), req.Patch(), h.Now())
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Updated(c, row, "Episode updated successfully")
}

// ------------------------------
// DELETE /episodes/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	if _, err := h.Episodes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Message(c, "Episode deleted successfully")
}
