package comments

import (
	"time"

	"unbelong-api/internal/api/request"
	"unbelong-api/internal/api/respond"
	"unbelong-api/internal/app/http/middleware"
	"unbelong-api/internal/domain/comments"
	"unbelong-api/internal/infra/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Comments *store.Repo[comments.Comment]
	Log      logrus.FieldLogger
	Now      func() time.Time
}

func NewHandler(db *gorm.DB, log logrus.FieldLogger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		Comments: store.New[comments.Comment](db, "Comment"),
		Log:      log,
		Now:      now,
	}
}

// RegisterRoutes mounts reads and comment posting on public. Readers post
// without a token, so the body is stripped of markup first.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:id", h.Get)
	public.POST("", middleware.SanitizeInput("content"), h.Create)

	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// GET /comments?target_type=&target_id=&status=
func (h *Handler) List(c *gin.Context) {
	filter := request.StatusFilter(c, "")
	for _, key := range []string{"target_type", "target_id"} {
		if v := c.Query(key); v != "" {
			filter[key] = v
		}
	}

	rows, err := h.Comments.List(c.Request.Context(), filter, store.Desc("created_at"))
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, rows)
}

func (h *Handler) Get(c *gin.Context) {
	row, err := h.Comments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, row)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}

	row, err := req.Comment(h.Now().Unix())
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	row.IPAddress = clientIP(c)
	row.UserAgent = optional(c.GetHeader("User-Agent"))

	ctx := c.Request.Context()
	if err := h.Comments.Insert(ctx, &row); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	created, err := h.Comments.Get(ctx, row.ID)
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Created(c, created, "Comment posted successfully")
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := req.Validate(); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	row, err := h.Comments.Apply(c.Request.Context(), c.Param("id"), req.Patch(), h.Now())
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Updated(c, row, "Comment updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	if _, err := h.Comments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.Message(c, "Comment deleted successfully")
}

// clientIP prefers the address the edge proxy saw.
func clientIP(c *gin.Context) *string {
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return &ip
	}
	return optional(c.ClientIP())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
