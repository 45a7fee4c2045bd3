package admin

import (
	"net/http"
	"time"

	"unbelong-api/internal/api/request"
	"unbelong-api/internal/api/respond"
	"unbelong-api/internal/app/auth"
	"unbelong-api/internal/apperr"
	"unbelong-api/internal/domain/comments"
	"unbelong-api/internal/domain/media"
	"unbelong-api/internal/domain/works"
	"unbelong-api/internal/infra/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Credentials auth.Credentials
	Tokens      auth.TokenService
	DB          *gorm.DB
	Log         logrus.FieldLogger
	Now         func() time.Time
}

func NewHandler(db *gorm.DB, creds auth.Credentials, tokens auth.TokenService, log logrus.FieldLogger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{Credentials: creds, Tokens: tokens, DB: db, Log: log, Now: now}
}

// RegisterRoutes mounts login on public and the dashboard on admin. Both
// groups are expected to be rooted at /admin.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/login", h.Login)
	admin.GET("/stats", h.Stats)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// ------------------------------
// POST /admin/login
// ------------------------------
func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Fail(c, h.Log, request.BindError(err))
		return
	}
	if err := request.Struct(input); err != nil {
		respond.Fail(c, h.Log, err)
		return
	}

	if err := h.Credentials.Check(input.Username, input.Password); err != nil {
		if h.Log != nil {
			h.Log.WithField("username", input.Username).Warn("admin login rejected")
		}
		respond.Fail(c, h.Log, apperr.New(apperr.Unauthorized, "Invalid username or password"))
		return
	}

	now := h.Now()
	token, err := h.Tokens.Issue(input.Username, now)
	if err != nil {
		respond.Fail(c, h.Log, apperr.Store("Failed to issue token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": LoginResponse{
			Token:     token,
			ExpiresAt: now.Add(h.Tokens.Duration).Unix(),
		},
	})
}

// Stats is what the dashboard shows on its landing page.
type Stats struct {
	Works           int64 `json:"works"`
	Episodes        int64 `json:"episodes"`
	Illustrations   int64 `json:"illustrations"`
	Images          int64 `json:"images"`
	Comments        int64 `json:"comments"`
	PendingComments int64 `json:"pending_comments"`
}

// ------------------------------
// GET /admin/stats
// ------------------------------
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		out Stats
		err error
	)
	count := func(dst *int64, fn func() (int64, error)) {
		if err != nil {
			return
		}
		*dst, err = fn()
	}
	count(&out.Works, func() (int64, error) {
		return store.New[works.Work](h.DB, "Work").Count(ctx, nil)
	})
	count(&out.Episodes, func() (int64, error) {
		return store.New[works.Episode](h.DB, "Episode").Count(ctx, nil)
	})
	count(&out.Illustrations, func() (int64, error) {
		return store.New[works.Illustration](h.DB, "Illustration").Count(ctx, nil)
	})
	count(&out.Images, func() (int64, error) {
		return store.New[media.Image](h.DB, "Image").Count(ctx, nil)
	})
	comm := store.New[comments.Comment](h.DB, "Comment")
	count(&out.Comments, func() (int64, error) {
		return comm.Count(ctx, nil)
	})
	count(&out.PendingComments, func() (int64, error) {
		return comm.Count(ctx, store.Filter{"status": comments.StatusPending})
	})
	if err != nil {
		respond.Fail(c, h.Log, err)
		return
	}
	respond.OK(c, out)
}
