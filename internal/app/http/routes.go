package routes

import (
	"context"
	"net/http"
	"time"

	adminapi "unbelong-api/internal/api/admin"
	authorapi "unbelong-api/internal/api/author"
	commentsapi "unbelong-api/internal/api/comments"
	episodesapi "unbelong-api/internal/api/episodes"
	illustrationsapi "unbelong-api/internal/api/illustrations"
	imagesapi "unbelong-api/internal/api/images"
	worksapi "unbelong-api/internal/api/works"
	"unbelong-api/internal/app/auth"
	"unbelong-api/internal/app/http/middleware"
	"unbelong-api/internal/app/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const Version = "1.0.0"

// Deps is everything the route tree needs from main.
type Deps struct {
	DB  *gorm.DB
	Log logrus.FieldLogger
	Now func() time.Time

	Credentials auth.Credentials
	Tokens      auth.TokenService

	ImageBaseURL     string
	ViewerImageWidth int

	// Metrics is optional; /metrics is only mounted when set.
	Metrics *middleware.Metrics
}

type resource interface {
	RegisterRoutes(public, admin *gin.RouterGroup)
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", d.Metrics.Handler())
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": logging.ServiceName,
			"version": Version,
			"status":  "ok",
		})
	})
	r.GET("/health", health(d.DB))

	adminOnly := middleware.AdminOnly(d.Tokens)

	mount := func(path string, h resource) {
		admin := r.Group(path)
		admin.Use(adminOnly)
		h.RegisterRoutes(r.Group(path), admin)
	}

	mount("/works", worksapi.NewHandler(d.DB, d.Log, d.Now))
	mount("/episodes", episodesapi.NewHandler(d.DB, d.ImageBaseURL, d.ViewerImageWidth, d.Log, d.Now))
	mount("/illustrations", illustrationsapi.NewHandler(d.DB, d.Log, d.Now))
	mount("/comments", commentsapi.NewHandler(d.DB, d.Log, d.Now))
	mount("/images", imagesapi.NewHandler(d.DB, d.ImageBaseURL, d.Log, d.Now))
	mount("/author", authorapi.NewHandler(d.DB, d.Log, d.Now))
	mount("/admin", adminapi.NewHandler(d.DB, d.Credentials, d.Tokens, d.Log, d.Now))
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "db_error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": db.Dialector.Name()})
	}
}
