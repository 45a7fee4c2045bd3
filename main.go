package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unbelong-api/config"
	"unbelong-api/database"
	routes "unbelong-api/internal/app/http"
	"unbelong-api/internal/app/auth"
	"unbelong-api/internal/app/http/middleware"
	"unbelong-api/internal/app/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	log := logging.New(config.LOG_LEVEL)
	database.InitDB(config.DB_URL, log)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.Use(cors.New(corsConfig(config.ALLOWED_ORIGINS)))

	routes.RegisterRoutes(r, routes.Deps{
		DB:  database.DB,
		Log: log,
		Now: time.Now,
		Credentials: auth.Credentials{
			Username:     config.ADMIN_USERNAME,
			PasswordHash: config.ADMIN_PASSWORD_HASH,
		},
		Tokens: auth.TokenService{
			Secret:   []byte(config.ADMIN_JWT_SECRET),
			Issuer:   logging.ServiceName,
			Duration: time.Duration(config.ADMIN_TOKEN_TTL_HOURS) * time.Hour,
		},
		ImageBaseURL:     config.IMAGE_BASE_URL,
		ViewerImageWidth: config.VIEWER_IMAGE_WIDTH,
		Metrics:          middleware.NewMetrics(),
	})

	srv := &http.Server{
		Addr:    ":" + config.PORT,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", config.PORT).Info("HTTP API server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-errCh:
		log.WithError(err).Error("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP shutdown error")
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// corsConfig allows any origin when the list is empty or contains "*".
// Credentials are only allowed for an explicit origin list.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
