package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"unbelong-api/internal/domain/author"
	"unbelong-api/internal/domain/comments"
	"unbelong-api/internal/domain/media"
	"unbelong-api/internal/domain/works"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens and migrates the database named by dsn or aborts the process.
func InitDB(dsn string, log *logrus.Logger) {
	db, err := Open(dsn, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := Migrate(db); err != nil {
		log.WithError(err).Fatal("AutoMigrate error")
	}
	DB = db
	log.WithField("driver", db.Dialector.Name()).Info("Connected and migrated successfully")
}

// Open picks the driver from the DSN: "sqlite:<path>" or "file:..." selects
// sqlite, anything else is handed to postgres.
func Open(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("DB_URL not set")
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite:"))
	case strings.HasPrefix(dsn, "file:"):
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}
	return db, nil
}

func newGormLogger(log *logrus.Logger) gormlogger.Interface {
	if log == nil {
		return gormlogger.Discard
	}
	return gormlogger.New(log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate creates or alters every table and seeds the author profile row.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&works.Work{},
		&works.Episode{},
		&works.Illustration{},
		&comments.Comment{},
		&media.Image{},
		&author.Profile{},
	); err != nil {
		return err
	}
	return SeedAuthor(db)
}

// SeedAuthor inserts the singleton profile if it is missing.
func SeedAuthor(db *gorm.DB) error {
	now := time.Now().Unix()
	p := author.Profile{
		ID:          author.ProfileID,
		Name:        "Author",
		SocialLinks: author.NewSocialLinks(map[string]string{}),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return db.Where(author.Profile{ID: author.ProfileID}).FirstOrCreate(&p).Error
}
