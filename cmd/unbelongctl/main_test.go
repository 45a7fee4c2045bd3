package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"unbelong-api/database"
	"unbelong-api/internal/app/auth"
	"unbelong-api/internal/domain/works"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashPasswordFromArgument(t *testing.T) {
	out, err := run(t, "", "hash-password", "s3cret-pass")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-pass")))
}

func TestHashPasswordFromStdin(t *testing.T) {
	out, err := run(t, "from-stdin\n", "hash-password")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("from-stdin")))

	_, err = run(t, "", "hash-password")
	assert.Error(t, err)
}

func TestIssueTokenUsesEnvironment(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "cli-secret")
	t.Setenv("ADMIN_USERNAME", "editor")

	out, err := run(t, "", "issue-token", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := auth.TokenService{Secret: []byte("cli-secret")}.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestMigrateAndPages(t *testing.T) {
	dsn := "sqlite:" + filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DB_URL", dsn)
	t.Setenv("IMAGE_BASE_URL", "https://cdn.test")
	t.Setenv("VIEWER_IMAGE_WIDTH", "800")

	out, err := run(t, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema migrated (sqlite)")

	db, err := database.Open(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(&works.Episode{
		WorkID:        "work-1",
		EpisodeNumber: 3,
		Title:         "Third",
		Slug:          "third",
		Content:       `["p1","p2"]`,
		Status:        works.StatusPublished,
	}).Error)
	sqlDB, _ := db.DB()
	require.NoError(t, sqlDB.Close())

	out, err = run(t, "", "pages", "third")
	require.NoError(t, err)
	assert.Contains(t, out, "#3 Third (image_list)")
	assert.Contains(t, out, "https://cdn.test/p1?w=800")
	assert.Contains(t, out, "https://cdn.test/p2?w=800")
	assert.Less(t, strings.Index(out, "/p1?"), strings.Index(out, "/p2?"))

	_, err = run(t, "", "pages", "missing")
	assert.Error(t, err)

	_, err = run(t, "", "pages", "third", "--by", "title")
	assert.Error(t, err)
}
