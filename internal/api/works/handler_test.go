package works_test

import (
	"net/http"
	"testing"
	"time"

	worksapi "unbelong-api/internal/api/works"
	"unbelong-api/internal/domain/works"
	"unbelong-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const t0 = int64(1_700_000_000)

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	clock := testutil.NewClock(time.Unix(t0, 0), time.Second)

	r := gin.New()
	g := r.Group("/works")
	worksapi.NewHandler(db, nil, clock.Now).RegisterRoutes(g, g)
	return r, db
}

func create(t *testing.T, r http.Handler, body map[string]any) works.Work {
	t.Helper()
	w := testutil.Do(t, r, http.MethodPost, "/works", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out works.Work
	env := testutil.Decode(t, w, &out)
	require.True(t, env.Success)
	return out
}

func TestCreateWork(t *testing.T) {
	r, _ := setup(t)

	got := create(t, r, map[string]any{
		"type":        "comic",
		"title":       "Night Walk",
		"slug":        "nightwalk",
		"description": "",
		"tags":        []string{"sf", "short"},
	})

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, works.StatusDraft, got.Status)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.PublishedAt)
	assert.Equal(t, t0, got.CreatedAt)
	assert.Equal(t, t0, got.UpdatedAt)
	assert.Equal(t, []string{"sf", "short"}, []string(got.Tags))
}

func TestCreatePublishedWorkStampsPublishTime(t *testing.T) {
	r, _ := setup(t)

	got := create(t, r, map[string]any{"type": "illustration", "title": "A", "slug": "a", "status": "published"})
	require.NotNil(t, got.PublishedAt)
	assert.Equal(t, t0, *got.PublishedAt)
}

func TestCreateWorkRejectsInvalidInput(t *testing.T) {
	r, db := setup(t)

	cases := map[string]struct {
		body any
		want string
	}{
		"missing slug":  {map[string]any{"type": "comic", "title": "A"}, "slug is required"},
		"unknown type":  {map[string]any{"type": "novel", "title": "A", "slug": "a"}, "type must be one of comic, illustration"},
		"bad slug":      {map[string]any{"type": "comic", "title": "A", "slug": "a b"}, "slug must be URL-safe"},
		"bad status":    {map[string]any{"type": "comic", "title": "A", "slug": "a", "status": "live"}, "status must be one of"},
		"tags not list": {map[string]any{"type": "comic", "title": "A", "slug": "a", "tags": "x"}, "Invalid request body"},
		"malformed":     {"{", "Invalid request body"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := testutil.Do(t, r, http.MethodPost, "/works", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := testutil.Decode(t, w, nil)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, tc.want)
		})
	}

	var n int64
	require.NoError(t, db.Model(&works.Work{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGetWorkByIdentifier(t *testing.T) {
	r, _ := setup(t)
	plain := create(t, r, map[string]any{"type": "comic", "title": "Plain", "slug": "plain"})
	hyphen := create(t, r, map[string]any{"type": "comic", "title": "Hyphen", "slug": "my-slug"})

	var got works.Work

	w := testutil.Do(t, r, http.MethodGet, "/works/plain", nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &got)
	assert.Equal(t, plain.ID, got.ID)

	w = testutil.Do(t, r, http.MethodGet, "/works/"+plain.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &got)
	assert.Equal(t, "plain", got.Slug)

	// a hyphenated slug is taken for an id
	w = testutil.Do(t, r, http.MethodGet, "/works/my-slug", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Work not found", testutil.Decode(t, w, nil).Error)

	w = testutil.Do(t, r, http.MethodGet, "/works/my-slug?by=slug", nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &got)
	assert.Equal(t, hyphen.ID, got.ID)

	w = testutil.Do(t, r, http.MethodGet, "/works/plain?by=title", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(t, r, http.MethodGet, "/works/nothing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusOnlyPublishLeavesOtherFields(t *testing.T) {
	r, _ := setup(t)
	orig := create(t, r, map[string]any{
		"type": "comic", "title": "Keep", "slug": "keep", "description": "stays", "tags": []string{"x"},
	})

	w := testutil.Do(t, r, http.MethodPut, "/works/"+orig.ID, map[string]any{"status": "published"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got works.Work
	env := testutil.Decode(t, w, &got)
	assert.Equal(t, "Work updated successfully", env.Message)

	assert.Equal(t, works.StatusPublished, got.Status)
	require.NotNil(t, got.PublishedAt)
	assert.Equal(t, t0+1, *got.PublishedAt)
	assert.Equal(t, t0+1, got.UpdatedAt)

	assert.Equal(t, orig.Title, got.Title)
	assert.Equal(t, orig.Slug, got.Slug)
	assert.Equal(t, orig.Description, got.Description)
	assert.Equal(t, orig.Tags, got.Tags)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
}

func TestRepublishRestampsPublishTime(t *testing.T) {
	r, _ := setup(t)
	orig := create(t, r, map[string]any{"type": "comic", "title": "A", "slug": "a", "status": "published"})

	var first, second works.Work
	testutil.Decode(t, testutil.Do(t, r, http.MethodPut, "/works/"+orig.ID, map[string]any{"status": "published"}), &first)
	testutil.Decode(t, testutil.Do(t, r, http.MethodPut, "/works/"+orig.ID, map[string]any{"status": "published"}), &second)

	require.NotNil(t, first.PublishedAt)
	require.NotNil(t, second.PublishedAt)
	assert.NotEqual(t, *orig.PublishedAt, *first.PublishedAt)
	assert.Greater(t, *second.PublishedAt, *first.PublishedAt)
}

func TestUpdateWorkFieldSemantics(t *testing.T) {
	r, _ := setup(t)
	orig := create(t, r, map[string]any{
		"type": "comic", "title": "Title", "slug": "title", "description": "desc", "thumbnail_image_id": "thumb",
	})

	w := testutil.Do(t, r, http.MethodPut, "/works/"+orig.ID, map[string]any{
		"title":              "",
		"description":        nil,
		"thumbnail_image_id": "",
		"tags":               []string{},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got works.Work
	testutil.Decode(t, w, &got)
	assert.Equal(t, "Title", got.Title, "empty scalar is ignored")
	assert.Nil(t, got.Description, "null clears")
	require.NotNil(t, got.ThumbnailImageID, "empty string is written for clearable fields")
	assert.Equal(t, "", *got.ThumbnailImageID)
	assert.Empty(t, got.Tags)
	assert.Equal(t, works.StatusDraft, got.Status)
	assert.Nil(t, got.PublishedAt)
}

func TestEmptyUpdateStillTouchesUpdatedAt(t *testing.T) {
	r, _ := setup(t)
	orig := create(t, r, map[string]any{"type": "comic", "title": "A", "slug": "a"})

	var got works.Work
	testutil.Decode(t, testutil.Do(t, r, http.MethodPut, "/works/"+orig.ID, map[string]any{}), &got)
	assert.Equal(t, t0+1, got.UpdatedAt)
	assert.Equal(t, orig.Title, got.Title)
}

func TestUpdateWorkErrors(t *testing.T) {
	r, db := setup(t)
	orig := create(t, r, map[string]any{"type": "comic", "title": "A", "slug": "a"})

	w := testutil.Do(t, r, http.MethodPut, "/works/00000000-0000-0000-0000-000000000000", map[string]any{"title": "B"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, body := range []any{
		map[string]any{"tags": "not-a-list"},
		map[string]any{"tags": []any{1, 2}},
		map[string]any{"tags": []string{""}},
		map[string]any{"status": "live"},
		map[string]any{"slug": "has space"},
	} {
		w = testutil.Do(t, r, http.MethodPut, "/works/"+orig.ID, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}

	var stored works.Work
	require.NoError(t, db.First(&stored, "id = ?", orig.ID).Error)
	assert.Equal(t, orig.UpdatedAt, stored.UpdatedAt, "rejected updates never reach the store")
}

func TestDeleteWorkLeavesEpisodes(t *testing.T) {
	r, db := setup(t)
	orig := create(t, r, map[string]any{"type": "comic", "title": "A", "slug": "a"})
	require.NoError(t, db.Create(&works.Episode{
		WorkID: orig.ID, EpisodeNumber: 1, Title: "E1", Slug: "e1", Content: "[]",
	}).Error)

	w := testutil.Do(t, r, http.MethodDelete, "/works/"+orig.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Work deleted successfully", testutil.Decode(t, w, nil).Message)

	var n int64
	require.NoError(t, db.Model(&works.Work{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&works.Episode{}).Where("work_id = ?", orig.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	w = testutil.Do(t, r, http.MethodDelete, "/works/"+orig.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code, "deleting twice is not an error")
}

func TestListWorks(t *testing.T) {
	r, _ := setup(t)
	create(t, r, map[string]any{"type": "comic", "title": "Old", "slug": "old", "status": "published"})
	create(t, r, map[string]any{"type": "illustration", "title": "New", "slug": "new", "status": "published"})
	create(t, r, map[string]any{"type": "comic", "title": "Draft", "slug": "draft"})

	list := func(query string) []string {
		w := testutil.Do(t, r, http.MethodGet, "/works"+query, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var rows []works.Work
		testutil.Decode(t, w, &rows)
		slugs := make([]string, 0, len(rows))
		for _, row := range rows {
			slugs = append(slugs, row.Slug)
		}
		return slugs
	}

	assert.Equal(t, []string{"new", "old"}, list(""))
	assert.Equal(t, []string{"old"}, list("?type=comic"))
	assert.Equal(t, []string{"draft"}, list("?status=draft"))
	assert.ElementsMatch(t, []string{"new", "old", "draft"}, list("?status=all"))
	assert.Equal(t, []string{}, list("?type=comic&status=archived"))
}
