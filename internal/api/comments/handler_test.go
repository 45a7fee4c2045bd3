package comments_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	commentsapi "unbelong-api/internal/api/comments"
	"unbelong-api/internal/domain/comments"
	"unbelong-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	clock := testutil.NewClock(time.Unix(1_700_000_000, 0), time.Second)

	r := gin.New()
	g := r.Group("/comments")
	commentsapi.NewHandler(db, nil, clock.Now).RegisterRoutes(g, g)
	return r
}

func post(t *testing.T, r http.Handler, body map[string]any, headers ...string) comments.Comment {
	t.Helper()
	w := testutil.Do(t, r, http.MethodPost, "/comments", body, headers...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out comments.Comment
	testutil.Decode(t, w, &out)
	return out
}

func TestPostComment(t *testing.T) {
	r := setup(t)

	got := post(t, r, map[string]any{
		"target_type": "episode",
		"target_id":   "ep-1",
		"content":     "<b>great</b> chapter",
	}, "CF-Connecting-IP", "203.0.113.7", "User-Agent", "reader/1.0")

	assert.Equal(t, comments.StatusApproved, got.Status)
	assert.Equal(t, "great chapter", got.Content, "markup is stripped")
	assert.Equal(t, comments.EpisodeRef{ID: "ep-1"}, got.Target())
	require.NotNil(t, got.IPAddress)
	assert.Equal(t, "203.0.113.7", *got.IPAddress)
	require.NotNil(t, got.UserAgent)
	assert.Equal(t, "reader/1.0", *got.UserAgent)
}

func TestPostCommentStoresTextAsTyped(t *testing.T) {
	r := setup(t)

	got := post(t, r, map[string]any{
		"target_type": "work",
		"target_id":   "w&1",
		"content":     `It's "great" & fun`,
	})
	assert.Equal(t, `It's "great" & fun`, got.Content)
	assert.Equal(t, "w&1", got.TargetID)

	// entities must not count towards the limit
	full := strings.Repeat("&", 2) + strings.Repeat("a", comments.MaxContentLength-2)
	got = post(t, r, map[string]any{"target_type": "work", "target_id": "w1", "content": full})
	assert.Equal(t, full, got.Content)

	w := testutil.Do(t, r, http.MethodPost, "/comments", map[string]any{
		"target_type": "work", "target_id": "w1", "content": full + "&",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostCommentValidation(t *testing.T) {
	r := setup(t)

	cases := map[string]map[string]any{
		"unknown target": {"target_type": "author", "target_id": "x", "content": "hi"},
		"no target id":   {"target_type": "work", "content": "hi"},
		"blank content":  {"target_type": "work", "target_id": "x", "content": "   "},
		"too long":       {"target_type": "work", "target_id": "x", "content": strings.Repeat("あ", 151)},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := testutil.Do(t, r, http.MethodPost, "/comments", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	// the limit counts characters, not bytes
	post(t, r, map[string]any{"target_type": "work", "target_id": "x", "content": strings.Repeat("あ", 150)})
}

func TestListAndModerateComments(t *testing.T) {
	r := setup(t)
	first := post(t, r, map[string]any{"target_type": "work", "target_id": "w1", "content": "first"})
	post(t, r, map[string]any{"target_type": "work", "target_id": "w1", "content": "second"})
	post(t, r, map[string]any{"target_type": "illustration", "target_id": "i1", "content": "elsewhere"})

	var rows []comments.Comment
	testutil.Decode(t, testutil.Do(t, r, http.MethodGet, "/comments?target_type=work&target_id=w1", nil), &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "second", rows[0].Content, "newest first")

	w := testutil.Do(t, r, http.MethodPut, "/comments/"+first.ID, map[string]any{"status": "spam"})
	require.Equal(t, http.StatusOK, w.Code)
	var got comments.Comment
	testutil.Decode(t, w, &got)
	assert.Equal(t, comments.StatusSpam, got.Status)
	assert.Equal(t, "first", got.Content)

	w = testutil.Do(t, r, http.MethodPut, "/comments/"+first.ID, map[string]any{"status": "hidden"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	testutil.Decode(t, testutil.Do(t, r, http.MethodGet, "/comments?status=spam", nil), &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, rows[0].ID)

	require.Equal(t, http.StatusOK, testutil.Do(t, r, http.MethodDelete, "/comments/"+first.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, r, http.MethodGet, "/comments/"+first.ID, nil).Code)
}
