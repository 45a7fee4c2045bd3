package author_test

import (
	"net/http"
	"testing"
	"time"

	authorapi "unbelong-api/internal/api/author"
	"unbelong-api/internal/domain/author"
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
	g := r.Group("/author")
	authorapi.NewHandler(db, nil, clock.Now).RegisterRoutes(g, g)
	return r
}

func TestGetSeededProfile(t *testing.T) {
	r := setup(t)

	w := testutil.Do(t, r, http.MethodGet, "/author", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got author.Profile
	testutil.Decode(t, w, &got)
	assert.Equal(t, author.ProfileID, got.ID)
	assert.NotEmpty(t, got.Name)
}

func TestUpdateProfile(t *testing.T) {
	r := setup(t)

	w := testutil.Do(t, r, http.MethodPut, "/author", map[string]any{
		"name":         "Rin",
		"bio":          "draws at night",
		"social_links": map[string]string{"x": "https://x.com/rin"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got author.Profile
	testutil.Decode(t, w, &got)
	assert.Equal(t, "Rin", got.Name)
	require.NotNil(t, got.Bio)
	assert.Equal(t, map[string]string{"x": "https://x.com/rin"}, got.SocialLinks.Data())

	w = testutil.Do(t, r, http.MethodPut, "/author", map[string]any{"name": "", "bio": nil})
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &got)
	assert.Equal(t, "Rin", got.Name)
	assert.Nil(t, got.Bio)
	assert.Equal(t, map[string]string{"x": "https://x.com/rin"}, got.SocialLinks.Data())
}

func TestUpdateProfileRejectsBadSocialLinks(t *testing.T) {
	r := setup(t)

	for _, body := range []map[string]any{
		{"social_links": []string{"https://x.com"}},
		{"social_links": map[string]any{"x": 1}},
		{"social_links": map[string]string{"x": "javascript:alert(1)"}},
		{"social_links": map[string]string{"": "https://x.com"}},
	} {
		w := testutil.Do(t, r, http.MethodPut, "/author", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}

	var got author.Profile
	testutil.Decode(t, testutil.Do(t, r, http.MethodGet, "/author", nil), &got)
	assert.Empty(t, got.SocialLinks.Data())
}
