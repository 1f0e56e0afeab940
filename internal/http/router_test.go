package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"waven/internal/achievement"
	"waven/internal/auth"
	"waven/internal/config"
	httpx "waven/internal/http"
	"waven/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newServer(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	gdb := testdb.Open(t)

	achSvc := &achievement.Service{DB: gdb}
	require.NoError(t, achSvc.Seed(context.Background()))

	jwtSvc := auth.NewJWT("test-secret")
	r := httpx.NewRouter(config.Config{}, gdb, jwtSvc, slog.Default())
	return r, gdb
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func register(t *testing.T, h http.Handler, name string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/auth/register", "", map[string]any{
		"name":     name,
		"email":    name + "@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["token"].(string)
}

func TestForumFlow(t *testing.T) {
	h, _ := newServer(t)

	alice := register(t, h, "alice")
	bob := register(t, h, "bob")

	// Alice publishes her first post and unlocks the first-post pair.
	rec := do(t, h, http.MethodPost, "/posts", alice, map[string]any{
		"title":     "Hello Waven",
		"content":   "first!",
		"published": true,
		"tags":      []string{"intro"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	slug := created["post"].(map[string]any)["slug"].(string)
	assert.Equal(t, "hello-waven", slug)

	var unlocked []string
	for _, a := range created["new_achievements"].([]any) {
		unlocked = append(unlocked, a.(map[string]any)["name"].(string))
	}
	assert.Equal(t, []string{"Welcome Aboard", "Author"}, unlocked)

	// Bob waves it: First Wave for Bob, one received wave for Alice.
	rec = do(t, h, http.MethodPost, "/posts/"+slug+"/wave", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	waved := decode(t, rec)
	assert.Equal(t, true, waved["waved"])
	assert.Equal(t, float64(1), waved["wave_count"])

	unlocked = unlocked[:0]
	for _, a := range waved["new_achievements"].([]any) {
		unlocked = append(unlocked, a.(map[string]any)["name"].(string))
	}
	assert.Contains(t, unlocked, "First Wave")
	assert.NotContains(t, unlocked, "Wave Rider")

	// Bob comments.
	rec = do(t, h, http.MethodPost, "/posts/"+slug+"/comments", bob, map[string]any{"content": "great post"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Detail as Bob shows his wave and the comment.
	rec = do(t, h, http.MethodGet, "/posts/"+slug, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode(t, rec)
	assert.Equal(t, true, detail["waved"])
	assert.Len(t, detail["comments"].([]any), 1)

	// Alice's profile reflects the received wave.
	rec = do(t, h, http.MethodGet, "/me", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	assert.Equal(t, float64(1), me["waves_received"])

	// Listing shows the published post.
	rec = do(t, h, http.MethodGet, "/posts?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)
	assert.Len(t, list["posts"].([]any), 1)
}

func TestAuthRequired(t *testing.T) {
	h, _ := newServer(t)

	rec := do(t, h, http.MethodPost, "/posts", "", map[string]any{"title": "t", "content": "c"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/posts/some-slug/wave", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWaveUnknownSlugIs404(t *testing.T) {
	h, _ := newServer(t)
	alice := register(t, h, "alice")

	rec := do(t, h, http.MethodPost, "/posts/missing/wave", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeedRequiresAdmin(t *testing.T) {
	h, gdb := newServer(t)
	alice := register(t, h, "alice")

	rec := do(t, h, http.MethodPost, "/achievements/seed", alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	require.NoError(t, gdb.Model(&auth.User{}).Where("email = ?", "alice@example.com").Update("is_admin", true).Error)

	rec = do(t, h, http.MethodPost, "/achievements/seed", alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestMeFailsClosedOnStoreError(t *testing.T) {
	h, gdb := newServer(t)
	alice := register(t, h, "alice")

	// Knock out a counter table; the profile must 500, not render zeros.
	require.NoError(t, gdb.Exec(`drop table waves`).Error)

	rec := do(t, h, http.MethodGet, "/me", alice, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAchievementCatalogListing(t *testing.T) {
	h, _ := newServer(t)

	rec := do(t, h, http.MethodGet, "/achievements", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Len(t, out["achievements"].([]any), len(achievement.Catalog))
}
