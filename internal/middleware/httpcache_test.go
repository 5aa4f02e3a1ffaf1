package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/foxbeep/site-core/internal/config"
	"github.com/foxbeep/site-core/internal/pkg/jwt"
	pkgredis "github.com/foxbeep/site-core/internal/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCachedAPI wires a router the way the app does: OptionalAuth, then the
// response cache on the /api group, then the strict auth middleware on the
// admin route itself.
func newCachedAPI(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rc, err := pkgredis.Connect("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	cfg := &config.AppConfig{
		EnvAdmin: config.EnvAdminConfig{
			Email:    "ops@example.com",
			Password: "hunter2",
			Name:     "Ops",
		},
	}

	r := gin.New()
	api := r.Group("/api")
	api.Use(OptionalAuth(nil, cfg))
	api.Use(HTTPCache(rc, HTTPCacheOptions{TTL: time.Minute}))

	authMW := Auth(nil, cfg)
	api.GET("/admin/secret", authMW, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"secret": "admin-only-data"})
	})
	api.GET("/company/details", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"companyName": "Acme"})
	})
	return r, mr
}

func envAdminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.Sign("env-admin", "ops@example.com", "Ops", jwt.SourceEnvironment, time.Minute)
	require.NoError(t, err)
	return token
}

func TestHTTPCacheNeverStoresAuthenticatedResponses(t *testing.T) {
	r, mr := newCachedAPI(t)
	token := envAdminToken(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-only-data")
	assert.Contains(t, w.Header().Get("cache-control"), "private")
	assert.Empty(t, mr.Keys())

	// The same URI without credentials must be rejected, not replayed.
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("GET", "/api/admin/secret", nil))

	require.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.NotContains(t, w2.Body.String(), "admin-only-data")

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &body))
	assert.Equal(t, "NO_TOKEN", body.Code)
}

func TestHTTPCacheReplaysAnonymousResponses(t *testing.T) {
	r, _ := newCachedAPI(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/company/details", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hit", w.Header().Get("x-api-cache"))

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("GET", "/api/company/details", nil))
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "hit", w2.Header().Get("x-api-cache"))
	assert.JSONEq(t, w.Body.String(), w2.Body.String())
}

func TestHTTPCacheBypassesAuthenticatedPublicReads(t *testing.T) {
	r, mr := newCachedAPI(t)
	token := envAdminToken(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/company/details", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("cache-control"), "private")
	assert.Empty(t, mr.Keys())
}
