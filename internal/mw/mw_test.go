package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(1), 2))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// The burst allows two requests, the third is throttled.
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())

	// A different client gets its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCacheServesRepeatGets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hits := 0
	r := gin.New()
	r.Use(Cache(cache.New(time.Minute, time.Minute), time.Minute))
	r.GET("/data", func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "payload")
	})
	r.POST("/data", func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "written")
	})

	do := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/data", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodGet)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "payload", w.Body.String())
	assert.Equal(t, 1, hits)

	// Second GET is served from the cache.
	w = do(http.MethodGet)
	assert.Equal(t, "payload", w.Body.String())
	assert.Equal(t, 1, hits)

	// Mutating methods always pass through.
	do(http.MethodPost)
	assert.Equal(t, 2, hits)
}

func TestCacheSkipsErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hits := 0
	r := gin.New()
	r.Use(Cache(cache.New(time.Minute, time.Minute), time.Minute))
	r.GET("/broken", func(c *gin.Context) {
		hits++
		c.String(http.StatusInternalServerError, "boom")
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/broken", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	}
	assert.Equal(t, 2, hits)
}
