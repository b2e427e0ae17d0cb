package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsWithinBurstThenRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 1 req/sec with a burst of 2: third immediate request must be rejected
	rl := NewRateLimiter(1, 2)

	router := gin.New()
	router.POST("/submit", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/submit", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_TracksClientsSeparately(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, 1)

	router := gin.New()
	router.POST("/submit", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRequest("POST", "/submit", nil)
	first.RemoteAddr = "203.0.113.7:1234"
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, first)

	// Same IP exhausted its bucket
	second := httptest.NewRequest("POST", "/submit", nil)
	second.RemoteAddr = "203.0.113.7:1234"
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, second)

	// A different IP still gets through
	third := httptest.NewRequest("POST", "/submit", nil)
	third.RemoteAddr = "198.51.100.9:1234"
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, third)

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.Equal(t, http.StatusOK, w3.Code)
}
