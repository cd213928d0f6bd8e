package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
)

func newLimitedRouter(rl *RateLimiter, actor *uuid.UUID) *gin.Engine {
	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) {
			c.Set(ActorKey, *actor)
			c.Next()
		})
	}
	r.POST("/recipes", rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func post(r *gin.Engine) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(rr, req)
	return rr
}

func TestRateLimitMiddleware(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	rl := NewRecipeWriteRateLimiter(client, time.Minute, 2)
	router := newLimitedRouter(rl, nil)

	first := post(router)
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, post(router).Code)

	blocked := post(router)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	// A known caller has its own counter.
	actor := uuid.New()
	assert.Equal(t, http.StatusCreated, post(newLimitedRouter(rl, &actor)).Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rl := NewRecipeWriteRateLimiter(client, time.Minute, 1)
	router := newLimitedRouter(rl, nil)

	for i := 0; i < 3; i++ {
		rr := post(router)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
	}
}
