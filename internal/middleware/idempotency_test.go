package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func setupIdempotentRouter(rdb redis.Cmdable, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyMiddleware(rdb, time.Minute))
	r.POST("/cases/:id/approve", handler)
	r.GET("/cases/:id", handler)
	return r
}

func doIdempotentReq(r *gin.Engine, method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	r := setupIdempotentRouter(rdb, func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusOK, gin.H{"call": n})
	})

	first := doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{}`, "key-1")
	second := doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{}`, "key-1")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(IdempotentReplayHeader))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestIdempotency_DifferentBodyConflicts(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	r := setupIdempotentRouter(rdb, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{"a":1}`, "key-2")
	rec := doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{"a":2}`, "key-2")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "IDEMPOTENCY_KEY_REUSED")
}

func TestIdempotency_InProgressConflicts(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	r := setupIdempotentRouter(rdb, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	key := buildKey(http.MethodPost, "/cases/:id/approve", "", "key-3")
	require.NoError(t, mr.Set(key, `{"in_progress":true,"body_sha256":"`+bodyHash([]byte(`{}`))+`"}`))

	rec := doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{}`, "key-3")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "REQUEST_IN_PROGRESS")
}

func TestIdempotency_ServerErrorReleasesKey(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	r := setupIdempotentRouter(rdb, func(c *gin.Context) {
		if atomic.AddInt32(&calls, 1) == 1 {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	first := doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{}`, "key-4")
	second := doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{}`, "key-4")

	assert.Equal(t, http.StatusInternalServerError, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_BypassesWithoutKeyOrOnGET(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	r := setupIdempotentRouter(rdb, func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{}`, "")
	doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{}`, "")
	doIdempotentReq(r, http.MethodGet, "/cases/1", "", "key-5")
	doIdempotentReq(r, http.MethodGet, "/cases/1", "", "key-5")

	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestIdempotency_StoreUnavailable(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	r := setupIdempotentRouter(rdb, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	mr.Close()

	rec := doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{}`, "key-6")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestIdempotency_NilClientDisabled(t *testing.T) {
	r := setupIdempotentRouter(nil, func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"ok": true}) })

	rec := doIdempotentReq(r, http.MethodPost, "/cases/1/approve", `{}`, "key-7")
	assert.Equal(t, http.StatusCreated, rec.Code)
}
