package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// IdempotencyKeyHeader carries the client chosen request key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader is set on responses served from the store.
	IdempotentReplayHeader = "Idempotent-Replayed"

	// How long the "in-progress" marker lives if the handler never finishes.
	provisionalLockTTL = 60 * time.Second
	redisOpTimeout     = 2 * time.Second
	maxKeyLength       = 128
)

type bodyRecorder struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.buf.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware replays the stored response of a mutating request
// whose Idempotency-Key was already seen for the same user and route.
// Requests without the header pass through. A nil client disables the middleware.
func IdempotencyMiddleware(rdb redis.Cmdable, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		reqKey := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if reqKey == "" {
			c.Next()
			return
		}
		if len(reqKey) > maxKeyLength {
			abortIdempotency(c, http.StatusBadRequest, "VALIDATION_ERROR", "Idempotency-Key is too long")
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		bhash := bodyHash(body)

		userID, _ := GetUserIDFromContext(c)
		key := buildKey(c.Request.Method, c.FullPath(), userID, reqKey)

		ctx, cancel := context.WithTimeout(c.Request.Context(), redisOpTimeout)
		defer cancel()

		ok, err := provisionalSet(ctx, rdb, key, idempEntry{
			InProgress: true,
			BodySHA256: bhash,
			CreatedAt:  nowUTC(),
		})
		if err != nil {
			logger.Error("Idempotency store unavailable", slog.String("error", err.Error()))
			abortIdempotency(c, http.StatusServiceUnavailable, "IDEMPOTENCY_UNAVAILABLE", "idempotency store unavailable")
			return
		}
		if !ok {
			cur, err := loadEntry(ctx, rdb, key)
			if err != nil {
				logger.Warn("Failed to load idempotency entry", slog.String("key", key), slog.String("error", err.Error()))
			}
			if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
				abortIdempotency(c, http.StatusConflict, "IDEMPOTENCY_KEY_REUSED", "Idempotency-Key reused with a different body")
				return
			}
			if !cur.InProgress && cur.Code != 0 {
				c.Header(IdempotentReplayHeader, "true")
				c.Data(cur.Code, "application/json; charset=utf-8", cur.Body)
				c.Abort()
				return
			}
			abortIdempotency(c, http.StatusConflict, "REQUEST_IN_PROGRESS", "request is already in progress")
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = rec
		c.Next()

		saveCtx, saveCancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer saveCancel()

		status := rec.Status()
		if status >= http.StatusInternalServerError {
			// Let the client retry a failed attempt with the same key.
			if err := rdb.Del(saveCtx, key).Err(); err != nil {
				logger.Warn("Failed to release idempotency key", slog.String("error", err.Error()))
			}
			return
		}
		final := idempEntry{
			Code:       status,
			Body:       rec.buf.Bytes(),
			BodySHA256: bhash,
			CreatedAt:  nowUTC(),
		}
		if err := saveFinal(saveCtx, rdb, key, final, ttl); err != nil {
			logger.Warn("Failed to store idempotent response", slog.String("error", err.Error()))
		}
	}
}

func abortIdempotency(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: msg}})
}
