package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"farm-bridge.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the lock is held while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed response is kept
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

// splitCachedResponse separates the stored status line from the body.
func splitCachedResponse(val string) (int, string) {
	idx := strings.IndexByte(val, '\n')
	if idx > 0 {
		if status, err := strconv.Atoi(val[:idx]); err == nil {
			return status, val[idx+1:]
		}
	}
	return http.StatusOK, val
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware ensures a funding or deposit request carrying an
// Idempotency-Key is not applied twice. The first request acquires a lock
// and caches its successful response body; replays get the cached body and
// concurrent duplicates a conflict.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		storageKey := fmt.Sprintf("idempotency:%s:%s", c.Request.URL.Path, key)
		ctx := c.Request.Context()

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			// Redis unavailability must not block ledger operations.
			c.Next()
			return
		}
		if !acquired {
			val, err := redisGet(ctx, storageKey)
			if err == nil && val != processingMarker {
				status, body := splitCachedResponse(val)
				c.Header("X-Idempotent-Replay", "true")
				c.Data(status, "application/json", []byte(body))
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "IDEMPOTENCY_CONFLICT",
				"message": "request with this idempotency key is already in progress",
			})
			return
		}

		writer := responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			// The status is stored with the body so a replayed 201 does not
			// come back as a 200.
			cached := fmt.Sprintf("%d\n%s", status, writer.body.String())
			_ = redisSet(ctx, storageKey, cached, RetentionDuration)
		} else {
			// Failed attempts may be retried with the same key.
			_ = redisDel(ctx, storageKey)
		}
	}
}
