package middleware

// Response cache for the public read endpoints (pitch list, pitch
// detail, day schedule).  Successful GET responses are stored in Redis
// for a short TTL keyed by path and query string.  Authenticated
// schedule views are never cached because slot statuses depend on who
// is asking.

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/fbranqinho/sportify-studio-sub001/internal/config"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// captureWriter duplicates everything written to the client so the
// response can be stored after the handler returns.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

// NewRedisCache returns an Echo middleware serving cached copies of
// GET responses.  A nil client or a disabled config yields a no-op.
func NewRedisCache(client *redis.Client, cfg config.CacheConfig) echo.MiddlewareFunc {
	if client == nil || !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}
			if c.QueryParam(cfg.BypassParam) != "" {
				return next(c)
			}
			// Skip per-user responses.
			if req.Header.Get("Authorization") != "" {
				return next(c)
			}

			key := buildCacheKey(cfg.KeyPrefix, req)
			ctx, cancel := context.WithTimeout(req.Context(), 200*time.Millisecond)
			raw, err := client.Get(ctx, key).Bytes()
			cancel()
			if err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK {
				payload, merr := json.Marshal(cachedResponse{
					Status:      cw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        cw.buf.Bytes(),
				})
				if merr == nil {
					sctx, scancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
					client.Set(sctx, key, payload, cfg.TTL)
					scancel()
				}
			}
			return nil
		}
	}
}

func buildCacheKey(prefix string, req *http.Request) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(':')
	b.WriteString(req.URL.Path)
	if q := req.URL.RawQuery; q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	return b.String()
}
