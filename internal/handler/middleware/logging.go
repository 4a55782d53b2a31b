package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"strings"
	"time"

	"medoffice-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	ctxRequestIDKey = "request_id"
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 64
)

// NewLogger builds the process logger and installs it as the slog default.
// Release mode logs JSON; every other mode logs text.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	loc := logLocation(cfg)

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey {
				return a
			}
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.In(loc).Format(cfg.TimeFormat))
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// RequestLogger tags each request with an id (reusing a sane inbound
// X-Request-ID) and logs one line when it starts and one when it ends.
// The completion line carries the authenticated user and the booking
// identifiers in play so a failed checkout can be traced from the log alone.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := inboundRequestID(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = newRequestID(start)
		}
		c.Set(ctxRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			attrs = append(attrs, slog.String("idempotency_key", key))
		}

		logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "Request started", attrs...)

		c.Next()

		status := c.Writer.Status()
		done := append(attrs[:len(attrs):len(attrs)], bookingAttrs(c)...)
		done = append(done,
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		)
		if size := c.Writer.Size(); size > 0 {
			done = append(done, slog.Int("response_size", size))
		}
		if len(c.Errors) > 0 {
			done = append(done, slog.String("errors", c.Errors.String()))
		}

		logger.LogAttrs(context.Background(), levelFor(status), "Request completed", done...)
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}

// bookingAttrs reads what auth and routing resolved during c.Next.
func bookingAttrs(c *gin.Context) []slog.Attr {
	var out []slog.Attr
	if userID, ok := GetUserID(c); ok {
		out = append(out, slog.String("user_id", userID.String()))
	}
	if role, ok := GetUserRole(c); ok {
		out = append(out, slog.String("role", role.String()))
	}
	if route := c.FullPath(); route != "" {
		out = append(out, slog.String("route", route))
	}
	if roomID := c.Param("id"); roomID != "" {
		out = append(out, slog.String("room_id", roomID))
	}
	return out
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func parseLevel(v string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// logLocation prefers the IANA zone and falls back to the fixed offset for
// hosts without tzdata.
func logLocation(cfg config.LogConfig) *time.Location {
	if loc, err := time.LoadLocation(cfg.TimeZone); err == nil {
		return loc
	}
	return time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
}

func inboundRequestID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxRequestIDLen {
		return ""
	}
	for _, r := range v {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return v
}

func newRequestID(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return now.UTC().Format("20060102150405.000000000")
	}
	return now.UTC().Format("20060102150405") + "-" + hex.EncodeToString(buf)
}
