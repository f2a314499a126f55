package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wefixit/internal/apperr"
	"wefixit/pkg/logger"
	"wefixit/pkg/metrics"
	"wefixit/pkg/trace"
	"wefixit/pkg/util"
)

const adminKey = "admin_username"

// TraceMiddleware attaches a trace id to the request context and echoes it
// back in the response header.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := trace.FromHeader(c.GetHeader(trace.HeaderName))
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), id))
		c.Header(trace.HeaderName, id)
		c.Next()
	}
}

func LoggingMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		log := logger.WithTrace(c.Request.Context(), l)
		if c.Writer.Status() >= 500 {
			log.Warn("HTTP request", fields...)
			return
		}
		log.Info("HTTP request", fields...)
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// RecoveryMiddleware turns a panic into the generic 500 body.
func RecoveryMiddleware(l *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		respondError(c, l, fmt.Errorf("panic: %v", rec))
	})
}

// AuthMiddleware only lets requests with a valid admin bearer token through.
func AuthMiddleware(jwtSecret string, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.ExtractToken(c.Request)
		if token == "" {
			respondError(c, l, apperr.Unauthorized("missing token"))
			return
		}

		username, err := util.ParseJWT(token, jwtSecret)
		if err != nil {
			respondError(c, l, apperr.Unauthorized("invalid token"))
			return
		}

		c.Set(adminKey, username)
		c.Next()
	}
}

func adminUsername(c *gin.Context) string {
	return c.GetString(adminKey)
}
