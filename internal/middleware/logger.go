package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ZapLogger returns a middleware that logs HTTP requests using zap logger.
// Server errors are logged at error level with the errors handlers attached.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", dur),
			zap.String("clientIP", c.ClientIP()),
		}

		switch {
		case c.Writer.Status() >= 500:
			if len(c.Errors) > 0 {
				fields = append(fields, zap.String("errors", c.Errors.String()))
			}
			log.Error("HTTP", fields...)
		case c.Request.URL.Path == "/health":
			log.Debug("HTTP", fields...)
		default:
			log.Info("HTTP", fields...)
		}
	}
}

// ZapRecovery recovers from panics, logs them and answers 500.
func ZapRecovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatus(500)
	})
}
