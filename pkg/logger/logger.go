package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const requestMessage = "request handled"

// New builds the process logger. "production" gets JSON at info, anything
// else a colored console encoder at debug.
func New(environment string) *zap.Logger {
	built, err := configFor(environment).Build()
	if err != nil {
		panic("logger: " + err.Error())
	}
	return built
}

func configFor(environment string) zap.Config {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if environment == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// GinMiddleware writes one entry per request after the rest of the chain has run.
// 5xx responses log at error, 4xx at warn.
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		// handlers may rewrite the URL
		path, rawQuery := c.Request.URL.Path, c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		entry := log.Check(levelFor(status), requestMessage)
		if entry == nil {
			return
		}
		entry.Write(requestFields(c, status, path, rawQuery, time.Since(began))...)
	}
}

func levelFor(status int) zapcore.Level {
	if status >= 500 {
		return zapcore.ErrorLevel
	}
	if status >= 400 {
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

func requestFields(c *gin.Context, status int, path, rawQuery string, took time.Duration) []zap.Field {
	fields := make([]zap.Field, 0, 9)
	fields = append(fields,
		zap.String("method", c.Request.Method),
		zap.String("path", path),
		zap.String("route", c.FullPath()),
		zap.String("query", rawQuery),
		zap.Int("status", status),
		zap.Duration("latency", took),
		zap.String("ip", c.ClientIP()),
		zap.String("user-agent", c.Request.UserAgent()),
	)

	// the request id middleware may sit after this one
	id := c.GetString("request_id")
	if id == "" {
		id = c.GetHeader("X-Request-ID")
	}
	if id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return fields
}
