package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("user_id", userID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogBookingCreated logs when a booking is created against the remote store
func (l *Logger) LogBookingCreated(ctx context.Context, bookingRef, location, userID string) {
	l.Logger.InfoContext(ctx,
		"Booking Created",
		slog.String("booking_ref", bookingRef),
		slog.String("location", location),
		slog.String("user_id", userID),
	)
}

// LogRefundApproved logs when a refund transaction is approved and a credit minted
func (l *Logger) LogRefundApproved(ctx context.Context, refundID, creditID, userID string) {
	l.Logger.InfoContext(ctx,
		"Refund Approved",
		slog.String("refund_id", refundID),
		slog.String("credit_id", creditID),
		slog.String("user_id", userID),
	)
}

// LogPaymentReconciled logs a settled gateway reference
func (l *Logger) LogPaymentReconciled(ctx context.Context, reference, status string, replay bool) {
	l.Logger.InfoContext(ctx,
		"Payment Reconciled",
		slog.String("reference", reference),
		slog.String("status", status),
		slog.Bool("replay", replay),
	)
}

// LogFeeSettingsFallback logs that built-in fee defaults were used
func (l *Logger) LogFeeSettingsFallback(ctx context.Context, err error) {
	l.Logger.WarnContext(ctx,
		"Fee Settings Unavailable",
		slog.String("error", err.Error()),
		slog.String("action", "using built-in defaults"),
	)
}

// LogCreditsExpired logs the result of an expiry sweep
func (l *Logger) LogCreditsExpired(ctx context.Context, count int64) {
	l.Logger.InfoContext(ctx,
		"Store Credits Expired",
		slog.Int64("count", count),
	)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
