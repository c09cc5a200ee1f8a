package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	"github.com/google/uuid"
)

// NewLogger builds the process-wide JSON logger using the ECS field schema
func NewLogger(app, version, env, level string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CorrelationID returns the chi request id, or a fresh uuid outside a request
func CorrelationID(ctx context.Context) string {
	if id := chiMiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// Caller returns the username carried by the access token
func Caller(ctx context.Context) string {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil || claims.Username == "" {
		return "anonymous"
	}
	return claims.Username
}

// Expected reports errors that are normal outcomes of a call, such as a
// missing record or a rejected transition.
type Expected func(err error) bool

// Trace runs fn and writes one OK/ERR line for the call. Errors matched by
// expected are written at WARN, everything else at ERROR.
func Trace[T any](ctx context.Context, logger *slog.Logger, expected Expected, method string, args interface{}, fn func(ctx context.Context) (T, error)) (T, error) {
	start := time.Now()
	result, err := fn(ctx)

	attrs := []any{
		slog.String("correlation_id", CorrelationID(ctx)),
		slog.String("user", Caller(ctx)),
		slog.String("method", method),
		slog.Any("args", args),
		slog.Duration("took", time.Since(start)),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		if expected != nil && expected(err) {
			logger.WarnContext(ctx, "ERR", attrs...)
		} else {
			logger.ErrorContext(ctx, "ERR", attrs...)
		}
		return result, err
	}
	logger.InfoContext(ctx, "OK", attrs...)
	return result, nil
}
