package requestctx

import (
	"context"

	"go.uber.org/zap"

	"github.com/tibacare/storefront/internal/i18n"
)

type contextKey string

const (
	loggerContextKey   contextKey = "github.com/tibacare/storefront/internal/platform/requestctx/logger"
	traceContextKey    contextKey = "github.com/tibacare/storefront/internal/platform/requestctx/trace"
	languageContextKey contextKey = "github.com/tibacare/storefront/internal/platform/requestctx/language"
)

var noopLogger = zap.NewNop()

// TraceInfo captures trace metadata propagated through request context.
type TraceInfo struct {
	TraceID string
	SpanID  string
	Sampled bool
}

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	if logger, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}

// NoopLogger exposes the shared noop logger instance used across the package.
func NoopLogger() *zap.Logger { return noopLogger }

// WithTrace stores the trace metadata on the context for downstream usage.
func WithTrace(ctx context.Context, info TraceInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, traceContextKey, info)
}

// Trace retrieves the trace metadata from context when available.
func Trace(ctx context.Context) (TraceInfo, bool) {
	if ctx == nil {
		return TraceInfo{}, false
	}
	info, ok := ctx.Value(traceContextKey).(TraceInfo)
	if !ok {
		return TraceInfo{}, false
	}
	return info, true
}

// TraceID extracts the trace identifier from context when present.
func TraceID(ctx context.Context) string {
	info, ok := Trace(ctx)
	if !ok {
		return ""
	}
	return info.TraceID
}

// WithLanguage stores the negotiated display language on the context.
func WithLanguage(ctx context.Context, lang i18n.Language) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, languageContextKey, lang)
}

// Language retrieves the negotiated display language, defaulting when unset.
func Language(ctx context.Context) i18n.Language {
	if ctx == nil {
		return i18n.Default
	}
	if lang, ok := ctx.Value(languageContextKey).(i18n.Language); ok && lang != "" {
		return lang
	}
	return i18n.Default
}
