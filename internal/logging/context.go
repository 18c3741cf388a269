package logging

import (
	"context"
	"log/slog"
	"strings"
)

type contextKey string

const (
	runIDKey    contextKey = "reklamefix.run_id"
	objectIDKey contextKey = "reklamefix.object_id"
)

// WithRunID tags ctx with the batch run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return withValue(ctx, runIDKey, runID)
}

// WithObjectID tags ctx with the DOMS object being processed.
func WithObjectID(ctx context.Context, id string) context.Context {
	return withValue(ctx, objectIDKey, id)
}

// RunIDFromContext returns the run identifier stored in ctx.
func RunIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, runIDKey)
}

// ObjectIDFromContext returns the object identifier stored in ctx.
func ObjectIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, objectIDKey)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if id, ok := ObjectIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldObjectID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}

func withValue(ctx context.Context, key contextKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(key).(string)
	return value, ok && value != ""
}
