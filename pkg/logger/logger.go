// Package logger provides a structured, levelled logger built on log/slog.
//
// Setup builds the process logger from configuration: human-readable text in
// development, JSON in production, optionally fanned out to MongoDB for log
// shipping. The per-request variant is attached to the request context by the
// Logger middleware and retrieved with WithCtx, so every log line from a
// handler carries the request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", order.ID)
package logger

import (
	"context"
	"log/slog"
	"os"
)

// L is the process-wide base logger. Setup replaces it; until then it is a
// plain text logger so early boot errors are still visible.
var L = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Options configures Setup.
type Options struct {
	Env             string // "production"/"prod" selects JSON output
	MongoURI        string // when set, records are also shipped to MongoDB
	MongoDatabase   string
	MongoCollection string
}

// Setup builds the base logger and installs it as the slog default.
// The returned closer flushes the Mongo handler; it is a no-op when Mongo
// logging is not configured.
func Setup(opts Options) (func(), error) {
	var handler slog.Handler
	switch opts.Env {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	closer := func() {}
	if opts.MongoURI != "" {
		mh, err := NewMongoHandler(opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			return nil, err
		}
		handler = NewMultiHandler(handler, mh)
		closer = mh.Close
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return closer, nil
}

// ctxKey stores the per-request *slog.Logger in a context.
type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a pre-tagged logger into ctx. Called by the Logger
// middleware; application code rarely needs it.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
