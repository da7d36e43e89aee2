package database

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const dbTracerName = "github.com/stitchwear/storefront/pkg/database"

var slowLog = struct {
	sync.RWMutex
	threshold time.Duration
	logger    *slog.Logger
}{}

// SetSlowQueryLogging turns on warning logs for queries slower than
// threshold. Zero disables it.
func SetSlowQueryLogging(threshold time.Duration, logger *slog.Logger) {
	slowLog.Lock()
	slowLog.threshold = threshold
	slowLog.logger = logger
	slowLog.Unlock()
}

// TraceQuery opens a client span for one database operation and returns a
// completion callback that must be invoked with the operation's error:
//
//	ctx, finish := database.TraceQuery(ctx, "catalog.list_products", query)
//	rows, err := pool.Query(ctx, query, args...)
//	finish(err)
//
// When slow-query logging is enabled, operations over the threshold are
// logged at warn with the statement and duration.
func TraceQuery(ctx context.Context, operation, statement string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(dbTracerName).Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.statement", statement),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		slowLog.RLock()
		threshold, logger := slowLog.threshold, slowLog.logger
		slowLog.RUnlock()
		if threshold <= 0 || logger == nil {
			return
		}
		if elapsed := time.Since(start); elapsed >= threshold {
			args := []any{
				slog.String("operation", operation),
				slog.String("statement", statement),
				slog.Duration("duration", elapsed),
			}
			if err != nil {
				args = append(args, slog.String("error", err.Error()))
			}
			logger.WarnContext(ctx, "slow query", args...)
		}
	}
}
