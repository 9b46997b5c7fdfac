package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "pharmacy/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Catalog statements touch one row or a short list.
const slowQueryThreshold = 200 * time.Millisecond

// queryLogger writes gorm output to the request-scoped slog logger, so SQL
// lines carry the request_id of the call that issued them.
type queryLogger struct {
	base  *slog.Logger
	level logger.LogLevel
}

// newQueryLogger logs every statement in debug mode and only failures and slow
// queries otherwise.
func newQueryLogger(base *slog.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	return &queryLogger{base: base, level: level}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &queryLogger{base: l.base, level: level}
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *queryLogger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.base == nil || l.level < threshold {
		return
	}

	l.from(ctx).LogAttrs(ctx, level, "GORM message", slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace classifies a finished statement. Missing rows become 404s upstream and
// are not logged. Constraint violations become 409s and are logged as warnings.
func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.base == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return
	case err != nil && isConstraintViolation(err):
		if l.level >= logger.Warn {
			l.query(ctx, slog.LevelWarn, "Query rejected by constraint", fc, elapsed, slog.String("error", err.Error()))
		}
	case err != nil:
		if l.level >= logger.Error {
			l.query(ctx, slog.LevelError, "Query failed", fc, elapsed, slog.String("error", err.Error()))
		}
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		l.query(ctx, slog.LevelWarn, "Slow query", fc, elapsed, slog.Duration("threshold", slowQueryThreshold))
	case l.level >= logger.Info:
		l.query(ctx, slog.LevelDebug, "Query", fc, elapsed)
	}
}

func (l *queryLogger) query(ctx context.Context, level slog.Level, msg string, fc func() (string, int64), elapsed time.Duration, extra ...slog.Attr) {
	sql, rows := fc()
	attrs := append([]slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}, extra...)

	l.from(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *queryLogger) from(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, l.base)
}

func isConstraintViolation(err error) bool {
	return isUniqueConstraintViolation(err) || isCheckConstraintViolation(err) || isNotNullConstraintViolation(err)
}
