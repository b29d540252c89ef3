package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sambbaron/tuneful/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger maps GORM log levels onto the zap logger.
type gormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger() gormlogger.Interface {
	return &gormLogger{
		level:         gormlogger.Warn,
		slowThreshold: slowQueryThreshold,
	}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.Info(fmt.Sprintf(msg, data...), logger.String("component", "gorm"))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.Warn(fmt.Sprintf(msg, data...), logger.String("component", "gorm"))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.Error(fmt.Sprintf(msg, data...), logger.String("component", "gorm"))
	}
}

// Trace logs failed queries at error, slow ones at warn and the rest at debug.
// Missing records are not failures.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	fields := func() []zap.Field {
		sql, rows := fc()
		return []zap.Field{
			logger.String("component", "gorm"),
			logger.String("sql", sql),
			logger.Int64("rows", rows),
			logger.Duration("elapsed", elapsed),
		}
	}

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		logger.Error("SQL query failed", append(fields(), logger.ErrorField(err))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		logger.Warn("Slow SQL query", append(fields(), logger.Duration("threshold", l.slowThreshold))...)
	case l.level >= gormlogger.Info:
		logger.Debug("SQL query", fields()...)
	}
}
