package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sambbaron/tuneful/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.ReplaceGlobal(zap.New(core)))
	return logs
}

func TestGormLoggerLevels(t *testing.T) {
	logs := observeLogs(t)
	gl := newGormLogger()
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT * FROM `song`", 3 }

	gl.Trace(ctx, time.Now(), query, errors.New("no such table: song"))
	gl.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	gl.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	gl.Trace(ctx, time.Now(), query, nil)
	gl.Info(ctx, "dropped at warn level")
	gl.Warn(ctx, "index %s missing", "idx_song_file_id")

	require.Equal(t, 3, logs.Len())

	failed := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, failed, 1)
	assert.Equal(t, "SQL query failed", failed[0].Message)
	assert.Equal(t, "SELECT * FROM `song`", failed[0].ContextMap()["sql"])

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 2)
	assert.Equal(t, "Slow SQL query", warns[0].Message)
	assert.Equal(t, "index idx_song_file_id missing", warns[1].Message)
}

func TestGormLoggerModes(t *testing.T) {
	logs := observeLogs(t)
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT 1", 1 }

	newGormLogger().LogMode(gormlogger.Silent).Trace(ctx, time.Now(), query, errors.New("boom"))
	assert.Zero(t, logs.Len())

	newGormLogger().LogMode(gormlogger.Info).Trace(ctx, time.Now(), query, nil)
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())
}
