package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	log := NewGormLogger(DefaultGormLoggerConfig())
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT 1", 1 }

	// Record-not-found is routine and stays out of the error log.
	log.Trace(ctx, time.Now(), fc, gormlogger.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	log.Trace(ctx, time.Now(), fc, errors.New("syntax error"))
	assert.Equal(t, 1, logs.FilterMessage("query failed").Len())
}

func TestGormLogger_SlowQuery(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	log := NewGormLogger(GormLoggerConfig{
		Level:         gormlogger.Warn,
		SlowThreshold: time.Millisecond,
	})
	fc := func() (string, int64) { return "SELECT 1", 1 }

	log.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	assert.Equal(t, 1, logs.FilterMessage("slow query").Len())
}
