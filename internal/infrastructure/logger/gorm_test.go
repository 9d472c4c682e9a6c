package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func traceQuery(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Defaults(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn)

	assert.Equal(t, gormlogger.Warn, gl.logLevel)
	assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
	assert.True(t, gl.ignoreRecordNotFoundError)
}

func TestGormLogger_Options(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info,
		WithSlowThreshold(time.Second),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, time.Second, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
}

func TestGormLogger_LogModeReturnsCopy(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info)

	silenced := gl.LogMode(gormlogger.Silent)

	assert.Equal(t, gormlogger.Silent, silenced.(*GormLogger).logLevel)
	assert.Equal(t, gormlogger.Info, gl.logLevel)
}

func TestGormLogger_MessageLevels(t *testing.T) {
	ctx := context.Background()

	gl, logs := newObservedGormLogger(gormlogger.Info)
	gl.Info(ctx, "migrated %d tables", 6)
	gl.Warn(ctx, "slow shift close")
	gl.Error(ctx, "variance write failed")
	require.Equal(t, 3, logs.Len())

	silent, silentLogs := newObservedGormLogger(gormlogger.Silent)
	silent.Info(ctx, "ignored")
	silent.Warn(ctx, "ignored")
	silent.Error(ctx, "ignored")
	assert.Zero(t, silentLogs.Len())
}

func TestGormLogger_TraceError(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Info)

	gl.Trace(context.Background(), time.Now(),
		traceQuery("INSERT INTO entry_logs (member_id) VALUES ($1)", 0),
		errors.New("connection reset"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "SQL Error", entry.Message)
	assert.Equal(t, zap.ErrorLevel, entry.Level)
}

func TestGormLogger_TraceIgnoresRecordNotFound(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(),
		traceQuery("SELECT * FROM digital_sales WHERE id = $1", 0),
		gormlogger.ErrRecordNotFound)

	assert.Zero(t, logs.Len())
}

func TestGormLogger_TraceSlowQuery(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Millisecond))

	gl.Trace(context.Background(), time.Now().Add(-time.Second),
		traceQuery("SELECT * FROM payment_notifications WHERE answered = false", 12),
		nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "SLOW SQL")
}

func TestGormLogger_TraceNormalQuery(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Info)

	gl.Trace(context.Background(), time.Now(),
		traceQuery("SELECT * FROM shifts WHERE closed = false", 1), nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "SQL Query", entry.Message)
	assert.Equal(t, "SELECT * FROM shifts WHERE closed = false", entry.ContextMap()["sql"])
}

func TestGormLogger_TraceSilent(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(),
		traceQuery("SELECT * FROM shifts", 1), errors.New("still silent"))

	assert.Zero(t, logs.Len())
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Info)
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-8842")

	gl.Trace(ctx, time.Now(), traceQuery("SELECT * FROM entitlements WHERE member_id = $1", 1), nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-8842", logs.All()[0].ContextMap()["request_id"])
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"", gormlogger.Warn},
		{"verbose", gormlogger.Warn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapGormLogLevel(tt.input), "level %q", tt.input)
	}
}

func TestGormLogger_ImplementsInterface(t *testing.T) {
	var _ gormlogger.Interface = NewGormLogger(zap.NewNop(), gormlogger.Info)
}
