package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/flk92/pcem/sdk/contracts"
)

// ZapLogger is an implementation of the Logger contract backed by Uber's zap.
type ZapLogger struct {
	logger *zap.Logger
	level  contracts.LogLevel
}

// NewZapLogger creates a new production zap logger.
func NewZapLogger() contracts.Logger {
	logger, _ := zap.NewProduction()
	return &ZapLogger{logger: logger, level: contracts.InfoLevel}
}

// NewNop creates a logger that discards everything. Used by tests and as a
// safe fallback.
func NewNop() contracts.Logger {
	return &ZapLogger{logger: zap.NewNop(), level: contracts.InfoLevel}
}

// Info logs a message at the INFO level.
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level.
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level.
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level.
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Field returns a new empty field builder.
func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

// SetLevel sets the logging level.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level = level
}

// zapLevels maps contract levels onto zap's severity ordering. The two
// enumerations number their levels differently, so the threshold check
// must go through this table rather than compare numeric values.
var zapLevels = map[contracts.LogLevel]zapcore.Level{
	contracts.DebugLevel: zapcore.DebugLevel,
	contracts.InfoLevel:  zapcore.InfoLevel,
	contracts.WarnLevel:  zapcore.WarnLevel,
	contracts.ErrorLevel: zapcore.ErrorLevel,
}

func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	if level < zapLevels[z.level] {
		return
	}

	zapFields := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(*zapField); ok {
			zapFields = append(zapFields, zap.Any(f.key, f.value))
		}
	}

	switch level {
	case zapcore.InfoLevel:
		z.logger.Info(msg, zapFields...)
	case zapcore.ErrorLevel:
		z.logger.Error(msg, zapFields...)
	case zapcore.DebugLevel:
		z.logger.Debug(msg, zapFields...)
	case zapcore.WarnLevel:
		z.logger.Warn(msg, zapFields...)
	}
}

// zapField implements contracts.Field.
type zapField struct {
	key   string
	value interface{}
}

func (f *zapField) Bool(key string, val bool) contracts.Field {
	return &zapField{key, val}
}

func (f *zapField) Int(key string, val int) contracts.Field {
	return &zapField{key, val}
}

func (f *zapField) Int64(key string, val int64) contracts.Field {
	return &zapField{key, val}
}

func (f *zapField) String(key string, val string) contracts.Field {
	return &zapField{key, val}
}

func (f *zapField) Error(key string, val error) contracts.Field {
	return &zapField{key, val}
}

func (f *zapField) Uint8(key string, val uint8) contracts.Field {
	return &zapField{key, val}
}
