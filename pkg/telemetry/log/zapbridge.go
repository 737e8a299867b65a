package log

import (
	"context"
	"fmt"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"go.uber.org/zap/zapcore"
)

// ZapBridgeCore is a zapcore.Core forwarding zap entries into a Logger, so
// an application's existing zap logger feeds the log pipeline unchanged.
// Wrap it with zapcore.NewTee to keep the original output as well.
type ZapBridgeCore struct {
	logger   *Logger
	minLevel zapcore.Level
	fields   []attribute.KeyValue
}

var _ zapcore.Core = (*ZapBridgeCore)(nil)

func NewZapBridgeCore(logger *Logger, minLevel zapcore.Level) *ZapBridgeCore {
	return &ZapBridgeCore{logger: logger, minLevel: minLevel}
}

func (c *ZapBridgeCore) Enabled(level zapcore.Level) bool {
	return level >= c.minLevel
}

func (c *ZapBridgeCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &ZapBridgeCore{
		logger:   c.logger,
		minLevel: c.minLevel,
		fields:   make([]attribute.KeyValue, 0, len(c.fields)+len(fields)),
	}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fieldsToAttributes(fields)...)
	return clone
}

func (c *ZapBridgeCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *ZapBridgeCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	record := Record{
		Timestamp:    entry.Time,
		Severity:     severityFromZapLevel(entry.Level),
		SeverityText: entry.Level.CapitalString(),
		Body:         entry.Message,
	}
	record.Attributes = append(record.Attributes, c.fields...)
	record.Attributes = append(record.Attributes, fieldsToAttributes(fields)...)
	if entry.LoggerName != "" {
		record.Attributes = append(record.Attributes, attribute.String("logger.name", entry.LoggerName))
	}
	c.logger.Emit(context.Background(), record)
	return nil
}

func (c *ZapBridgeCore) Sync() error {
	return c.logger.provider.ForceFlush(context.Background())
}

func severityFromZapLevel(level zapcore.Level) Severity {
	switch level {
	case zapcore.DebugLevel:
		return SeverityDebug
	case zapcore.InfoLevel:
		return SeverityInfo
	case zapcore.WarnLevel:
		return SeverityWarn
	case zapcore.ErrorLevel:
		return SeverityError
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return SeverityFatal
	default:
		return SeverityTrace
	}
}

func fieldsToAttributes(fields []zapcore.Field) []attribute.KeyValue {
	if len(fields) == 0 {
		return nil
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	attrs := make([]attribute.KeyValue, 0, len(enc.Fields))
	for k, v := range enc.Fields {
		attrs = append(attrs, anyToAttribute(k, v))
	}
	return attrs
}

func anyToAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int8:
		return attribute.Int64(key, int64(v))
	case int16:
		return attribute.Int64(key, int64(v))
	case int32:
		return attribute.Int64(key, int64(v))
	case int64:
		return attribute.Int64(key, v)
	case uint:
		return attribute.Int64(key, int64(v))
	case uint32:
		return attribute.Int64(key, int64(v))
	case uint64:
		return attribute.Int64(key, int64(v))
	case float32:
		return attribute.Float64(key, float64(v))
	case float64:
		return attribute.Float64(key, v)
	case time.Duration:
		return attribute.Int64(key, v.Nanoseconds())
	case time.Time:
		return attribute.String(key, v.Format(time.RFC3339Nano))
	case error:
		return attribute.String(key, v.Error())
	case []string:
		return attribute.StringSlice(key, v)
	case []int64:
		return attribute.Int64Slice(key, v)
	case []float64:
		return attribute.Float64Slice(key, v)
	case []bool:
		return attribute.BoolSlice(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
