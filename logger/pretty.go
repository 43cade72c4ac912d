package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// newPrettyLogger builds a zap logger with a human-friendly colored encoder.
// Intended for local development; production deployments use the JSON encoding.
func newPrettyLogger(cfg *zap.Config) *zap.Logger {
	encoder := &prettyEncoder{
		Encoder: zapcore.NewJSONEncoder(cfg.EncoderConfig),
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), cfg.Level)
	return zap.New(core)
}

// prettyEncoder renders entries as "time LEVEL logger msg {fields}" with
// level-dependent coloring. Structured fields are appended as indented JSON.
type prettyEncoder struct {
	zapcore.Encoder
}

func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone()}
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	// Reuse the embedded JSON encoder to collect structured fields.
	jsonBuf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer jsonBuf.Free()

	line := pool.Get()

	line.AppendString(color.HiBlackString(entry.Time.Format(time.TimeOnly)))
	line.AppendByte(' ')
	line.AppendString(levelColor(entry.Level).Sprintf("%-5s", entry.Level.CapitalString()))
	line.AppendByte(' ')

	if entry.LoggerName != "" {
		line.AppendString(color.CyanString(entry.LoggerName))
		line.AppendByte(' ')
	}

	line.AppendString(entry.Message)

	if ctx := prettyFields(jsonBuf.Bytes()); ctx != "" {
		line.AppendByte(' ')
		line.AppendString(color.HiBlackString(ctx))
	}

	line.AppendByte('\n')
	return line, nil
}

// prettyFields strips the standard entry keys from the JSON representation
// and pretty-prints whatever structured context remains.
func prettyFields(raw []byte) string {
	var all map[string]any
	if err := json.Unmarshal(raw, &all); err != nil {
		return ""
	}

	for _, k := range []string{messageKey, levelKey, nameKey, timeKey} {
		delete(all, k)
	}
	if len(all) == 0 {
		return ""
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for _, k := range keys {
		v, err := json.Marshal(all[k])
		if err != nil {
			continue
		}
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%s=%s", k, v)
	}
	return out
}

func levelColor(l zapcore.Level) *color.Color {
	switch l {
	case zapcore.DebugLevel:
		return color.New(color.FgMagenta)
	case zapcore.InfoLevel:
		return color.New(color.FgBlue)
	case zapcore.WarnLevel:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

//nolint:gochecknoglobals // zap buffer pool is intended to be shared
var pool = buffer.NewPool()
