package logger

import (
	"encoding/json"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// prettyEncoder writes console lines with a colored level and all fields,
// context fields included, as indented JSON below the line.
// The embedded JSON encoder is the only field sink; the console encoder
// renders the bare entry line.
type prettyEncoder struct {
	zapcore.Encoder
	console zapcore.Encoder
	pool    buffer.Pool
}

func newPrettyEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &prettyEncoder{
		Encoder: zapcore.NewJSONEncoder(cfg),
		console: zapcore.NewConsoleEncoder(cfg),
		pool:    buffer.NewPool(),
	}
}

// Clone keeps derived loggers on the pretty encoder.
func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{
		Encoder: e.Encoder.Clone(),
		console: e.console,
		pool:    e.pool,
	}
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	lineBuf, err := e.console.EncodeEntry(entry, nil)
	if err != nil {
		return nil, err
	}
	line := colorizeLevel(strings.TrimRight(lineBuf.String(), "\n"), entry.Level)
	lineBuf.Free()

	fieldBuf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer fieldBuf.Free()

	var fieldsMap map[string]any
	if json.Unmarshal(fieldBuf.Bytes(), &fieldsMap) == nil {
		for _, k := range []string{messageKey, levelKey, timeKey, nameKey} {
			delete(fieldsMap, k)
		}
		if len(fieldsMap) > 0 {
			if pretty, marshalErr := json.MarshalIndent(fieldsMap, "", "  "); marshalErr == nil {
				line += "\n" + string(pretty)
			}
		}
	}

	buf := e.pool.Get()
	buf.AppendString(line)
	buf.AppendString("\n")
	return buf, nil
}

func colorizeLevel(line string, level zapcore.Level) string {
	var c *color.Color

	switch level {
	case zapcore.DebugLevel:
		c = color.New(color.FgCyan)
	case zapcore.InfoLevel:
		c = color.New(color.FgGreen)
	case zapcore.WarnLevel:
		c = color.New(color.FgYellow)
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		c = color.New(color.FgRed, color.Bold)
	default:
		return line
	}

	lvl := level.CapitalString()
	return strings.Replace(line, lvl, c.Sprint(lvl), 1)
}
