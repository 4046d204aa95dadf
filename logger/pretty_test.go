package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestPrettyEncoder_ContextAndEntryFieldsShareOneBlock(t *testing.T) {
	cfg, err := Config{Level: "debug", Encoding: EncodingPretty}.getZapConfig()
	require.NoError(t, err)

	enc := newPrettyEncoder(cfg.EncoderConfig)
	enc.AddString("code", "greet")

	derived := enc.Clone()
	derived.AddString("trace_id", "abc")

	buf, err := derived.EncodeEntry(zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Message: "invocation completed",
	}, []zapcore.Field{zap.String("execution_time", "1ms")})
	require.NoError(t, err)

	out := buf.String()
	line, block, found := strings.Cut(out, "\n")
	require.True(t, found)

	assert.Contains(t, line, "invocation completed")
	assert.NotContains(t, line, "greet")
	assert.NotContains(t, line, "abc")

	assert.Contains(t, block, `"code": "greet"`)
	assert.Contains(t, block, `"trace_id": "abc"`)
	assert.Contains(t, block, `"execution_time": "1ms"`)
	assert.NotContains(t, block, `"msg"`)

	// the parent encoder is not affected by fields added to a clone
	buf, err = enc.EncodeEntry(zapcore.Entry{Level: zapcore.InfoLevel, Message: "other"}, nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "trace_id")
	assert.Contains(t, buf.String(), `"code": "greet"`)
}
