package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewZapLogger_Levels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     Config
		enabled zapcore.Level
		off     zapcore.Level
	}{
		{"development default is debug", Config{Development: true}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"development warn", Config{Development: true, Level: "warn"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"production default is info", Config{}, zapcore.InfoLevel, zapcore.DebugLevel},
		{"production error", Config{Level: "error"}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			log, err := NewZapLogger(tc.cfg, nil)
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.True(t, log.Core().Enabled(tc.enabled))
			assert.False(t, log.Core().Enabled(tc.off))
		})
	}
}

func TestNewZapLogger_Writer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"production writes json", Config{}, `"msg":"cart wired"`},
		{"development writes console", Config{Development: true}, "cart wired"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log, err := NewZapLogger(tc.cfg, &buf)
			require.NoError(t, err)
			log.Info("cart wired", zap.Int("products", 2))
			log.Debug("hidden in production")
			require.NoError(t, log.Sync())

			assert.Contains(t, buf.String(), tc.want)
			assert.Contains(t, buf.String(), "products")
			assert.Equal(t, tc.cfg.Development, strings.Contains(buf.String(), "hidden in production"))
		})
	}
}

func TestParseLevel_UnknownFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.WarnLevel, parseLevel("verbose", zapcore.WarnLevel))
	assert.Equal(t, zapcore.FatalLevel, parseLevel("fatal", zapcore.InfoLevel))
}

func TestNewEventLogger(t *testing.T) {
	t.Parallel()

	log := zap.NewNop()
	ev := NewEventLogger(log)
	zl, ok := ev.(*fxevent.ZapLogger)
	require.True(t, ok)
	assert.Same(t, log, zl.Logger)
}

func TestOrNop(t *testing.T) {
	t.Parallel()

	require.NotNil(t, OrNop(nil))
	log := zap.NewExample()
	assert.Same(t, log, OrNop(log))
}
