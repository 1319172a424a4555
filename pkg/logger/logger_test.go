package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NivelConfigurable(t *testing.T) {
	casos := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verboso": zerolog.InfoLevel,
	}
	for in, want := range casos {
		l := New(Config{Env: "production", Level: in, Out: &bytes.Buffer{}})
		assert.Equal(t, want, l.Zerolog().GetLevel(), "nivel %q", in)
	}
}

func TestNew_CampoApp(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{App: "autogest-api", Env: "production", Level: "info", Out: &buf})

	l.Info().Str("evento", "arranque").Msg("listo")

	var linea map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &linea))
	assert.Equal(t, "autogest-api", linea["app"])
	assert.Equal(t, "arranque", linea["evento"])
}
