package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/local-forecast/pkg/logger"
)

func TestNewLogger_Levels(t *testing.T) {
	l, err := logger.NewLogger("", "logger_test", "warn")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	l, err = logger.NewLogger("", "logger_test", "nonsense")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
}

func TestNewFileLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "http.log")

	l, err := logger.NewFileLogger(path)
	require.NoError(t, err)

	l.Info("HTTP request completed")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"HTTP request completed"`)
}

func TestNewFileLogger_EmptyPathIsNop(t *testing.T) {
	l, err := logger.NewFileLogger("")
	require.NoError(t, err)
	assert.NotNil(t, l)
}
