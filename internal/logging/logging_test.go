package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevel(t *testing.T) {
	t.Setenv(LogFileEnv, "")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	require.NoError(t, Init(false, ""))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	require.NoError(t, Init(true, ""))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestInitWritesLogFile(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	logFile := filepath.Join(t.TempDir(), "nested", "pdqstats.log")

	require.NoError(t, Init(false, logFile))
	log.Info().Str("command", "districts").Msg("hello from test")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"command":"districts"`)
}

func TestInitLogFileFromEnv(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	logFile := filepath.Join(t.TempDir(), "env.log")
	t.Setenv(LogFileEnv, logFile)

	require.NoError(t, Init(false, ""))
	log.Warn().Msg("from env")

	_, err := os.Stat(logFile)
	assert.NoError(t, err)
}
