// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileEnv names the environment variable that enables the rotating log file.
const LogFileEnv = "PDQSTATS_LOG_FILE"

// LoadEnv loads .env from the working directory and from the binary directory.
// Variables already set in the environment win. Missing files are ignored.
func LoadEnv() {
	_ = godotenv.Load(".env")
	if exePath, err := os.Executable(); err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}
}

// Init initializes the global logger. Logs always go to stderr; stdout is reserved
// for results and the MCP protocol. When logFile (or PDQSTATS_LOG_FILE) is set,
// logs are also written to a rotating file.
func Init(verbose bool, logFile string) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	if logFile == "" {
		logFile = os.Getenv(LogFileEnv)
	}
	if logFile == "" {
		log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()
		return nil
	}

	fileWriter, err := newFileWriter(logFile)
	if err != nil {
		return err
	}
	multi := zerolog.MultiLevelWriter(io.Writer(consoleWriter), fileWriter)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
	return nil
}

// newFileWriter returns a rotating writer for logFile, creating its directory.
func newFileWriter(logFile string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory for %q: %w", logFile, err)
	}
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    16, // megabytes
		MaxBackups: 8,
		MaxAge:     90, // days
		Compress:   true,
	}, nil
}
