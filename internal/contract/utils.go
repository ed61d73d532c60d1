package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/rs/zerolog/log"
)

// Color variables for console output, one per severity bucket.
var (
	VeryLowColor  = color.New(color.FgGreen)
	LowColor      = color.New(color.FgHiGreen)
	MediumColor   = color.New(color.FgYellow)
	HighColor     = color.New(color.FgHiRed)
	VeryHighColor = color.New(color.FgRed, color.Bold)
)

var bucketColors = [schema.BucketCount]*color.Color{VeryLowColor, LowColor, MediumColor, HighColor, VeryHighColor}

// GetColorLabel returns a colored severity label for console output (table).
// Out of range buckets are returned uncolored.
func GetColorLabel(bucket int, label string) string {
	if bucket < 0 || bucket >= schema.BucketCount {
		return label
	}
	return bucketColors[bucket].Sprint(label)
}

// GetTrendLabel returns a colored trend direction for console output.
// Increases are drawn in red since more crime is the bad direction.
func GetTrendLabel(trend schema.TrendDirection) string {
	switch trend {
	case schema.IncreasingTrend:
		return HighColor.Sprint(string(trend))
	case schema.DecreasingTrend:
		return VeryLowColor.Sprint(string(trend))
	default:
		return string(trend)
	}
}

// GetChangeLabel returns a signed, colored percent change for console output.
func GetChangeLabel(percent float64, precision int) string {
	text := fmt.Sprintf("%+.*f%%", precision, percent)
	switch {
	case percent > 0:
		return HighColor.Sprint(text)
	case percent < 0:
		return VeryLowColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	log.Fatal().Err(err).Msg(msg)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	log.Warn().Err(err).Msg(msg)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pdqstats_cache.db"
	}
	return filepath.Join(homeDir, ".pdqstats_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pdqstats_analysis.db"
	}
	return filepath.Join(homeDir, ".pdqstats_analysis.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
