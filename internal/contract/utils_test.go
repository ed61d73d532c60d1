package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name   string
		bucket int
		label  string
	}{
		{"lowest bucket", 0, schema.ScaleLabels[0]},
		{"middle bucket", 2, schema.ScaleLabels[2]},
		{"highest bucket", 4, schema.ScaleLabels[4]},
		{"negative bucket", -1, "?"},
		{"bucket past the end", schema.BucketCount, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.bucket, tt.label)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestGetTrendLabel(t *testing.T) {
	for _, trend := range []schema.TrendDirection{schema.IncreasingTrend, schema.DecreasingTrend, schema.StableTrend} {
		t.Run(string(trend), func(t *testing.T) {
			assert.Contains(t, GetTrendLabel(trend), string(trend))
		})
	}
}

func TestGetChangeLabel(t *testing.T) {
	assert.Contains(t, GetChangeLabel(12.345, 1), "+12.3%")
	assert.Contains(t, GetChangeLabel(-5, 2), "-5.00%")
	assert.Equal(t, "+0.0%", GetChangeLabel(0, 1))
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	cachePath := GetCacheDBFilePath()
	assert.Contains(t, cachePath, ".pdqstats_cache.db")
	assert.True(t, strings.HasPrefix(cachePath, homeDir), "path %s should start with home dir %s", cachePath, homeDir)

	analysisPath := GetAnalysisDBFilePath()
	assert.Contains(t, analysisPath, ".pdqstats_analysis.db")
	assert.NotEqual(t, cachePath, analysisPath)
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"short text", "Méfait", 20, "Méfait"},
		{"exact width", "Méfait", 6, "Méfait"},
		{"truncated", "Vol dans / sur véhicule à moteur", 12, "Vol dans ..."},
		{"width too small", "Introduction", 3, "Introduction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input     string
		expected  bool
		expectErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "no", "1", "0", "", "Yes ", "tRuE"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		got, err := ParseBoolString(s)
		if err != nil {
			assert.False(t, got)
		}
	})
}
