package buddysim

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	assert.Equal(t, Config{
		Capacity: 0,
		LogLevel: "info",
		Color:    true,
	}, DefaultConfig())
}

func TestLoadConfig(t *testing.T) {
	table := []struct {
		name     string
		content  string
		expected Config
		wantErr  string
	}{
		{
			name:     "full",
			content:  "capacity = 1024\nlog_level = \"debug\"\ncolor = false\n",
			expected: Config{Capacity: 1024, LogLevel: "debug", Color: false},
		},
		{
			name:     "partial",
			content:  "capacity = 64\n",
			expected: Config{Capacity: 64, LogLevel: "info", Color: true},
		},
		{
			name:    "unknown-key",
			content: "capacity = 64\nsize = 3\n",
			wantErr: "unknown keys size",
		},
		{
			name:    "invalid",
			content: "capacity = \n",
			wantErr: "load config",
		},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			path := writeFile(t, "buddysim.toml", e.content)
			conf, err := LoadConfig(path)
			if e.wantErr != "" {
				assert.ErrorContains(t, err, e.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, e.expected, conf)
		})
	}
}

func TestLoadConfig_Missing_File(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := Config{LogLevel: "debug"}.NewLogger(&buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Debug("hello")
	assert.Contains(t, buf.String(), "hello")

	_, err = Config{LogLevel: "loud"}.NewLogger(&buf)
	assert.ErrorContains(t, err, "log level")
}

func TestConfig_NewAllocator(t *testing.T) {
	a, err := Config{Capacity: 32}.NewAllocator(nil)
	require.NoError(t, err)
	assert.Equal(t, 32, a.Capacity())

	_, err = Config{Capacity: 48}.NewAllocator(nil)
	assert.Error(t, err)
}

func TestResolveConfig(t *testing.T) {
	path := writeFile(t, "buddysim.toml", "capacity = 64\nlog_level = \"debug\"\ncolor = true\n")
	capacity := 128
	level := "warn"

	table := []struct {
		name      string
		path      string
		overrides Overrides
		expected  Config
	}{
		{
			name:     "no-file",
			expected: DefaultConfig(),
		},
		{
			name:     "file-only",
			path:     path,
			expected: Config{Capacity: 64, LogLevel: "debug", Color: true},
		},
		{
			name:      "flags-beat-file",
			path:      path,
			overrides: Overrides{Capacity: &capacity, LogLevel: &level},
			expected:  Config{Capacity: 128, LogLevel: "warn", Color: true},
		},
		{
			name:      "no-color-beats-file",
			path:      path,
			overrides: Overrides{NoColor: true},
			expected:  Config{Capacity: 64, LogLevel: "debug", Color: false},
		},
		{
			name:      "flags-without-file",
			overrides: Overrides{Capacity: &capacity, NoColor: true},
			expected:  Config{Capacity: 128, LogLevel: "info", Color: false},
		},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			conf, err := ResolveConfig(e.path, e.overrides)
			require.NoError(t, err)
			assert.Equal(t, e.expected, conf)
		})
	}
}

func TestResolveConfig_Bad_File(t *testing.T) {
	_, err := ResolveConfig(filepath.Join(t.TempDir(), "missing.toml"), Overrides{})
	assert.ErrorContains(t, err, "load config")
}
