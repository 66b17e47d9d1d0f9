package deckvault

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	raw := `
[log]
level = "DEBUG"
format = "text"
add_source = true

[db]
host = "db.internal"
port = 5433
user = "vault"
password = "secret"
database = "deckvault"
pool_size = 20

[web]
host = "127.0.0.1"
port = 9090
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.True(t, cfg.Log.AddSource)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, "vault", cfg.DB.User)
	assert.Equal(t, 20, cfg.DB.PoolSize)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 9090, cfg.Web.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

// Levels decode through slog.Level.UnmarshalText, so they must be names
// ("DEBUG", "INFO", ...), not numbers.
func TestLoadConfigNumericLevelRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = 0\n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[db\nhost ="), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
