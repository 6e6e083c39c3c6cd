package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/sidetrack/internal/config"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty env file so a stray .env cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SIDETRACK_ENV_FILE", filepath.Join(dir, "missing.env"))
	for _, key := range []string{
		"SIDETRACK_CONFIG_PATH", "SIDETRACK_SERVER_HOST", "SIDETRACK_SERVER_PORT",
		"SIDETRACK_DB_PATH", "SIDETRACK_LOG_LEVEL", "SIDETRACK_LOG_PATH",
		"SIDETRACK_LOG_MAX_SIZE_MB", "SIDETRACK_TRANSPORT", "SIDETRACK_STORE_KEY",
		"SIDETRACK_EXPORT_DIR",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sidetrack.db", cfg.DB.Path)
	require.Equal(t, config.TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, "dashboard_projects", cfg.Store.Key)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "sidetrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
db:
  path: /tmp/from-file.db
log:
  level: debug
transport:
  mode: STDIO
`), 0o644))

	t.Setenv("SIDETRACK_CONFIG_PATH", path)
	t.Setenv("SIDETRACK_DB_PATH", "/tmp/from-env.db")
	t.Setenv("SIDETRACK_LOG_MAX_SIZE_MB", " 25 ")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 25, cfg.Log.MaxSizeMB)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/from-env.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, config.TransportStdio, cfg.Transport.Mode)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("SIDETRACK_STORE_KEY_FROM_FILE=x\n"), 0o644))
	t.Setenv("SIDETRACK_ENV_FILE", envPath)

	_, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "x", os.Getenv("SIDETRACK_STORE_KEY_FROM_FILE"))
	os.Unsetenv("SIDETRACK_STORE_KEY_FROM_FILE")
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	t.Setenv("SIDETRACK_SERVER_PORT", "eighty")
	_, err := config.Load()
	require.ErrorContains(t, err, "SIDETRACK_SERVER_PORT")

	t.Setenv("SIDETRACK_SERVER_PORT", "")
	t.Setenv("SIDETRACK_TRANSPORT", "carrier-pigeon")
	_, err = config.Load()
	require.ErrorContains(t, err, "invalid transport mode")

	t.Setenv("SIDETRACK_TRANSPORT", "")
	t.Setenv("SIDETRACK_CONFIG_PATH", "/does/not/exist.yaml")
	_, err = config.Load()
	require.ErrorContains(t, err, "read config file")
}
