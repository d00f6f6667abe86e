package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8080

[controller]
url = "http://controller:8052"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "./logs/app.log", cfg.Logs.File)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "orgnotifications", cfg.Metrics.ServiceName)
	assert.Equal(t, 10*time.Second, cfg.Controller.TimeoutDuration())
	assert.Equal(t, time.Minute, cfg.Views.RefreshDuration())
	assert.Equal(t, 5*time.Minute, cfg.Views.EvictDuration())
	assert.Equal(t, 30*time.Minute, cfg.Views.TTLDuration())
	assert.False(t, cfg.Audit.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8080

[controller]
url = "http://controller:8052"
token = "from-file"
`)

	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CONTROLLER_TOKEN", "from-env")
	t.Setenv("VIEWS_REFRESH_INTERVAL", "5")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("CONTROLLER_TIMEOUT", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Controller.Token)
	assert.Equal(t, 5, cfg.Views.RefreshInterval)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 10, cfg.Controller.Timeout)
}

func TestLoad_Audit(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8080

[controller]
url = "http://controller:8052"

[audit]
enabled = true
host = "localhost"
port = 5432
user = "postgres"
password = "secret"
dbname = "orgnotifications"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "disable", cfg.Audit.SSLMode)
	assert.Equal(t, 10, cfg.Audit.MaxOpenConns)
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=orgnotifications sslmode=disable",
		cfg.Audit.DSN(),
	)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing port",
			content: "[controller]\nurl = \"http://controller\"\n",
		},
		{
			name:    "missing controller url",
			content: "[server]\nhttp_port = 8080\n",
		},
		{
			name:    "audit without host",
			content: "[server]\nhttp_port = 8080\n[controller]\nurl = \"http://c\"\n[audit]\nenabled = true\nport = 5432\n",
		},
		{
			name:    "negative ttl",
			content: "[server]\nhttp_port = 8080\n[controller]\nurl = \"http://c\"\n[views]\nview_ttl = -1\n",
		},
		{
			name:    "malformed toml",
			content: "[server\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
