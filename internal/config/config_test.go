package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
[server]
http_port = 8080
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 10

[database]
host = "localhost"
port = 5432
user = "booking"
password = "booking"
dbname = "booking_service"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = 300

[logs]
file = "logs/app.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "aom-booking-service"

[org_service]
url = "http://localhost:8081"
timeout = 5

[conflicts]
log_on_reject = true
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "http://localhost:8081", cfg.OrgService.URL)
	assert.True(t, cfg.Conflicts.LogOnReject)
}

func TestLoad_DSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=booking password=booking dbname=booking_service sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("no-such-config.toml")
	require.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name: "missing http port",
			config: `
[database]
host = "localhost"
dbname = "booking_service"
[org_service]
url = "http://localhost:8081"
`,
		},
		{
			name: "missing database host",
			config: `
[server]
http_port = 8080
[database]
dbname = "booking_service"
[org_service]
url = "http://localhost:8081"
`,
		},
		{
			name: "missing org service url",
			config: `
[server]
http_port = 8080
[database]
host = "localhost"
dbname = "booking_service"
`,
		},
		{
			name: "metrics enabled without path",
			config: `
[server]
http_port = 8080
[database]
host = "localhost"
dbname = "booking_service"
[org_service]
url = "http://localhost:8081"
[metrics]
enabled = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.config))
			require.Error(t, err)
		})
	}
}
