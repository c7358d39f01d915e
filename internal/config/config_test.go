package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[server]
http_port = 9090

[database]
host = "db"
user = "workshop"
password = "file-secret"
dbname = "workshop"

[logs]
level = "debug"

[auth]
jwt_secret = "from-file"

[whatsapp]
workshop_phone = "081234567890"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileValuesAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, "62", cfg.WhatsApp.CountryCode)
	assert.Equal(t, "0 9 * * *", cfg.Scheduler.RemindersSpec)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("DB_PASSWORD", "env-secret")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load(writeConfig(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Database.Password)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
}

func TestLoad_BadEnvInteger(t *testing.T) {
	t.Setenv("DB_PORT", "five")

	_, err := Load(writeConfig(t, sampleTOML))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaults()
		cfg.Database.DBName = "workshop"
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 70000 }},
		{"no db name", func(c *Config) { c.Database.DBName = "" }},
		{"twilio without credentials", func(c *Config) { c.Twilio.Enabled = true }},
		{"unknown timezone", func(c *Config) { c.Workshop.Timezone = "Mars/Olympus" }},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTLHours = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", d.DSN())
}
