package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "local", cfg.Upload.Backend)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "tuneful.yaml")
	yml := `
server:
  addr: ":9000"
db:
  driver: sqlite
  name: tuneful.db
upload:
  dir: /srv/uploads
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("TUNEFUL_SERVER_ADDR", ":9100")
	t.Setenv("TUNEFUL_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Addr, "env overrides file")
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "tuneful.db", cfg.DB.Name)
	assert.Equal(t, "/srv/uploads", cfg.Upload.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 100, cfg.Log.MaxSize, "untouched defaults survive")
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "oracle" }, wantErr: true},
		{name: "sqlite without host", mutate: func(c *Config) {
			c.DB.Driver = "sqlite"
			c.DB.Host = ""
			c.DB.Port = ""
		}},
		{name: "postgres without host", mutate: func(c *Config) {
			c.DB.Driver = "postgres"
			c.DB.Host = ""
		}, wantErr: true},
		{name: "local backend without dir", mutate: func(c *Config) { c.Upload.Dir = "" }, wantErr: true},
		{name: "minio without endpoint", mutate: func(c *Config) { c.Upload.Backend = "minio" }, wantErr: true},
		{name: "minio configured", mutate: func(c *Config) {
			c.Upload.Backend = "minio"
			c.Minio.Endpoint = "localhost:9000"
		}},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
