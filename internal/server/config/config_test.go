package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":3000", c.EndpointAddr)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 24*time.Hour, c.TokenValidity)
	assert.Equal(t, "admin@tradeboard.local", c.AdminEmail)
	assert.Empty(t, c.ModeratorEmail)
	assert.Empty(t, c.DatabaseDSN)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		check       func(t *testing.T, c *Config)
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-d", "postgres://tb@localhost/tb", "-s", "secret", "-t", "5"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "127.0.0.1:9090", c.EndpointAddr)
				assert.Equal(t, "postgres://tb@localhost/tb", c.DatabaseDSN)
				assert.Equal(t, "secret", c.SecretKey)
				assert.Equal(t, 5*time.Minute, c.TokenValidity)
			},
		},
		{name: "bad validity", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			c := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(c) })
				return
			}
			require.NotPanics(t, func() { parseFlags(c) })
			tt.check(t, c)
		})
	}
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "server.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"endpoint_addr":":8080","database_dsn":"postgres://db","token_validity":"2h","moderator_email":"mod@x.io","rate_limit_rps":5}`), 0o600))
	yamlPath := filepath.Join(dir, "server.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("endpoint_addr: \":8080\"\ndatabase_dsn: postgres://db\ntoken_validity: 2h\nmoderator_email: mod@x.io\nrate_limit_rps: 5\n"), 0o600))

	for _, path := range []string{jsonPath, yamlPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			os.Args = []string{"testbin", "-c", path}
			c := defaults()
			parseFile(c)

			want := defaults()
			want.EndpointAddr = ":8080"
			want.DatabaseDSN = "postgres://db"
			want.TokenValidity = 2 * time.Hour
			want.ModeratorEmail = "mod@x.io"
			want.RateLimitRPS = 5
			assert.Empty(t, cmp.Diff(want, c))
		})
	}

	t.Run("invalid file panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"testbin", "-config", bad}
		require.Panics(t, func() { parseFile(defaults()) })
	})
}
