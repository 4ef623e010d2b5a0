package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/go-post-generator/internal/config"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseArgs(t *testing.T) {
	t.Run("no env, no config", func(t *testing.T) {
		opts, err := config.ParseArgs(nil, env(nil))
		require.NoError(t, err)

		assert.Equal(t, ":3000", opts.Address)
		assert.Equal(t, "", opts.CORSOrigin)
		assert.Equal(t, "files", opts.StaticDir)
		assert.Equal(t, "", opts.DatabaseDSN)
		assert.Equal(t, "", opts.GRPCAddress)
		assert.False(t, opts.EnablePprof)
		assert.False(t, opts.EnableHTTPS)
		assert.Equal(t, "info", opts.LogLevel)
		assert.Equal(t, "gemini", opts.Provider)
		assert.InDelta(t, 0.9, opts.Temperature, 1e-9)
		assert.Equal(t, []string{"/docs/api/"}, opts.ExcludeDirs)
		assert.Equal(t, 130, opts.WrapWidth)
		assert.False(t, opts.TypedErrors)
		assert.Zero(t, opts.RequestTimeout)
		assert.Equal(t, "", opts.Config)
	})

	t.Run("flags", func(t *testing.T) {
		opts, err := config.ParseArgs([]string{
			"-a", "127.0.0.1:9999",
			"-o", "http://localhost:5173",
			"-provider", "openai",
			"-m", "gpt-4o",
			"-t", "0.2",
			"-x", "/docs/api/, /private/",
			"-w", "80",
			"-e",
			"-timeout", "45s",
			"-hosts", "post.example,www.post.example",
		}, env(nil))
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:9999", opts.Address)
		assert.Equal(t, "http://localhost:5173", opts.CORSOrigin)
		assert.Equal(t, "openai", opts.Provider)
		assert.Equal(t, "gpt-4o", opts.Model)
		assert.InDelta(t, 0.2, opts.Temperature, 1e-9)
		assert.Equal(t, []string{"/docs/api/", "/private/"}, opts.ExcludeDirs)
		assert.Equal(t, 80, opts.WrapWidth)
		assert.True(t, opts.TypedErrors)
		assert.Equal(t, 45*time.Second, opts.RequestTimeout)
		assert.Equal(t, []string{"post.example", "www.post.example"}, opts.TLSHosts)
	})

	t.Run("env overrides flags", func(t *testing.T) {
		opts, err := config.ParseArgs([]string{"-a", ":1111", "-l", "debug"}, env(map[string]string{
			"SERVER_ADDRESS":  "127.0.0.1:9999",
			"DATABASE_URL":    "postgres://url",
			"ENABLE_HTTPS":    "true",
			"TYPED_ERRORS":    "1",
			"LLM_TEMPERATURE": "0.5",
			"EXCLUDE_DIRS":    "/a/,/b/",
			"REQUEST_TIMEOUT": "2m",
			"OPENAI_API_KEY":  "sk-test",
			"LLM_PROVIDER":    "openai",
			"TLS_HOSTS":       "a.example",
		}))
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:9999", opts.Address)
		assert.Equal(t, "debug", opts.LogLevel)
		assert.Equal(t, "postgres://url", opts.DatabaseDSN)
		assert.True(t, opts.EnableHTTPS)
		assert.True(t, opts.TypedErrors)
		assert.InDelta(t, 0.5, opts.Temperature, 1e-9)
		assert.Equal(t, []string{"/a/", "/b/"}, opts.ExcludeDirs)
		assert.Equal(t, 2*time.Minute, opts.RequestTimeout)
		assert.Equal(t, "sk-test", opts.APIKey())
		assert.Equal(t, []string{"a.example"}, opts.TLSHosts)
	})

	t.Run("port shorthand", func(t *testing.T) {
		opts, err := config.ParseArgs(nil, env(map[string]string{"PORT": "8081"}))
		require.NoError(t, err)
		assert.Equal(t, ":8081", opts.Address)
	})

	t.Run("dsn wins over database url", func(t *testing.T) {
		opts, err := config.ParseArgs(nil, env(map[string]string{
			"DATABASE_DSN": "postgres://dsn",
			"DATABASE_URL": "postgres://url",
		}))
		require.NoError(t, err)
		assert.Equal(t, "postgres://dsn", opts.DatabaseDSN)
	})

	t.Run("yaml config file", func(t *testing.T) {
		path := writeFile(t, "cfg.yaml", `
server_address: 10.0.0.1:8081
cors_origin: https://app.example
database_dsn: postgres://test
enable_pprof: true
llm_provider: openai
llm_temperature: 0.3
exclude_dirs: ["/internal/"]
request_timeout: 30s
`)

		opts, err := config.ParseArgs([]string{"-c", path}, env(map[string]string{"GOOGLE_API_KEY": "g-key"}))
		require.NoError(t, err)

		assert.Equal(t, "10.0.0.1:8081", opts.Address)
		assert.Equal(t, "https://app.example", opts.CORSOrigin)
		assert.Equal(t, "postgres://test", opts.DatabaseDSN)
		assert.True(t, opts.EnablePprof)
		assert.Equal(t, "openai", opts.Provider)
		assert.InDelta(t, 0.3, opts.Temperature, 1e-9)
		assert.Equal(t, []string{"/internal/"}, opts.ExcludeDirs)
		assert.Equal(t, 30*time.Second, opts.RequestTimeout)
		assert.Equal(t, "files", opts.StaticDir)
		assert.Equal(t, path, opts.Config)
		assert.Equal(t, "", opts.APIKey())
	})

	t.Run("json config file from env, flags win", func(t *testing.T) {
		path := writeFile(t, "cfg.json", `{"server_address": ":7000", "wrap_width": 100, "typed_errors": true}`)

		opts, err := config.ParseArgs([]string{"-w", "90"}, env(map[string]string{"CONFIG": path}))
		require.NoError(t, err)

		assert.Equal(t, ":7000", opts.Address)
		assert.Equal(t, 90, opts.WrapWidth)
		assert.True(t, opts.TypedErrors)
		assert.Equal(t, path, opts.Config)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := config.ParseArgs([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}, env(nil))
		assert.Error(t, err)

		_, err = config.ParseArgs([]string{"-unknown"}, env(nil))
		assert.Error(t, err)

		_, err = config.ParseArgs(nil, env(map[string]string{"TYPED_ERRORS": "maybe"}))
		assert.ErrorContains(t, err, "TYPED_ERRORS")

		_, err = config.ParseArgs(nil, env(map[string]string{"WRAP_WIDTH": "wide"}))
		assert.ErrorContains(t, err, "WRAP_WIDTH")

		bad := writeFile(t, "bad.yaml", "server_address: [unclosed")
		_, err = config.ParseArgs([]string{"-c", bad}, env(nil))
		assert.ErrorContains(t, err, "parse config")
	})
}
