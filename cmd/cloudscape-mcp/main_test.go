package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cloudscape-mcp/internal/config"
	"github.com/dshills/cloudscape-mcp/internal/searcher"
	"github.com/dshills/cloudscape-mcp/internal/storage"
	"github.com/dshills/cloudscape-mcp/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: dev")
	assert.Contains(t, out, "SQLite Driver: "+storage.DriverName)
	assert.Contains(t, out, "Build Mode: "+storage.BuildMode)
}

func TestSearchCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "search", "button", "--json", "-n", "3")
		require.NoError(t, err)

		var results searcher.SearchResults
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.NotEmpty(t, results.Results)
		assert.Equal(t, "button", results.Results[0].ID)
		assert.LessOrEqual(t, len(results.Results), 3)
		assert.Equal(t, 3, results.Limit)
	})

	t.Run("table", func(t *testing.T) {
		out, err := execute(t, "search", "--category", "layout", "--sort-by", "name", "--order", "asc")
		require.NoError(t, err)
		assert.Contains(t, out, "ID")
		assert.Contains(t, out, "app-layout")
		assert.Contains(t, out, "results")
	})

	t.Run("no match", func(t *testing.T) {
		out, err := execute(t, "search", "zzzzqqq")
		require.NoError(t, err)
		assert.Contains(t, out, "No components found.")
	})

	t.Run("bad order", func(t *testing.T) {
		_, err := execute(t, "search", "button", "--order", "sideways")
		assert.Error(t, err)
	})
}

func TestDocsCommand(t *testing.T) {
	out, err := execute(t, "docs", "button")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Button"), out)
	assert.Contains(t, out, "## Accessibility")

	_, err = execute(t, "docs", "Not_An_ID")
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = execute(t, "docs", "nope")
	assert.ErrorIs(t, err, types.ErrComponentNotFound)
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	_, err := execute(t, "serve", "--transport", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.transport")

	_, err = execute(t, "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 4000
  bind: 127.0.0.1
cache:
  max_size: 50
`), 0o600))

	env := map[string]string{
		"PORT":           "4500",
		"TRANSPORT_TYPE": config.TransportSSE,
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	tests := []struct {
		name      string
		flags     []string
		wantPort  int
		wantBind  string
		wantTrans string
	}{
		{name: "env over file", wantPort: 4500, wantBind: "127.0.0.1", wantTrans: config.TransportSSE},
		{name: "flags over env", flags: []string{"-p", "5000", "-t", "stdio"}, wantPort: 5000,
			wantBind: "127.0.0.1", wantTrans: config.TransportStdio},
		{name: "bind flag", flags: []string{"--bind", "0.0.0.0"}, wantPort: 4500,
			wantBind: "0.0.0.0", wantTrans: config.TransportSSE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &options{configPath: path}
			cmd := newServeCmd(opts)
			require.NoError(t, cmd.ParseFlags(tt.flags))

			cfg, err := loadConfig(cmd, opts, lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.Server.Port)
			assert.Equal(t, tt.wantBind, cfg.Server.Bind)
			assert.Equal(t, tt.wantTrans, cfg.Server.Transport)
			assert.Equal(t, 50, cfg.Cache.MaxSize)
			assert.Equal(t, int64(config.DefaultCacheTTLMs), cfg.Cache.TTLMillis)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	opts := &options{configPath: filepath.Join(t.TempDir(), "missing.yml")}
	_, err := loadConfig(newServeCmd(opts), opts, func(string) (string, bool) { return "", false })
	assert.Error(t, err)
}

func TestAdvertisedURL(t *testing.T) {
	tests := []struct {
		bind string
		want string
	}{
		{"0.0.0.0", "http://localhost:3001"},
		{"", "http://localhost:3001"},
		{"127.0.0.1", "http://127.0.0.1:3001"},
		{"::1", "http://[::1]:3001"},
	}
	for _, tt := range tests {
		t.Run(tt.bind, func(t *testing.T) {
			cfg := config.Default()
			cfg.Server.Bind = tt.bind
			assert.Equal(t, tt.want, advertisedURL(cfg))
		})
	}
}
