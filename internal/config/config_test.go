package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "no language or base url", mutate: func(c *Config) { c.Wikipedia.Language = "" }, wantErr: true},
		{name: "base url only", mutate: func(c *Config) {
			c.Wikipedia.Language = ""
			c.Wikipedia.BaseURL = "http://localhost/w/api.php"
		}},
		{name: "missing user agent", mutate: func(c *Config) { c.Wikipedia.UserAgent = "" }, wantErr: true},
		{name: "negative results", mutate: func(c *Config) { c.Wikipedia.MaxResults = -1 }, wantErr: true},
		{name: "negative continuations", mutate: func(c *Config) { c.Wikipedia.MaxContinuations = -2 }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := Config{Wikipedia: WikipediaConfig{Language: "de", UserAgent: "test"}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Wikipedia.MaxResults)
	assert.Equal(t, 5, cfg.Wikipedia.MaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.Wikipedia.Timeout)
	assert.Equal(t, time.Second, cfg.Wikipedia.MinBackoff)
	assert.Equal(t, time.Second, cfg.Wikipedia.MaxBackoff)
	assert.Equal(t, 1, cfg.Batch.Workers)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
wikipedia:
  language: fr
  max_results: 8
  timeout: 3s
  max_continuations: 4
resolver:
  min_notability_score: 3.5
  unambiguous_threshold: 7
logging:
  level: debug
batch:
  workers: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("WIKI_LANGUAGE", "")
	t.Setenv("WIKI_USER_AGENT", "")
	t.Setenv("CACHE_DIR", filepath.Join(dir, "cache"))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Wikipedia.Language)
	assert.Equal(t, 8, cfg.Wikipedia.MaxResults)
	assert.Equal(t, 3*time.Second, cfg.Wikipedia.Timeout)
	assert.Equal(t, 4, cfg.Wikipedia.MaxContinuations)
	assert.Equal(t, "wiki-resolver-go/0.1", cfg.Wikipedia.UserAgent)
	assert.Equal(t, 3.5, cfg.Resolver.MinNotabilityScore)
	assert.Equal(t, 7.0, cfg.Resolver.UnambiguousThreshold)
	assert.Equal(t, 2.0, cfg.Resolver.UnambiguousCutoff)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, filepath.Join(dir, "cache"), cfg.Cache.Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wikipedia: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ExampleFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CACHE_DIR", "")
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Resolver.MinNotabilityScore)
	assert.Equal(t, 2.0, cfg.Resolver.UnambiguousCutoff)
	assert.Equal(t, 168*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 0, cfg.Wikipedia.MaxContinuations)
}
