package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "worker:\n  seeds: [\"B00TEST001\"]\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://webservices.amazon.com/onca/xml", cfg.Catalog.Endpoint)
	assert.Equal(t, 9, cfg.Catalog.RequestsPerWindow)
	assert.Equal(t, 10*time.Second, cfg.Catalog.RateWindow)
	assert.Equal(t, 10*time.Second, cfg.Catalog.BackoffMean)
	assert.Equal(t, uint64(0), cfg.Catalog.MaxRetries)
	assert.Equal(t, 4, cfg.Worker.Count)
	assert.Equal(t, 5, cfg.Worker.MaxItemRetries)
	assert.Equal(t, 3, cfg.Worker.MaxFamilyRetries)
	assert.Equal(t, []string{"B00TEST001"}, cfg.Worker.Seeds)
	assert.Equal(t, "catalog_consumer", cfg.Redis.ConsumerGroup)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
catalog:
  max_retries: 7
  backoff_mean: 250ms
  proxies:
    - http://proxy-1:8080
database:
  host: db
  port: 6543
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Catalog.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Catalog.BackoffMean)
	assert.Equal(t, []string{"http://proxy-1:8080"}, cfg.Catalog.Proxies)
	assert.Contains(t, cfg.Database.DSN(), "host=db port=6543")
}

func TestLoad_DotEnvCredentials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "log:\n  level: debug\n")
	writeFile(t, dir, ".env", "CATALOG_ACCESS_KEY=AKIDEXAMPLE\nCATALOG_ASSOCIATE_TAG=shop-20\n")
	t.Cleanup(func() {
		os.Unsetenv("CATALOG_ACCESS_KEY")
		os.Unsetenv("CATALOG_ASSOCIATE_TAG")
	})

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "AKIDEXAMPLE", cfg.Catalog.AccessKey)
	assert.Equal(t, "shop-20", cfg.Catalog.AssociateTag)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.yaml file not found")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "catalog:\n  requests_per_window: 0\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requests_per_window")
}
