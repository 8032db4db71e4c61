package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	t.Run("environment alone configures everything", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir()) // no .env file anywhere near

		t.Setenv("PORT", "9999")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/catalog")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("CATALOG_FILE", "catalog.yaml")

		cfg, err := GetConfig()

		require.NoError(t, err)
		assert.Equal(t, "9999", cfg.Port)
		assert.Equal(t, "postgres://localhost:5432/catalog", cfg.DatabaseURL)
		assert.Equal(t, "localhost:6379", cfg.RedisAddr)
		assert.Equal(t, "catalog.yaml", cfg.CatalogFile)
		assert.True(t, cfg.CacheEnabled())
	})

	t.Run("defaults apply without file or environment", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		cfg, err := GetConfig()

		require.NoError(t, err)
		assert.Equal(t, "4000", cfg.Port)
		assert.Equal(t, "http://localhost:4000", cfg.PublicURL)
		assert.Equal(t, "/api/books", cfg.APIBasePath)
		assert.Equal(t, 60*time.Second, cfg.CacheTTL())
		assert.Equal(t, 5*time.Second, cfg.StoreTimeout())
		assert.False(t, cfg.CacheEnabled())
	})

	t.Run("env file is read when present", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		content := "PORT = \"7777\"\nDATABASE_URL = \"postgres://filehost:5432/catalog\"\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
		t.Chdir(dir)

		cfg, err := GetConfig()

		require.NoError(t, err)
		assert.Equal(t, "7777", cfg.Port)
		assert.Equal(t, "postgres://filehost:5432/catalog", cfg.DatabaseURL)
	})
}
