package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int    `mapstructure:"REDIS_DB"`
	RedisCacheTTLSeconds int    `mapstructure:"REDIS_CACHE_TTL_SECONDS"`

	// PublicURL is the externally visible base URL used to resolve cover references
	PublicURL string `mapstructure:"PUBLIC_URL"`
	// CoversDir is the directory served under /covers
	CoversDir string `mapstructure:"COVERS_DIR"`

	APIBasePath         string `mapstructure:"API_BASE_PATH"`
	StoreTimeoutSeconds int    `mapstructure:"STORE_TIMEOUT_SECONDS"`
	// CatalogFile optionally replaces the built-in starter catalog
	CatalogFile string `mapstructure:"CATALOG_FILE"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	/* AutomaticEnv only resolves keys viper already knows about, so every
	 * field must be bound explicitly or Unmarshal drops its env value
	 */
	for _, key := range []string{
		"PORT",
		"DATABASE_URL",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"REDIS_CACHE_TTL_SECONDS",
		"PUBLIC_URL",
		"COVERS_DIR",
		"API_BASE_PATH",
		"STORE_TIMEOUT_SECONDS",
		"CATALOG_FILE",
	} {
		viper.MustBindEnv(key)
	}

	viper.SetDefault("PORT", "4000")
	viper.SetDefault("REDIS_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("PUBLIC_URL", "http://localhost:4000")
	viper.SetDefault("COVERS_DIR", "public/covers")
	viper.SetDefault("API_BASE_PATH", "/api/books")
	viper.SetDefault("STORE_TIMEOUT_SECONDS", 5)

	// Missing .env is fine, the environment alone can configure everything
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// CacheTTL returns the Redis cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.RedisCacheTTLSeconds) * time.Second
}

// StoreTimeout returns the per-operation store timeout as a duration
func (c *Config) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutSeconds) * time.Second
}

// CacheEnabled reports whether the Redis cache layer should be wired in
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
