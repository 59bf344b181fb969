package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// Config - TOML Configuration File
// =============================================================================

// Cache backends selectable via config.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Store backends selectable via config.
const (
	storeBackendFile   = "file"
	storeBackendMemory = "memory"
	storeBackendMongo  = "mongo"
)

// Config holds settings loaded from the TOML config file. Every field has a
// working default, so a missing file is not an error.
type Config struct {
	Grid   GridConfig   `toml:"grid"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// GridConfig overrides the built-in grid and render defaults. Zero values
// defer to the pipeline defaults.
type GridConfig struct {
	Cols           int     `toml:"cols"`
	ContainerWidth float64 `toml:"container_width"`
	RowHeight      float64 `toml:"row_height"`
	Margin         float64 `toml:"margin"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory (defaults to the XDG cache dir).
	Dir string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig selects and configures the layout set store backend.
type StoreConfig struct {
	// Backend is one of "file", "memory", or "mongo".
	Backend string `toml:"backend"`

	// Dir overrides the file store directory (defaults to ~/.config/gridrack/layouts).
	Dir string `toml:"dir"`

	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig configures the HTTP server started by the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:   cacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Store: StoreConfig{
			Backend:  storeBackendFile,
			MongoURI: "mongodb://localhost:27017",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// configPath returns the default config file path using XDG standard
// (~/.config/gridrack/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path, falling back to the default
// location when path is empty. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configPath(); err != nil {
			return defaultConfig(), nil
		}
	}

	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
