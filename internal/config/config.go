package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the server and pipeline settings.
type Config struct {
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`
	DBPath      string `mapstructure:"db_path" yaml:"db_path"`
	ExportDir   string `mapstructure:"export_dir" yaml:"export_dir"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// MaxUploadBytes is the upload size cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Load reads configuration from file, env and defaults.
// Precedence: env > config file > defaults. Env vars use the
// ANALYTICS_ prefix (e.g. ANALYTICS_LISTEN_ADDR).
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ANALYTICS")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "analytics.db")
	v.SetDefault("export_dir", "exports")
	v.SetDefault("max_upload_mb", 64)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("analytics")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the configuration to path as YAML, creating parent
// directories as needed.
func Save(c *Config, path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
