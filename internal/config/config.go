// Package config loads salarydash settings from defaults, an optional YAML file,
// SALARYDASH_* environment variables and command line flags, lowest precedence first.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SALARYDASH_SERVER_ADDR
const EnvPrefix = "SALARYDASH"

// Config holds every setting of the application
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Charts  ChartsConfig  `mapstructure:"charts"`
}

// DatasetConfig says where the salary CSV lives and how often it is re-read
type DatasetConfig struct {
	Path     string        `mapstructure:"path"`
	Reload   bool          `mapstructure:"reload"`
	TTL      time.Duration `mapstructure:"ttl"`
	Proxy    string        `mapstructure:"proxy"`
	Progress bool          `mapstructure:"progress"`
}

// ServerConfig configures the HTTP dashboard
type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	MaxRows     int      `mapstructure:"max_rows"`
	// Username and Password protect the API and export routes when both are set
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ChartsConfig tunes the chart builders
type ChartsConfig struct {
	TopN   int  `mapstructure:"top_n"`
	Bins   int  `mapstructure:"bins"`
	Images bool `mapstructure:"images"`
}

// New returns a viper instance with every key defaulted and environment overrides enabled
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("dataset.path", "dados_tratados_imersao.csv")
	v.SetDefault("dataset.reload", false)
	v.SetDefault("dataset.ttl", time.Hour)
	v.SetDefault("dataset.proxy", "")
	v.SetDefault("dataset.progress", false)

	v.SetDefault("server.addr", ":8501")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_rows", 1000)
	v.SetDefault("server.username", "")
	v.SetDefault("server.password", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")

	v.SetDefault("charts.top_n", 10)
	v.SetDefault("charts.bins", 30)
	v.SetDefault("charts.images", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file into v and decodes the result. An explicit file must exist;
// otherwise salarydash.yaml is looked up in the working directory and ~/.config/salarydash.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("salarydash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/salarydash")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Dataset.Path == "" {
		errs = append(errs, errors.New("dataset.path is empty"))
	}
	if c.Charts.TopN <= 0 {
		errs = append(errs, fmt.Errorf("charts.top_n must be positive, got %d", c.Charts.TopN))
	}
	if c.Charts.Bins <= 0 {
		errs = append(errs, fmt.Errorf("charts.bins must be positive, got %d", c.Charts.Bins))
	}
	if c.Server.MaxRows < 0 {
		errs = append(errs, fmt.Errorf("server.max_rows must not be negative, got %d", c.Server.MaxRows))
	}
	if (c.Server.Username == "") != (c.Server.Password == "") {
		errs = append(errs, errors.New("server.username and server.password must be set together"))
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be auto, text or json, got %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
