// Package config loads application configuration and initializes the global
// logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Smarty SmartyConfig `yaml:"smarty" mapstructure:"smarty"`
	Policy PolicyConfig `yaml:"policy" mapstructure:"policy"`
	Verify VerifyConfig `yaml:"verify" mapstructure:"verify"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SmartyConfig holds SmartyStreets credentials and endpoint settings.
type SmartyConfig struct {
	AuthID               string  `yaml:"auth_id" mapstructure:"auth_id"`
	AuthToken            string  `yaml:"auth_token" mapstructure:"auth_token"`
	BaseURL              string  `yaml:"base_url" mapstructure:"base_url"`
	InternationalBaseURL string  `yaml:"international_base_url" mapstructure:"international_base_url"`
	RateLimit            float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	TimeoutSecs          int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// PolicyConfig holds the precision acceptance thresholds.
type PolicyConfig struct {
	AddressPrecisions []string `yaml:"address_precisions" mapstructure:"address_precisions"`
	GeocodePrecisions []string `yaml:"geocode_precisions" mapstructure:"geocode_precisions"`
	Mode              string   `yaml:"mode" mapstructure:"mode"`
}

// VerifyConfig configures the eligibility gate and routing defaults.
type VerifyConfig struct {
	DefaultToUS  bool     `yaml:"default_to_us" mapstructure:"default_to_us"`
	CooldownSecs int      `yaml:"cooldown_secs" mapstructure:"cooldown_secs"`
	Blacklist    []string `yaml:"blacklist" mapstructure:"blacklist"`

	// Countries is a static id -> name reference table, used for blacklist
	// resolution when no database is configured.
	Countries map[string]string `yaml:"countries" mapstructure:"countries"`
}

// StoreConfig configures the location store.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ADDRVERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("smarty.base_url", "https://api.smartystreets.com/street-address")
	v.SetDefault("smarty.international_base_url", "https://international-street.api.smartystreets.com/verify")
	v.SetDefault("smarty.rate_limit", 10.0)
	v.SetDefault("smarty.timeout_secs", 30)
	v.SetDefault("policy.address_precisions", []string{"Thoroughfare", "Premise", "DeliveryPoint"})
	v.SetDefault("policy.geocode_precisions", []string{"Thoroughfare", "Premise", "DeliveryPoint"})
	v.SetDefault("policy.mode", "exact_membership")
	v.SetDefault("verify.default_to_us", true)
	v.SetDefault("verify.cooldown_secs", 30)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
