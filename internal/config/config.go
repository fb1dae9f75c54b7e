// Package config loads Estimator settings from defaults, an optional
// estimator.toml/yaml file, a .env file and ESTIMATOR_* environment
// variables, in increasing precedence.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingSetting = errors.New("config: required setting missing")

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Microgreens MicrogreensConfig `mapstructure:"microgreens"`
	Log         LogConfig         `mapstructure:"log"`
	Bot         BotConfig         `mapstructure:"bot"`
}

type ServerConfig struct {
	Addr          string  `mapstructure:"addr"`
	TLSCert       string  `mapstructure:"tls_cert"`
	TLSKey        string  `mapstructure:"tls_key"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	RateBurst     int     `mapstructure:"rate_burst"`
}

// TLS reports whether both certificate and key are configured.
func (s ServerConfig) TLS() bool { return s.TLSCert != "" && s.TLSKey != "" }

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type AuthConfig struct {
	TokenKey             string `mapstructure:"token_key"`
	OperatorLogin        string `mapstructure:"operator_login"`
	OperatorPasswordHash string `mapstructure:"operator_password_hash"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type MicrogreensConfig struct {
	EnergyCostEURkWh float64 `mapstructure:"energy_cost_eur_kwh"`
	LightHoursPerDay float64 `mapstructure:"light_hours_per_day"`
}

type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

type BotConfig struct {
	Token       string `mapstructure:"token"`
	AdminPeerID int64  `mapstructure:"admin_peer_id"`
}

// SetDefaults configures default values for all settings.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8443")
	v.SetDefault("server.tls_cert", "")
	v.SetDefault("server.tls_key", "")
	v.SetDefault("server.rate_per_second", 1.0)
	v.SetDefault("server.rate_burst", 3)

	v.SetDefault("database.url", "")

	v.SetDefault("auth.token_key", "")
	v.SetDefault("auth.operator_login", "operator")
	v.SetDefault("auth.operator_password_hash", "")

	v.SetDefault("catalog.path", "microgreens.csv")

	v.SetDefault("microgreens.energy_cost_eur_kwh", 0.31)
	v.SetDefault("microgreens.light_hours_per_day", 12.0)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")

	v.SetDefault("bot.token", "")
	v.SetDefault("bot.admin_peer_id", 0)
}

// legacyEnv maps keys to the plain variable names older deployments use.
var legacyEnv = map[string]string{
	"database.url":      "DATABASE_URL",
	"auth.token_key":    "TOKEN_KEY",
	"bot.token":         "TOKEN_BOT",
	"bot.admin_peer_id": "ADMIN_PEER_ID",
}

// New builds the viper instance without reading any file.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ESTIMATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		_ = v.BindEnv(key, "ESTIMATOR_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}
	SetDefaults(v)
	return v
}

// Load reads configuration. path names an explicit config file; when empty,
// estimator.{toml,yaml} is looked up in the working directory and its
// absence is not an error. A missing .env file is ignored as well.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName("estimator")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}

// ValidateServer checks the settings the HTTP service cannot start without.
func (c *Config) ValidateServer() error {
	if c.Auth.TokenKey == "" {
		return errors.WithHint(errors.Wrap(ErrMissingSetting, "auth.token_key"),
			"set ESTIMATOR_AUTH_TOKEN_KEY or TOKEN_KEY")
	}
	if c.Server.RatePerSecond <= 0 || c.Server.RateBurst <= 0 {
		return errors.Wrap(ErrMissingSetting, "server.rate_per_second and server.rate_burst must be positive")
	}
	return nil
}

// ValidateBot checks the settings the Telegram bot needs.
func (c *Config) ValidateBot() error {
	if c.Bot.Token == "" || c.Bot.AdminPeerID == 0 {
		return errors.WithHint(errors.Wrap(ErrMissingSetting, "bot.token or bot.admin_peer_id"),
			"set TOKEN_BOT and ADMIN_PEER_ID")
	}
	return nil
}
