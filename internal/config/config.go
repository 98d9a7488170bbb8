package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Webhook     WebhookConfig
	Display     DisplayConfig
	Log         LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URI             string
	Name            string
	Table           string
	ConnectAttempts int
	ConnectDelay    time.Duration
	Timeout         time.Duration
}

type WebhookConfig struct {
	Secret  string
	MaxBody string
}

type DisplayConfig struct {
	PollInterval time.Duration
}

type LogConfig struct {
	Level  zerolog.Level
	Format string
}

// flagKeys maps command line flags onto their config keys.
var flagKeys = map[string]string{
	"host":     "repowatch_host",
	"port":     "repowatch_port",
	"db-uri":   "repowatch_db_uri",
	"interval": "repowatch_poll_interval",
}

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadEnvFile loads a dotenv file into the process environment. A missing
// default .env file is not an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from the environment. Flags present in fs that
// were set on the command line take precedence.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("repowatch_env", "")
	v.SetDefault("repowatch_host", "0.0.0.0")
	v.SetDefault("repowatch_port", 8080)
	v.SetDefault("repowatch_read_timeout", "10s")
	v.SetDefault("repowatch_write_timeout", "10s")
	v.SetDefault("repowatch_db_uri", "data")
	v.SetDefault("repowatch_db_name", "github_webhook_db")
	v.SetDefault("repowatch_db_table", "repository_data")
	v.SetDefault("repowatch_db_connect_attempts", 3)
	v.SetDefault("repowatch_db_connect_delay", "2s")
	v.SetDefault("repowatch_db_timeout", "5s")
	v.SetDefault("github_webhook_secret", "")
	v.SetDefault("repowatch_max_body", "5M")
	v.SetDefault("repowatch_poll_interval", "15s")
	v.SetDefault("repowatch_log_level", "info")
	v.SetDefault("repowatch_log_format", "console")

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	port := v.GetInt("repowatch_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid REPOWATCH_PORT: %d", port)
	}

	table := strings.TrimSpace(v.GetString("repowatch_db_table"))
	if !tableNameRe.MatchString(table) {
		return Config{}, fmt.Errorf("invalid REPOWATCH_DB_TABLE: %q", table)
	}

	attempts := v.GetInt("repowatch_db_connect_attempts")
	if attempts < 1 {
		return Config{}, fmt.Errorf("invalid REPOWATCH_DB_CONNECT_ATTEMPTS: %d", attempts)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v.GetString("repowatch_log_level"))))
	if err != nil {
		return Config{}, fmt.Errorf("invalid REPOWATCH_LOG_LEVEL: %w", err)
	}

	format := strings.ToLower(strings.TrimSpace(v.GetString("repowatch_log_format")))
	if format != "console" && format != "json" {
		return Config{}, fmt.Errorf("invalid REPOWATCH_LOG_FORMAT: %q", format)
	}

	durations := make(map[string]time.Duration)
	for _, key := range []string{
		"repowatch_read_timeout",
		"repowatch_write_timeout",
		"repowatch_db_connect_delay",
		"repowatch_db_timeout",
		"repowatch_poll_interval",
	} {
		d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", strings.ToUpper(key), v.GetString(key))
		}
		durations[key] = d
	}
	if durations["repowatch_poll_interval"] == 0 {
		return Config{}, fmt.Errorf("invalid REPOWATCH_POLL_INTERVAL: must be positive")
	}

	cfg := Config{
		Environment: strings.ToLower(strings.TrimSpace(v.GetString("repowatch_env"))),
		Server: ServerConfig{
			Host:         strings.TrimSpace(v.GetString("repowatch_host")),
			Port:         port,
			ReadTimeout:  durations["repowatch_read_timeout"],
			WriteTimeout: durations["repowatch_write_timeout"],
		},
		Database: DatabaseConfig{
			URI:             strings.TrimSpace(v.GetString("repowatch_db_uri")),
			Name:            strings.TrimSpace(v.GetString("repowatch_db_name")),
			Table:           table,
			ConnectAttempts: attempts,
			ConnectDelay:    durations["repowatch_db_connect_delay"],
			Timeout:         durations["repowatch_db_timeout"],
		},
		Webhook: WebhookConfig{
			Secret:  v.GetString("github_webhook_secret"),
			MaxBody: strings.TrimSpace(v.GetString("repowatch_max_body")),
		},
		Display: DisplayConfig{
			PollInterval: durations["repowatch_poll_interval"],
		},
		Log: LogConfig{
			Level:  level,
			Format: format,
		},
	}

	if cfg.Database.URI == "" {
		cfg.Database.URI = "data"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "github_webhook_db"
	}
	if cfg.Webhook.MaxBody == "" {
		cfg.Webhook.MaxBody = "5M"
	}

	return cfg, nil
}

func (c Config) IsLocalDevelopment() bool {
	switch c.Environment {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

// VerificationEnabled reports whether webhook signatures are checked.
func (c Config) VerificationEnabled() bool {
	return c.Webhook.Secret != ""
}

// Addr is the listen address of the webhook receiver.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
