// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for values not set by flag, env, or config file.
const (
	DefaultPort         = 3318
	DefaultDatabaseType = "sqlite"
	DefaultSQLitePath   = "scanmail.db"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "auto"
	DefaultMailTimeout  = 10 * time.Second
	DefaultMailRPS      = 5.0
	DefaultMailBurst    = 1
)

type Config struct {
	Port         int           `yaml:"port"`
	DatabaseURL  string        `yaml:"database_url"`
	DatabaseType string        `yaml:"database_type"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
	MailTimeout  time.Duration `yaml:"mail_timeout"`
	MailRPS      float64       `yaml:"mail_rps"`
	MailBurst    int           `yaml:"mail_burst"`

	ConfigFile string `yaml:"-"`
}

// ParseFlags resolves the configuration. Each value comes from the first
// source that sets it: CLI flag, environment variable, YAML config file,
// built-in default.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("scanmail", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sqlite file path or postgres URL)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Path to YAML config file")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (auto, text, json)")

	fs.DurationVar(&cfg.MailTimeout, "mail-timeout", 0, "Timeout for each mail API request")
	fs.Float64Var(&cfg.MailRPS, "mail-rps", 0, "Max mail API requests per second")
	fs.IntVar(&cfg.MailBurst, "mail-burst", 0, "Mail API request burst size")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile != "" {
		file, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		merge(&cfg, file)
	}

	applyDefaults(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile reads a YAML config file.
func LoadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config file not found: %s", path)
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Fall back to environment variables for anything not set by flag
func applyEnv(cfg *Config) error {
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}
	if cfg.MailTimeout == 0 {
		if s := os.Getenv("MAIL_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return errors.New("invalid MAIL_TIMEOUT env variable")
			}
			cfg.MailTimeout = d
		}
	}
	if cfg.MailRPS == 0 {
		if s := os.Getenv("MAIL_RPS"); s != "" {
			rps, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return errors.New("invalid MAIL_RPS env variable")
			}
			cfg.MailRPS = rps
		}
	}
	if cfg.MailBurst == 0 {
		if s := os.Getenv("MAIL_BURST"); s != "" {
			burst, err := strconv.Atoi(s)
			if err != nil {
				return errors.New("invalid MAIL_BURST env variable")
			}
			cfg.MailBurst = burst
		}
	}
	return nil
}

// merge fills zero fields of cfg from file.
func merge(cfg *Config, file Config) {
	if cfg.Port == 0 {
		cfg.Port = file.Port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = file.DatabaseURL
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = file.DatabaseType
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = file.LogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = file.LogFormat
	}
	if cfg.MailTimeout == 0 {
		cfg.MailTimeout = file.MailTimeout
	}
	if cfg.MailRPS == 0 {
		cfg.MailRPS = file.MailRPS
	}
	if cfg.MailBurst == 0 {
		cfg.MailBurst = file.MailBurst
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = DefaultDatabaseType
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType == "sqlite" {
		cfg.DatabaseURL = DefaultSQLitePath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.MailTimeout == 0 {
		cfg.MailTimeout = DefaultMailTimeout
	}
	if cfg.MailRPS == 0 {
		cfg.MailRPS = DefaultMailRPS
	}
	if cfg.MailBurst == 0 {
		cfg.MailBurst = DefaultMailBurst
	}
}

func validate(cfg Config) error {
	switch cfg.DatabaseType {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}
	if cfg.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.MailTimeout < 0 {
		return errors.New("mail timeout must not be negative")
	}
	return nil
}
