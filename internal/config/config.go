package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Config - все настройки приложения
type Config struct {
	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`
	Polisher struct {
		Provider string        `yaml:"provider"`
		Token    string        `yaml:"token"`
		Model    string        `yaml:"model"`
		BaseURL  string        `yaml:"base_url"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"polisher"`
	Supabase struct {
		URL string `yaml:"url"`
		Key string `yaml:"key"`
	} `yaml:"supabase"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Session struct {
		IdleTTL   time.Duration `yaml:"idle_ttl"`
		SweepCron string        `yaml:"sweep_cron"`
	} `yaml:"session"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// LoadConfig читает YAML (если есть), затем .env и переменные окружения.
// Отсутствие файлов ошибкой не считается.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Telegram.Token, "TELEGRAM_TOKEN")
	setString(&c.Polisher.Provider, "POLISH_PROVIDER")
	setString(&c.Supabase.URL, "SUPABASE_URL")
	setString(&c.Supabase.Key, "SUPABASE_KEY")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")
	setString(&c.Session.SweepCron, "SESSION_SWEEP_CRON")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Proxy, "HTTPS_PROXY")

	// Токен и модель берутся из переменных выбранного провайдера
	if c.Polisher.Provider == "openai" {
		setString(&c.Polisher.Token, "OPENAI_API_KEY")
		setString(&c.Polisher.Model, "OPENAI_MODEL")
		setString(&c.Polisher.BaseURL, "OPENAI_BASE_URL")
	} else {
		setString(&c.Polisher.Token, "HF_TOKEN")
		setString(&c.Polisher.Model, "HF_MODEL")
		setString(&c.Polisher.BaseURL, "HF_API_URL")
	}

	if err := setDuration(&c.Polisher.Timeout, "POLISH_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&c.Session.IdleTTL, "SESSION_IDLE_TTL")
}

func (c *Config) applyDefaults() {
	if c.Polisher.Provider == "" {
		c.Polisher.Provider = "huggingface"
	}
	if c.Polisher.Model == "" && c.Polisher.Provider == "huggingface" {
		c.Polisher.Model = "google/flan-t5-small"
	}
	if c.Polisher.Timeout == 0 {
		c.Polisher.Timeout = 30 * time.Second
	}
	if c.Session.IdleTTL == 0 {
		c.Session.IdleTTL = 2 * time.Hour
	}
	if c.Session.SweepCron == "" {
		c.Session.SweepCron = "0 */10 * * * *"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate проверяет настройки, без которых не запустить Telegram-бота
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required (TELEGRAM_TOKEN)")
	}
	if (c.Supabase.URL == "") != (c.Supabase.Key == "") {
		return fmt.Errorf("supabase url and key must be set together")
	}
	if c.Polisher.Timeout < 0 {
		return fmt.Errorf("polisher timeout must not be negative")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = d
	return nil
}
