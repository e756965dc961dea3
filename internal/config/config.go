package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig `json:"telegram" mapstructure:"telegram"`
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	LLM      LLMConfig      `json:"llm" mapstructure:"llm"`
	Summary  SummaryConfig  `json:"summary" mapstructure:"summary"`
	Threads  ThreadsConfig  `json:"threads" mapstructure:"threads"`
	Schedule ScheduleConfig `json:"schedule" mapstructure:"schedule"`
	Server   ServerConfig   `json:"server" mapstructure:"server"`
}

type TelegramConfig struct {
	Token       string   `json:"token" mapstructure:"token"`
	APIBaseURL  string   `json:"api_base_url" mapstructure:"api_base_url"`
	PollTimeout int      `json:"poll_timeout" mapstructure:"poll_timeout"`
	AllowedBots []string `json:"allowed_bots" mapstructure:"allowed_bots"`
}

type DatabaseConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

type LLMConfig struct {
	Provider string `json:"provider" mapstructure:"provider"`
	Model    string `json:"model" mapstructure:"model"`
	APIKey   string `json:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL  string `json:"base_url,omitempty" mapstructure:"base_url"`
}

type SummaryConfig struct {
	ChatID               int64 `json:"chat_id" mapstructure:"chat_id"`
	ThreadID             int64 `json:"thread_id" mapstructure:"thread_id"`
	MaxMessageCount      int   `json:"max_message_count" mapstructure:"max_message_count"`
	QueryLimit           int   `json:"query_limit" mapstructure:"query_limit"`
	QueryWindowSeconds   int   `json:"query_window_seconds" mapstructure:"query_window_seconds"`
	DefaultLookbackHours int   `json:"default_lookback_hours" mapstructure:"default_lookback_hours"`
}

type ThreadsConfig struct {
	// Names maps forum topic ids (as decimal strings, viper keys are
	// strings) to display names.
	Names   map[string]string `json:"names" mapstructure:"names"`
	General string            `json:"general" mapstructure:"general"`
}

type ScheduleConfig struct {
	Times    []string `json:"times" mapstructure:"times"`
	Timezone string   `json:"timezone" mapstructure:"timezone"`
}

type ServerConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Host    string `json:"host" mapstructure:"host"`
	Port    int    `json:"port" mapstructure:"port"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	// Add config paths
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Check for user config directory
	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".summarybot"))
	}

	setDefaults()

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file: defaults plus environment overrides
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvOverrides(&cfg)

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("telegram.api_base_url", "https://api.telegram.org")
	viper.SetDefault("telegram.poll_timeout", 30)
	viper.SetDefault("database.path", "data/messages.db")
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.model", "gemini-1.5-flash")
	viper.SetDefault("summary.thread_id", 20284)
	viper.SetDefault("summary.max_message_count", 1000)
	viper.SetDefault("summary.query_limit", 3)
	viper.SetDefault("summary.query_window_seconds", 60)
	viper.SetDefault("summary.default_lookback_hours", 9)
	viper.SetDefault("threads.general", "☕️ Женераль")
	viper.SetDefault("schedule.times", []string{"07:10", "14:00", "18:35", "22:30"})
	viper.SetDefault("schedule.timezone", "Europe/Zurich")
	viper.SetDefault("server.enabled", false)
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
}

// loadEnvOverrides applies the deployment environment variables. The names
// predate the config file and stay supported.
func loadEnvOverrides(cfg *Config) {
	if token := os.Getenv("TG_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.Database.Path = path
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && cfg.LLM.Provider == "gemini" {
		cfg.LLM.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.LLM.Provider == "openai" {
		cfg.LLM.APIKey = key
	}
	if chatID := os.Getenv("DAILY_SUMMARY_CHAT_ID"); chatID != "" {
		if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
			cfg.Summary.ChatID = id
		}
	}
}

// ThreadNames converts the string-keyed config map to topic ids.
func (c *Config) ThreadNames() (map[int64]string, error) {
	names := make(map[int64]string, len(c.Threads.Names))
	for key, name := range c.Threads.Names {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid thread id %q in threads.names: %w", key, err)
		}
		names[id] = name
	}
	return names, nil
}
