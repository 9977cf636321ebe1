package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	App        AppConfig        `json:"app"`
	Monitoring MonitoringConfig `json:"monitoring"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig holds the Supabase connection settings
type DatabaseConfig struct {
	SupabaseURL string `json:"supabase_url"`
	SupabaseKey string `json:"supabase_key"`
	JobTable    string `json:"job_table"`
}

// AppConfig holds listing behavior settings
type AppConfig struct {
	DefaultPageSize    int           `json:"default_page_size"`
	MaxPageSize        int           `json:"max_page_size"`
	RateLimitPerMinute int           `json:"rate_limit_per_minute"`
	RequestTimeout     time.Duration `json:"request_timeout"`
}

// MonitoringConfig holds monitoring configuration
type MonitoringConfig struct {
	MetricsEnabled bool   `json:"metrics_enabled"`
	LogLevel       string `json:"log_level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			SupabaseURL: os.Getenv("SUPABASE_URL"),
			SupabaseKey: os.Getenv("SUPABASE_KEY"),
			JobTable:    "job",
		},
		App: AppConfig{
			DefaultPageSize:    10,
			MaxPageSize:        100,
			RateLimitPerMinute: 120,
			RequestTimeout:     30 * time.Second,
		},
		Monitoring: MonitoringConfig{
			MetricsEnabled: true,
			LogLevel:       "info",
		},
	}
}

// LoadConfig loads configuration from a JSON file, falling back to the
// defaults when the file does not exist
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a JSON file
func (c *Config) SaveConfig(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.SupabaseURL == "" {
		return fmt.Errorf("supabase URL is required")
	}

	if c.Database.SupabaseKey == "" {
		return fmt.Errorf("supabase key is required")
	}

	if c.Database.JobTable == "" {
		return fmt.Errorf("job table name is required")
	}

	if c.App.DefaultPageSize <= 0 {
		return fmt.Errorf("default page size must be positive")
	}

	if c.App.MaxPageSize < c.App.DefaultPageSize {
		return fmt.Errorf("max page size cannot be smaller than the default page size")
	}

	if c.App.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in (0, 65535]")
	}

	return nil
}
