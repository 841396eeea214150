package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Channel struct {
		SD1          float64       `yaml:"sd1"`
		SD2          float64       `yaml:"sd2"`
		DefaultYears float64       `yaml:"default_years"`
		CacheTTL     time.Duration `yaml:"cache_ttl"`
	} `yaml:"channel"`
	MarketData struct {
		BaseURL   string            `yaml:"base_url"`
		UserAgent string            `yaml:"user_agent"`
		Timeout   time.Duration     `yaml:"timeout"`
		SymbolMap map[string]string `yaml:"symbol_map"`
		VIXSymbol string            `yaml:"vix_symbol"`
	} `yaml:"market_data"`
	Watchlist struct {
		Backend  string            `yaml:"backend"` // csv or clickhouse
		Dir      string            `yaml:"dir"`
		Defaults map[string]string `yaml:"defaults"`
	} `yaml:"watchlist"`
	Cache struct {
		MemoryMaxSize int `yaml:"memory_max_size"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	ClickHouse struct {
		Host        string        `yaml:"host"`
		Port        int           `yaml:"port"`
		Database    string        `yaml:"database"`
		User        string        `yaml:"user"`
		Password    string        `yaml:"password"`
		DialTimeout time.Duration `yaml:"dial_timeout"`
		ReadTimeout time.Duration `yaml:"read_timeout"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Stream struct {
		PushInterval time.Duration `yaml:"push_interval"`
	} `yaml:"stream"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Enabled = true
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("WATCHLIST_BACKEND"); v != "" {
		c.Watchlist.Backend = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Channel.SD1 == 0 {
		c.Channel.SD1 = 1
	}
	if c.Channel.SD2 == 0 {
		c.Channel.SD2 = 2
	}
	if c.Channel.DefaultYears == 0 {
		c.Channel.DefaultYears = 3.5
	}
	if c.Channel.CacheTTL == 0 {
		c.Channel.CacheTTL = time.Hour
	}
	if c.MarketData.VIXSymbol == "" {
		c.MarketData.VIXSymbol = "^VIX"
	}
	if c.MarketData.Timeout == 0 {
		c.MarketData.Timeout = 30 * time.Second
	}
	if c.Watchlist.Backend == "" {
		c.Watchlist.Backend = "csv"
	}
	if c.Watchlist.Dir == "" {
		c.Watchlist.Dir = "data/watchlists"
	}
	if c.Stream.PushInterval == 0 {
		c.Stream.PushInterval = 15 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Watchlist.Backend != "csv" && c.Watchlist.Backend != "clickhouse" {
		return fmt.Errorf("watchlist.backend must be 'csv' or 'clickhouse', got '%s'", c.Watchlist.Backend)
	}
	if c.Watchlist.Backend == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required for the clickhouse watchlist backend")
	}
	if c.Channel.SD1 <= 0 || c.Channel.SD2 <= 0 {
		return fmt.Errorf("channel.sd1 and channel.sd2 must be positive")
	}
	if c.Channel.SD1 > c.Channel.SD2 {
		return fmt.Errorf("channel.sd1 must not exceed channel.sd2")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Kafka.Enabled && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka is enabled")
	}
	return nil
}
