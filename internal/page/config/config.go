package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Fetch    FetchConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Relay    RelayConfig
}

type ServerConfig struct {
	HTTPPort string `mapstructure:"http_port"`
}

type CacheConfig struct {
	Backend    string `mapstructure:"backend"` // "file" or "redis"
	Dir        string `mapstructure:"dir"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type FetchConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
}

type RelayConfig struct {
	Model  string
	APIKey string `mapstructure:"api_key"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ZAMAPEDIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The original deployment configured the TTL through this bare env var.
	v.BindEnv("cache.ttl_seconds", "CACHE_TTL")
	v.BindEnv("relay.api_key", "GEMINI_KEY")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_port", ":8080")

	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.dir", filepath.Join(os.TempDir(), "zamapedia-fetch-cache"))
	v.SetDefault("cache.ttl_seconds", 3600)

	v.SetDefault("fetch.timeout_seconds", 10)
	v.SetDefault("fetch.user_agent", "zamapedia/1.0")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "zamapedia")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "zamapedia")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})

	v.SetDefault("relay.model", "gemini-2.5-flash-preview-09-2025")
	v.SetDefault("relay.api_key", "")
}

func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c *FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
