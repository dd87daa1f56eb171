package config

import (
	"fmt"
	"strings"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	DB        Database        `mapstructure:"database"`
	API       API             `mapstructure:"api"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
	Cache     Cache           `mapstructure:"cache"`
	EDINET    EDINETConfig    `mapstructure:"edinet"`
	TDnet     TDnetConfig     `mapstructure:"tdnet"`
	JQuants   JQuantsConfig   `mapstructure:"jquants"`
	PriceFeed PriceFeedConfig `mapstructure:"price_feed"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"required"`
	User            string `mapstructure:"user" validate:"required"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name" validate:"required"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type Scheduler struct {
	MaxConcurrency int           `mapstructure:"max_concurrency" validate:"min=1"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
}

type API struct {
	Port int `mapstructure:"port" validate:"required"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// EDINETConfig covers the EDINET document list and retrieval API.
// The API key is issued per account on the EDINET portal.
type EDINETConfig struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"min=1"`
}

type TDnetConfig struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"min=1"`
}

// JQuantsConfig holds the refresh token used to mint short-lived id tokens.
type JQuantsConfig struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required"`
	RefreshToken        string        `mapstructure:"refresh_token"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"min=1"`
}

type PriceFeedConfig struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"min=1"`
	MaxConcurrency      int           `mapstructure:"max_concurrency" validate:"min=1"`
}

func Load() (*Config, error) {
	// .env is optional, real deployments configure through the environment.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := goValidator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("scheduler.max_concurrency", 3)
	viper.SetDefault("scheduler.poll_interval", time.Minute)
	viper.SetDefault("cache.default_expiration", 10*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 15*time.Minute)
	viper.SetDefault("edinet.base_url", "https://api.edinet-fsa.go.jp/api/v2")
	viper.SetDefault("edinet.timeout", 60*time.Second)
	viper.SetDefault("edinet.max_request_per_minute", 60)
	viper.SetDefault("tdnet.base_url", "https://www.release.tdnet.info")
	viper.SetDefault("tdnet.timeout", 30*time.Second)
	viper.SetDefault("tdnet.max_request_per_minute", 30)
	viper.SetDefault("jquants.base_url", "https://api.jquants.com/v1")
	viper.SetDefault("jquants.timeout", 60*time.Second)
	viper.SetDefault("jquants.max_request_per_minute", 60)
	viper.SetDefault("price_feed.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("price_feed.timeout", 30*time.Second)
	viper.SetDefault("price_feed.max_request_per_minute", 30)
	viper.SetDefault("price_feed.max_concurrency", 4)
}
