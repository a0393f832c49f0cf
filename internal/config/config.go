package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	AI           AIConfig
	Similarity   SimilarityConfig   `mapstructure:"similarity"`
	Grading      GradingConfig      `mapstructure:"grading"`
	Conversation ConversationConfig `mapstructure:"conversation"`
	Listings     ListingsConfig     `mapstructure:"listings"`
	Database     DatabaseConfig
	Redis        RedisConfig
	Tracing      TracingConfig   `mapstructure:"tracing"`
	CORS         CORSConfig      `mapstructure:"cors"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时字段，不来自配置文件
	ConfigFile string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	HistoryTurns int           `mapstructure:"history_turns"`
}

// KeyFor 取指定服务商的密钥，未单独配置时退回 ai.api_key
func (c AIConfig) KeyFor(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		if c.GeminiAPIKey != "" {
			return c.GeminiAPIKey
		}
	case "openai":
		if c.OpenAIAPIKey != "" {
			return c.OpenAIAPIKey
		}
	}
	return c.APIKey
}

type SimilarityConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	Cache    bool          `mapstructure:"cache"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type GradingConfig struct {
	Threshold float64  `mapstructure:"threshold"`
	Questions []string `mapstructure:"questions"`
}

type ConversationConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"`
}

type ListingsConfig struct {
	Source   string `mapstructure:"source"`
	SeedFile string `mapstructure:"seed_file"`
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// DefaultQuestions 租客应当问到的标准问题清单
var DefaultQuestions = []string{
	"Are pets allowed?",
	"How long is the lease?",
	"Are there utilities?",
	"Is there parking?",
	"Are rooms furnished?",
	"What is the monthly rent?",
	"When can I schedule a house viewing?",
	"Can I sublet?",
	"Are there security cameras?",
	"Is the washer and dryer included?",
	"Are guests allowed?",
	"Is their heating?",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5101")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("ai.history_turns", 10)

	v.SetDefault("similarity.provider", "lexicon")
	v.SetDefault("similarity.cache", false)
	v.SetDefault("similarity.cache_ttl", 7*24*time.Hour)

	v.SetDefault("grading.threshold", 0.61)
	v.SetDefault("grading.questions", DefaultQuestions)

	v.SetDefault("conversation.ttl", 24*time.Hour)
	v.SetDefault("conversation.sweep_schedule", "@every 10m")

	v.SetDefault("listings.source", "memory")

	v.SetDefault("database.port", 3306)
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("RENTAL_COACH")
	v.AutomaticEnv()

	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// AI
	v.BindEnv("ai.provider", "AI_PROVIDER")
	v.BindEnv("ai.api_key", "AI_API_KEY")
	v.BindEnv("ai.gemini_api_key", "GOOGLE_API_KEY")
	v.BindEnv("ai.openai_api_key", "OPENAI_API_KEY")
	v.BindEnv("ai.base_url", "AI_BASE_URL")
	v.BindEnv("ai.model", "AI_MODEL")

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Grading.Threshold < 0 || c.Grading.Threshold > 1 {
		return fmt.Errorf("grading.threshold must be within [0,1], got %v", c.Grading.Threshold)
	}
	switch c.Listings.Source {
	case "memory", "mysql":
	default:
		return fmt.Errorf("unknown listings.source %q", c.Listings.Source)
	}
	if c.Server.Mode == "release" && c.AI.KeyFor(c.AI.Provider) == "" {
		return fmt.Errorf("an api key for ai.provider %q is required in release mode", c.AI.Provider)
	}
	return nil
}
