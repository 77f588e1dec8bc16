package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	BodyLimit    int           `mapstructure:"body_limit"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type MongoConfig struct {
	URI     string        `mapstructure:"uri"`
	DB      string        `mapstructure:"db"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
	AllowSelfRegister bool          `mapstructure:"allow_self_register"`
	DefaultPassword   string        `mapstructure:"default_password"`
}

type RateLimitConfig struct {
	WindowMs int64 `mapstructure:"window_ms"`
	Max      int   `mapstructure:"max"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type CORSConfig struct {
	AllowOrigins     string `mapstructure:"allow_origins"`
	AllowCredentials bool   `mapstructure:"allow_credentials"`
}

func Load() (*Config, error) {
	// .env first so AutomaticEnv can pick the values up
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret (AUTH_JWT_SECRET) is required")
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("server.body_limit", 10*1024*1024) // screenshots arrive as data URIs
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.db", "linkconnect")
	viper.SetDefault("mongo.timeout", "5s")

	// registered with an empty default so AutomaticEnv can surface
	// AUTH_JWT_SECRET; viper.Unmarshal only visits keys it knows about
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("auth.allow_self_register", false)
	viper.SetDefault("auth.default_password", "Welcome@123")

	viper.SetDefault("rate_limit.window_ms", 15*60*1000)
	viper.SetDefault("rate_limit.max", 100)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.pretty", false)

	viper.SetDefault("cors.allow_origins", "http://localhost:5173")
	viper.SetDefault("cors.allow_credentials", true)
}
