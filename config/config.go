package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values. JWT_SECRET must be configured with
// the same value in every service deployment: the shared secret is the only
// trust anchor between services.
type Config struct {
	AppPort      string `mapstructure:"APP_PORT"`
	Env          string `mapstructure:"ENV"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`

	// Cross-service calls.
	NotificationServiceURL string `mapstructure:"NOTIFICATION_SERVICE_URL"`
	DispatchTimeoutSeconds int    `mapstructure:"DISPATCH_TIMEOUT_SECONDS"`

	// Redis configuration (optional unread-count cache).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var AppConfig Config

// LoadConfig initializes Viper to load config values from env, file, or defaults.
func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()
	// AutomaticEnv only surfaces keys viper already knows about, so a key
	// without a default must be bound explicitly or Unmarshal never sees it.
	viper.MustBindEnv("JWT_SECRET")

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "taskhub")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("NOTIFICATION_SERVICE_URL", "http://localhost:8003")
	viper.SetDefault("DISPATCH_TIMEOUT_SECONDS", 5)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if AppConfig.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required: services cannot verify each other's tokens without it")
	}
}

// TokenTTL returns the credential lifetime as a duration.
func TokenTTL() time.Duration {
	return time.Duration(AppConfig.TokenTTLHours) * time.Hour
}

// DispatchTimeout returns the bound on outbound notification dispatch calls.
func DispatchTimeout() time.Duration {
	return time.Duration(AppConfig.DispatchTimeoutSeconds) * time.Second
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
