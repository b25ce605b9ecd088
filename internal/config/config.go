package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Log          LogConfig          `mapstructure:"log"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Notification NotificationConfig `mapstructure:"notification"`
	Auth         AuthConfig         `mapstructure:"auth"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	ReadTimeout    int    `mapstructure:"read_timeout"`
	WriteTimeout   int    `mapstructure:"write_timeout"`
	MaxHeaderBytes int    `mapstructure:"max_header_bytes"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Type     string `mapstructure:"type"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// RegistrationConfig holds registration engine policy knobs
type RegistrationConfig struct {
	// AllowDuplicateDirect exempts the direct and admin registration paths
	// from the duplicate-active-registration check. Self-service always
	// enforces it.
	AllowDuplicateDirect bool `mapstructure:"allow_duplicate_direct"`
}

// NotificationConfig holds email delivery configuration
type NotificationConfig struct {
	SendgridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromName       string `mapstructure:"from_name"`
	FromEmail      string `mapstructure:"from_email"`
	AdminEmail     string `mapstructure:"admin_email"`
}

// AuthConfig holds token issuing configuration
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	TokenExpMinutes int    `mapstructure:"token_exp_minutes"`
	TokenIssuer     string `mapstructure:"token_issuer"`
}

var config *Config

// Init initializes the configuration
func Init() {
	config = &Config{}

	setDefaults()

	if err := viper.Unmarshal(config); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}

// Get returns the global configuration
func Get() *Config {
	if config == nil {
		Init()
	}
	return config
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "lesson-reservations")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", 15)
	viper.SetDefault("server.write_timeout", 15)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.name", "lesson_reservations")
	viper.SetDefault("database.ssl_mode", "disable")

	// Cache defaults
	viper.SetDefault("cache.type", "redis")
	viper.SetDefault("cache.host", "localhost")
	viper.SetDefault("cache.port", 6379)
	viper.SetDefault("cache.password", "")
	viper.SetDefault("cache.db", 0)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.output", "stdout")

	// Registration defaults
	viper.SetDefault("registration.allow_duplicate_direct", true)

	// Notification defaults
	viper.SetDefault("notification.sendgrid_api_key", "")
	viper.SetDefault("notification.from_name", "Centrum Rubáček")
	viper.SetDefault("notification.from_email", "")
	viper.SetDefault("notification.admin_email", "")

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.token_exp_minutes", 60)
	viper.SetDefault("auth.token_issuer", "lesson-reservations")
}
