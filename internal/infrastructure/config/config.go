package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Remind   RemindConfig   `mapstructure:"remind"`
}

// DatabaseConfig holds database configuration. Driver is either
// "sqlite3" with a file path or "postgres" with a DSN.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// QuizConfig holds quiz session configuration
type QuizConfig struct {
	BatchSize int `mapstructure:"batch_size"`
}

// RemindConfig holds the due-report daemon configuration
type RemindConfig struct {
	Hour         int `mapstructure:"hour"`
	ForecastDays int `mapstructure:"forecast_days"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// DatabaseDriver resolves the configured sql driver name.
func (c *Config) DatabaseDriver() (string, error) {
	driver := strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch driver {
	case "sqlite3", "postgres":
		return driver, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
}

// DatabaseDSN resolves the connection string for the configured driver.
func (c *Config) DatabaseDSN() (string, error) {
	driver, err := c.DatabaseDriver()
	if err != nil {
		return "", err
	}
	if driver == "sqlite3" {
		return c.Database.Path, nil
	}
	if c.Database.DSN == "" {
		return "", fmt.Errorf("database.dsn is required for driver %q", driver)
	}
	return c.Database.DSN, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Database defaults
	viper.SetDefault("database.driver", "sqlite3")
	viper.SetDefault("database.path", "data/lexrev.db")

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Quiz defaults
	viper.SetDefault("quiz.batch_size", 10)

	// Remind defaults
	viper.SetDefault("remind.hour", 9)
	viper.SetDefault("remind.forecast_days", 7)
}
