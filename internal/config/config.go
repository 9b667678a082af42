package config

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	SessionStore  string `mapstructure:"SESSION_STORE"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	GinMode       string `mapstructure:"GIN_MODE"`
	Port          string `mapstructure:"PORT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
}

var defaults = map[string]string{
	"DB_DRIVER":      "mysql",
	"DB_HOST":        "localhost",
	"DB_PORT":        "3306",
	"DB_USER":        "warbler",
	"DB_PASSWORD":    "warblerpassword",
	"DB_NAME":        "warbler",
	"SESSION_STORE":  "redis",
	"REDIS_HOST":     "localhost",
	"REDIS_PORT":     "6379",
	"SESSION_SECRET": "default-secret-key-change-me",
	"GIN_MODE":       "debug",
	"PORT":           "8080",
	"LOG_LEVEL":      "info",
	"OPENAI_API_KEY": "",
}

// Load reads configuration from an optional .env file in the working directory,
// overridden by environment variables.
func Load() *Config {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logrus.Info(".env file not found, using environment variables")
		} else {
			logrus.WithError(err).Warn("Failed to read .env file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		logrus.WithError(err).Fatal("Unable to decode configuration")
	}
	return cfg
}
