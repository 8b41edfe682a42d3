package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	JWT         JWTConfig
	Assignment  AssignmentConfig
	Push        PushConfig
	Certificate CertificateConfig
	LogLevel    string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// AssignmentConfig controls the NGO matching pass run on donation submission.
type AssignmentConfig struct {
	SearchRadiusKm float64
	MaxCandidates  int
}

// PushConfig holds push notification gateway configuration
type PushConfig struct {
	BaseURL  string
	APIKey   string
	MockPush bool
}

// CertificateConfig holds certificate renderer configuration
type CertificateConfig struct {
	Issuer       string
	RendererURL  string
	APIKey       string
	MockRenderer bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "givebridge")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Assignment.SearchRadiusKm", 15.0)
	viper.SetDefault("Assignment.MaxCandidates", 3)
	viper.SetDefault("Push.MockPush", true)
	viper.SetDefault("Certificate.Issuer", "GiveBridge")
	viper.SetDefault("Certificate.MockRenderer", true)
	viper.SetDefault("LogLevel", "info")
}
