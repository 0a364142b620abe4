package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Metadata provider
	TmdbAPIKey   string
	TmdbLanguage string // ISO-639-1, default "en"

	// Ingestion
	CastLimit int // billing ranks below this are stored (default: 15)

	// Library
	LibraryDir   string // root scanned for video files
	ScanSchedule string // cron expression for periodic scans

	// Server
	ServerPort string

	// Paths
	ImageDir     string // $CONFIG_DIR/images
	IgnoreFile   string // $CONFIG_DIR/ignore.txt
	DatabaseFile string // $CONFIG_DIR/gomediadex.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("TMDB_LANGUAGE", "en")
	viper.SetDefault("CAST_LIMIT", 15)
	viper.SetDefault("SCAN_SCHEDULE", "@every 1h")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "gomediadex")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		TmdbAPIKey:   viper.GetString("TMDB_API_KEY"),
		TmdbLanguage: viper.GetString("TMDB_LANGUAGE"),

		CastLimit: viper.GetInt("CAST_LIMIT"),

		LibraryDir:   viper.GetString("LIBRARY_DIR"),
		ScanSchedule: viper.GetString("SCAN_SCHEDULE"),

		ServerPort: viper.GetString("SERVER_PORT"),

		ImageDir:     filepath.Join(configDir, "images"),
		IgnoreFile:   filepath.Join(configDir, "ignore.txt"),
		DatabaseFile: filepath.Join(configDir, "gomediadex.db"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if config.TmdbAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}
	if config.LibraryDir == "" {
		return nil, fmt.Errorf("LIBRARY_DIR is required")
	}
	if config.CastLimit <= 0 {
		return nil, fmt.Errorf("CAST_LIMIT must be positive")
	}

	return config, nil
}
