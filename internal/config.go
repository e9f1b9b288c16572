package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	ImageExt    []string `mapstructure:"image_extensions"`
	Inbox       string   `mapstructure:"inbox"`
	UseExifTool bool     `mapstructure:"use_exiftool"`
	SessionLog  bool     `mapstructure:"session_log"`
}

func LoadConfig() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find user config dir: %w", err)
	}

	viper.SetConfigName("snapdate")
	viper.SetConfigType("toml")
	viper.AddConfigPath(filepath.Join(configDir, "snapdate"))

	// Set defaults:
	viper.SetDefault("image_extensions", []string{".jpg", ".jpeg", ".heic", ".heif"})
	viper.SetDefault("inbox", filepath.Join(os.Getenv("HOME"), "snapdate/inbox"))
	viper.SetDefault("use_exiftool", false)
	viper.SetDefault("session_log", true)

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; that's OK, just use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
