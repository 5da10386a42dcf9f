package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App    App    `mapstructure:"app"`
	Gemini Gemini `mapstructure:"gemini"`
	CMC    CMC    `mapstructure:"cmc"`
	Output Output `mapstructure:"output"`
	Scores Scores `mapstructure:"scores"`
	Cache  Cache  `mapstructure:"cache"`
}

// App holds general application configuration
type App struct {
	Debug        bool   `mapstructure:"debug"`
	LogLevel     string `mapstructure:"log_level"`
	RequestDelay string `mapstructure:"request_delay"` // Pause between upstream calls
}

// Gemini holds generative model configuration
type Gemini struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	TopP        float32 `mapstructure:"top_p"`
	TopK        float32 `mapstructure:"top_k"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
}

// CMC holds CoinMarketCap API configuration
type CMC struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// Output holds artifact output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
}

// Scores holds score handling configuration
type Scores struct {
	Profile string `mapstructure:"profile"` // "friendly" (default 50) or "strict" (default 0)
}

// Cache holds local cache configuration
type Cache struct {
	Directory string `mapstructure:"directory"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file and environment.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".coinbrief")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	config.Output.Directory = expandPath(config.Output.Directory)
	config.Cache.Directory = expandPath(config.Cache.Directory)

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// RequestDelay returns the configured inter-request pause, or 3s when the
// configured value does not parse.
func (c *Config) RequestDelay() time.Duration {
	d, err := time.ParseDuration(c.App.RequestDelay)
	if err != nil || d < 0 {
		return 3 * time.Second
	}
	return d
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.request_delay", "3s")

	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.temperature", 0.2)
	viper.SetDefault("gemini.top_p", 0.95)
	viper.SetDefault("gemini.top_k", 40)
	viper.SetDefault("gemini.max_tokens", 4000)

	viper.SetDefault("cmc.base_url", "https://pro-api.coinmarketcap.com/v1/cryptocurrency/quotes/latest")
	viper.SetDefault("cmc.timeout", "15s")

	viper.SetDefault("output.directory", "project_content")
	viper.SetDefault("scores.profile", "friendly")
	viper.SetDefault("cache.directory", ".coinbrief-cache")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
	bindEnvKeys("cmc.api_key", []string{
		"CMC_API_KEY",
		"COINMARKETCAP_API_KEY",
	})
	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"COINBRIEF_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

func validateConfig(config *Config) error {
	switch config.Scores.Profile {
	case "", "friendly", "strict":
	default:
		return fmt.Errorf("invalid scores.profile %q: must be \"friendly\" or \"strict\"", config.Scores.Profile)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
