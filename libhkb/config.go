package libhkb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the user's resolution settings
type Config struct {
	Timezone         string `mapstructure:"timezone" json:"timezone"`
	AtRollover       string `mapstructure:"at_rollover" json:"at_rollover"`
	YearPolicy       string `mapstructure:"year_policy" json:"year_policy"`
	Matcher          string `mapstructure:"matcher" json:"matcher"`
	BatchConcurrency int    `mapstructure:"batch_concurrency" json:"batch_concurrency"`
}

// ConfigManager handles configuration persistence
type ConfigManager struct {
	configPath string
}

// NewConfigManager creates a configuration manager for ~/.hkb/config.yaml
func NewConfigManager() (*ConfigManager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".hkb")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &ConfigManager{
		configPath: filepath.Join(configDir, "config.yaml"),
	}, nil
}

// NewConfigManagerAt creates a configuration manager for the file at path
func NewConfigManagerAt(path string) *ConfigManager {
	return &ConfigManager{configPath: path}
}

// Path returns the location of the config file
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

func (cm *ConfigManager) newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(cm.configPath)
	v.SetConfigType("yaml")
	v.SetConfigPermissions(0600)

	// HKB_TIMEZONE, HKB_AT_ROLLOVER, ... override the file
	v.SetEnvPrefix("HKB")
	v.AutomaticEnv()

	v.SetDefault("timezone", "Local")
	v.SetDefault("at_rollover", string(RollToNextDay))
	v.SetDefault("year_policy", string(NearestFutureYear))
	v.SetDefault("matcher", "matcher")
	v.SetDefault("batch_concurrency", 8)
	return v
}

// Load loads the configuration from disk, applying defaults and environment
// overrides. A missing file is not an error.
func (cm *ConfigManager) Load() (*Config, error) {
	v := cm.newViper()

	if _, err := os.Stat(cm.configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk
func (cm *ConfigManager) Save(config *Config) error {
	if _, err := config.ResolverConfig(); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigPermissions(0600)
	v.Set("timezone", config.Timezone)
	v.Set("at_rollover", config.AtRollover)
	v.Set("year_policy", config.YearPolicy)
	v.Set("matcher", config.Matcher)
	v.Set("batch_concurrency", config.BatchConcurrency)

	if err := v.WriteConfigAs(cm.configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Location loads the configured timezone. "Local" and "" mean time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ResolverConfig validates the settings and builds a resolver configuration
// reading the system clock in the configured timezone.
func (c *Config) ResolverConfig() (ResolverConfig, error) {
	loc, err := c.Location()
	if err != nil {
		return ResolverConfig{}, err
	}
	rollover, err := ParseAtRollover(c.AtRollover)
	if err != nil {
		return ResolverConfig{}, err
	}
	years, err := ParseYearPolicy(c.YearPolicy)
	if err != nil {
		return ResolverConfig{}, err
	}
	return ResolverConfig{
		Clock:      SystemClock{Location: loc},
		AtRollover: rollover,
		YearPolicy: years,
	}, nil
}
