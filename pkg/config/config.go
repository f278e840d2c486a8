/*
Package config manages TOML config for spellserve services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spellserve/spellserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Checker CheckerConfig `toml:"checker"`
	Dict    DictConfig    `toml:"dict"`
	Server  ServerConfig  `toml:"server"`
}

// CheckerConfig holds suggestion policy options.
type CheckerConfig struct {
	MaxDistance    int `toml:"max_distance"`
	MaxSuggestions int `toml:"max_suggestions"`
	VisitBudget    int `toml:"visit_budget"`
	Workers        int `toml:"workers"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path     string `toml:"path"`
	MaxWords int    `toml:"max_words"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit         int  `toml:"max_limit"`
	MaxTokenLen      int  `toml:"max_token_len"`
	MaxDistanceLimit int  `toml:"max_distance_limit"`
	EnableFilter     bool `toml:"enable_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/spellserve
// 2. ~/Library/Application Support/spellserve (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "spellserve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "spellserve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/spellserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Checker: CheckerConfig{
			MaxDistance:    2,
			MaxSuggestions: 3,
			VisitBudget:    0,
			Workers:        4,
		},
		Dict: DictConfig{
			Path:     "words.txt",
			MaxWords: 0,
		},
		Server: ServerConfig{
			MaxLimit:         64,
			MaxTokenLen:      60,
			MaxDistanceLimit: 4,
			EnableFilter:     true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages valid sections from a malformed TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if checkerSection, ok := utils.ExtractSection(tempConfig, "checker"); ok {
		extractCheckerConfig(checkerSection, &config.Checker)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

// extractCheckerConfig extracts checker configuration from a map
func extractCheckerConfig(data map[string]any, checker *CheckerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_distance"); ok {
		checker.MaxDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "max_suggestions"); ok {
		checker.MaxSuggestions = val
	}
	if val, ok := utils.ExtractInt64(data, "visit_budget"); ok {
		checker.VisitBudget = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		checker.Workers = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := data["path"].(string); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_token_len"); ok {
		server.MaxTokenLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_distance_limit"); ok {
		server.MaxDistanceLimit = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes checker config values and saves to file
func (c *Config) Update(configPath string, maxDistance, maxSuggestions, visitBudget *int) error {
	checker := &c.Checker
	if maxDistance != nil {
		checker.MaxDistance = *maxDistance
	}
	if maxSuggestions != nil {
		checker.MaxSuggestions = *maxSuggestions
	}
	if visitBudget != nil {
		checker.VisitBudget = *visitBudget
	}
	return SaveConfig(c, configPath)
}
