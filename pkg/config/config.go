/*
Package config manages TOML config for procseek.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/procseek/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the config file looked up in the user config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Match  MatchConfig  `toml:"match"`
	CLI    CliConfig    `toml:"cli"`
	Log    LogConfig    `toml:"log"`
	Source SourceConfig `toml:"source"`
}

// MatchConfig holds ranking options.
type MatchConfig struct {
	Threshold float64 `toml:"threshold"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	Prompt     string `toml:"prompt"`
	Candidates int    `toml:"candidates"`
	Highlight  bool   `toml:"highlight"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"`
}

// SourceConfig holds process source options.
type SourceConfig struct {
	ProcMount string `toml:"proc_mount"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			Threshold: 0.7,
		},
		CLI: CliConfig{
			Prompt:     "Enter PID or process name: ",
			Candidates: 0,
			Highlight:  true,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Source: SourceConfig{
			ProcMount: "/proc",
		},
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/procseek/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string, resolver *utils.PathResolver) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
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

	if resolver == nil {
		log.Warn("No path resolver available. Using built-in defaults...")
		return DefaultConfig(), "", nil
	}
	defaultPath, err := resolver.GetConfigPath(FileName)
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
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

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps whatever sections and keys still decode
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "match"); ok {
		extractMatchConfig(section, &config.Match)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "log"); ok {
		if val, ok := utils.ExtractString(section, "level"); ok {
			config.Log.Level = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "source"); ok {
		if val, ok := utils.ExtractString(section, "proc_mount"); ok {
			config.Source.ProcMount = val
		}
	}
	return config, nil
}

func extractMatchConfig(data map[string]any, match *MatchConfig) {
	if val, ok := utils.ExtractFloat(data, "threshold"); ok {
		match.Threshold = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "prompt"); ok {
		cli.Prompt = val
	}
	if val, ok := utils.ExtractInt64(data, "candidates"); ok {
		cli.Candidates = val
	}
	if val, ok := utils.ExtractBool(data, "highlight"); ok {
		cli.Highlight = val
	}
}

// LogLevel parses the configured level, defaulting to warn.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		log.Warnf("Unknown log level %q, using warn", c.Log.Level)
		return log.WarnLevel
	}
	return level
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
