package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/fs-cli/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	LogLevel  string `yaml:"log_level,omitempty"`  // debug, info, warn, error, none
	LogFormat string `yaml:"log_format,omitempty"` // text or json
	Color     string `yaml:"color,omitempty"`      // auto, always, never
	Strict    bool   `yaml:"strict,omitempty"`

	Find *FindConfig `yaml:"find,omitempty"`
	Cat  *CatConfig  `yaml:"cat,omitempty"`
}

// FindConfig holds find settings
type FindConfig struct {
	SkipUnreadable bool `yaml:"skip_unreadable,omitempty"`
}

// CatConfig holds cat settings
type CatConfig struct {
	Render   bool `yaml:"render,omitempty"`
	WordWrap int  `yaml:"word_wrap,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.ConfigDirName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.ConfigDirName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.ConfigDirName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile loads the first config file found on the search path.
// It returns an empty config and path when none exists.
func LoadConfigFile() (*FileConfig, string, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			fc, err := loadConfigFromPath(path)
			return fc, path, err
		}
	}

	return &FileConfig{}, "", nil
}

func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// Only fields not already set by flags or the environment are filled.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.LogLevel == "" {
		c.LogLevel = fc.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = fc.LogFormat
	}
	if c.Color == "" {
		c.Color = fc.Color
	}

	// A false bool cannot be told apart from an unset flag, so the file
	// can only switch these on.
	if fc.Strict {
		c.Strict = true
	}
	if fc.Find != nil && fc.Find.SkipUnreadable {
		c.SkipUnreadable = true
	}
	if fc.Cat != nil {
		if fc.Cat.Render {
			c.Render = true
		}
		if c.WordWrap == 0 && fc.Cat.WordWrap > 0 {
			c.WordWrap = fc.Cat.WordWrap
		}
	}
}

// CreateDefaultConfigFile writes a commented config file to dir, or to the
// user config directory when dir is empty. It refuses to overwrite.
func CreateDefaultConfigFile(dir string) (string, error) {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("could not determine config directory: %w", err)
			}
			configDir = filepath.Join(homeDir, ".config")
		}
		dir = filepath.Join(configDir, constants.ConfigDirName)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# fs-cli configuration
# Location: ~/.config/fs-cli/config.yaml

# Diagnostics written to stderr: debug, info, warn, error, none
# log_level: warn

# Diagnostic format: text or json
# log_format: text

# Colored error prefixes: auto, always, never
# color: auto

# Exit with status 1 when any error was reported
# strict: false

# find settings
# find:
#   skip_unreadable: false  # continue past unreadable subdirectories

# cat settings
# cat:
#   render: false   # render Markdown
#   word_wrap: 80
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
