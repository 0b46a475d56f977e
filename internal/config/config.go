package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quocvuong92/fs-cli/internal/constants"
	"github.com/quocvuong92/fs-cli/internal/logging"
)

// Environment variable names
const (
	EnvConfigPath = "FS_CLI_CONFIG"
	EnvLogLevel   = "FS_CLI_LOG_LEVEL"
	EnvLogFormat  = "FS_CLI_LOG_FORMAT"
	EnvColor      = "FS_CLI_COLOR"
	EnvNoColor    = "NO_COLOR"
	EnvStrict     = "FS_CLI_STRICT"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Errors
var (
	ErrInvalidColorMode = errors.New("invalid color mode. Use 'auto', 'always', or 'never'")
	ErrInvalidWordWrap  = errors.New("word wrap must not be negative")
)

// Config holds the application configuration.
// Precedence: CLI flags > environment > config file > defaults.
type Config struct {
	// ConfigPath overrides the config file search when set
	ConfigPath string

	LogLevel  string
	LogFormat string
	Color     string // "auto", "always", or "never"

	// Flags
	Verbose        bool
	Strict         bool // exit non-zero when any error was reported
	SkipUnreadable bool // find: continue past unreadable nested directories
	Render         bool // cat: render Markdown
	WordWrap       int  // cat --render wrap column; 0 uses the default

	// Resolved by Validate
	Level  logging.Level
	Format logging.Format
	// LoadedFrom is the config file that was applied, if any
	LoadedFrom string
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate fills unset fields from the environment, the config file and
// defaults, then checks the result.
func (c *Config) Validate() error {
	if c.ConfigPath == "" {
		c.ConfigPath = os.Getenv(EnvConfigPath)
	}

	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(EnvLogLevel)
	}
	if c.LogFormat == "" {
		c.LogFormat = os.Getenv(EnvLogFormat)
	}
	if c.Color == "" {
		c.Color = os.Getenv(EnvColor)
	}
	if c.Color == "" && os.Getenv(EnvNoColor) != "" {
		c.Color = ColorNever
	}
	if !c.Strict {
		c.Strict = envBool(EnvStrict)
	}

	var (
		fc   *FileConfig
		path string
		err  error
	)
	if c.ConfigPath != "" {
		path = c.ConfigPath
		fc, err = loadConfigFromPath(path)
	} else {
		fc, path, err = LoadConfigFile()
	}
	if err != nil {
		return err
	}
	if path != "" {
		c.LoadedFrom = path
	}
	c.ApplyFileConfig(fc)

	c.applyDefaults()

	if c.Verbose {
		c.Level = logging.LevelDebug
	} else if c.Level, err = logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Format, err = logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}

	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColorMode, c.Color)
	}

	if c.WordWrap < 0 {
		return ErrInvalidWordWrap
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = constants.DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = constants.DefaultLogFormat
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.WordWrap == 0 {
		c.WordWrap = constants.DefaultWordWrap
	}
}

// envBool reports whether envVar holds a true boolean value.
func envBool(envVar string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(envVar)))
	return err == nil && v
}
