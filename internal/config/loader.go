package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "codecraft"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "CODECRAFT"
)

// Loader handles loading configuration from files, environment variables
// and bound CLI flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader on the global viper instance
// so that cobra flag bindings take effect.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// GetViper exposes the underlying viper instance for flag binding.
func (l *Loader) GetViper() *viper.Viper { return l.v }

// Load loads configuration from the default search paths, applying
// defaults and environment overrides, and validates the result.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Missing config file is fine; defaults and env vars apply.
	}

	return l.unmarshalAndValidate()
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	return l.unmarshalAndValidate()
}

func (l *Loader) unmarshalAndValidate() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "codecraft"))
	}
	l.v.AddConfigPath("/etc/codecraft")
}

func (l *Loader) setupEnvironment() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
}

func (l *Loader) setDefaults() {
	def := DefaultConfig()

	l.v.SetDefault("log_level", def.LogLevel)
	l.v.SetDefault("verbose", def.Verbose)

	l.v.SetDefault("barcode.format", def.Barcode.Format)
	l.v.SetDefault("barcode.module_width", def.Barcode.ModuleWidth)
	l.v.SetDefault("barcode.height", def.Barcode.Height)
	l.v.SetDefault("barcode.show_text", def.Barcode.ShowText)
	l.v.SetDefault("barcode.font_size", def.Barcode.FontSize)
	l.v.SetDefault("barcode.margin", def.Barcode.Margin)

	l.v.SetDefault("layout.image_position", def.Layout.ImagePosition)
	l.v.SetDefault("layout.image_size", def.Layout.ImageSize)
	l.v.SetDefault("layout.rotation", def.Layout.Rotation)
	l.v.SetDefault("layout.scale", def.Layout.Scale)
	l.v.SetDefault("layout.overlay_path", def.Layout.OverlayPath)

	l.v.SetDefault("output.dir", def.Output.Dir)

	l.v.SetDefault("batch.delay", def.Batch.Delay)
	l.v.SetDefault("batch.show_progress", def.Batch.ShowProgress)
	l.v.SetDefault("batch.quiet", def.Batch.Quiet)
}
