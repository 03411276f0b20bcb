package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides: CHANLOG_BACKEND,
// CHANLOG_ROOTLEVEL, CHANLOG_FILE_MAXSIZE and so on.
const EnvPrefix = "CHANLOG"

// Config selects and configures a logging engine and the components
// logging through it.
type Config struct {
	Backend   string `mapstructure:"backend" yaml:"backend"`
	Format    string `mapstructure:"format" yaml:"format"`
	Output    string `mapstructure:"output" yaml:"output"`
	Async     bool   `mapstructure:"async" yaml:"async"`
	RootLevel string `mapstructure:"rootLevel" yaml:"rootLevel"`
	Caller    bool   `mapstructure:"caller" yaml:"caller"`
	File      File   `mapstructure:"file" yaml:"file"`
	// ChannelOutputs sends a side channel (errors, audit, metrics) to its
	// own output. Native engine only.
	ChannelOutputs map[string]string `mapstructure:"channelOutputs" yaml:"channelOutputs,omitempty"`
	Components     []Component       `mapstructure:"components" yaml:"components,omitempty"`
}

// File holds rotation settings used when an output is a file.
type File struct {
	MaxSize    int64         `mapstructure:"maxSize" yaml:"maxSize"`
	MaxBackups int           `mapstructure:"maxBackups" yaml:"maxBackups"`
	MaxAge     time.Duration `mapstructure:"maxAge" yaml:"maxAge"`
}

// Component configures one named facade. Component names keep their case
// and dots, which is why they live in a list rather than as map keys.
type Component struct {
	Name     string   `mapstructure:"name" yaml:"name"`
	Level    string   `mapstructure:"level" yaml:"level,omitempty"`
	Channels []string `mapstructure:"channels" yaml:"channels,omitempty"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Backend:   "native",
		Format:    "text",
		Output:    "stdout",
		RootLevel: "INFO",
	}
}

// NewViper returns a viper instance carrying the defaults and reading
// CHANLOG_* environment overrides. Callers may bind flags to it before
// calling FromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("backend", d.Backend)
	v.SetDefault("format", d.Format)
	v.SetDefault("output", d.Output)
	v.SetDefault("async", d.Async)
	v.SetDefault("rootLevel", d.RootLevel)
	v.SetDefault("caller", d.Caller)
	v.SetDefault("file.maxSize", d.File.MaxSize)
	v.SetDefault("file.maxBackups", d.File.MaxBackups)
	v.SetDefault("file.maxAge", d.File.MaxAge)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges a JSON, YAML or TOML file, chosen by extension, into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

// FromViper decodes the configuration held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Load reads configuration from path, overlaid with environment
// variables. If path is empty, the defaults are used.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		if err := ReadFile(v, path); err != nil {
			return Config{}, err
		}
	}
	return FromViper(v)
}

// YAML renders the configuration in the file format Load accepts.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
