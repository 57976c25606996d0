package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

// DefaultPath is the configuration file used when --config is not given.
const DefaultPath = "issuebuilder.yaml"

// Config is the complete issuebuilder configuration.
type Config struct {
	Version string        `yaml:"version"`
	Site    SiteConfig    `yaml:"site"`
	Paths   PathsConfig   `yaml:"paths"`
	Images  ImagesConfig  `yaml:"images"`
	Build   BuildConfig   `yaml:"build"`
	Logging LoggingConfig `yaml:"logging"`
	Preview PreviewConfig `yaml:"preview"`
}

// SiteConfig holds values exposed to every template as .Site.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Logo        string `yaml:"logo,omitempty"` // e.g. logo.png; the dark theme shows logo_white.png instead
}

// PathsConfig locates the build inputs and the output root.
type PathsConfig struct {
	Issues    string `yaml:"issues"`    // one subdirectory per issue
	Output    string `yaml:"output"`    // replaced on every successful build
	Templates string `yaml:"templates"` // the embedded theme is used when the default dir is absent
	Content   string `yaml:"content"`   // holds the optional about.json
	Assets    string `yaml:"assets"`    // copied verbatim into the output root
}

// ImagesConfig controls the per-page renditions.
type ImagesConfig struct {
	ThumbnailWidth    int         `yaml:"thumbnail_width"`
	OptimizedMaxWidth int         `yaml:"optimized_max_width"`
	OptimizedQuality  int         `yaml:"optimized_quality"`
	OptimizedFormat   ImageFormat `yaml:"optimized_format"`
	Concurrency       int         `yaml:"concurrency"` // 0 means runtime.NumCPU()
}

// BuildConfig holds build-run options.
type BuildConfig struct {
	ReportFile string `yaml:"report_file,omitempty"` // JSON build report; empty disables
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Port           int    `yaml:"port"`
	RescanInterval string `yaml:"rescan_interval,omitempty"` // Go duration; empty disables
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands, defaults and validates the configuration file at path.
// ${VAR} references are expanded after .env/.env.local have been loaded.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.ConfigError("configuration file not found").WithCause(err).
				WithContext("path", path).Build()
		}
		return nil, ferrors.ConfigError("read configuration file").WithCause(err).
			WithContext("path", path).Build()
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// LoadOrDefault behaves like Load but falls back to Default when path is the
// implicit DefaultPath and does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == DefaultPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			loadEnvFiles()
			return Default(), nil
		}
	}
	return Load(path)
}

// Parse decodes YAML configuration, then applies defaults and validation.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, ferrors.ConfigError("parse configuration").WithCause(err).Build()
	}
	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported configuration version %q (expected %s)", cfg.Version, CurrentVersion)).Build()
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
