package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	xerrors "git.home.luguber.info/inful/exepack/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`
	Build  BuildConfig  `yaml:"build"`
}

// SourceConfig describes the program being packaged
type SourceConfig struct {
	Entry         string   `yaml:"entry"`                    // entry script bundled by the packager
	Packages      []string `yaml:"packages,omitempty"`       // required distribution packages, install order preserved
	HiddenImports []string `yaml:"hidden_imports,omitempty"` // modules the packager's static analysis would miss
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Name      string `yaml:"name"`      // product name substituted into the spec template
	Directory string `yaml:"directory"` // packager dist directory
}

// BuildConfig represents build-workflow configuration
type BuildConfig struct {
	SpecFile string   `yaml:"spec_file,omitempty"`
	Cleanup  *bool    `yaml:"cleanup,omitempty"` // nil means ask interactively
	Timeout  Duration `yaml:"timeout,omitempty"` // zero means no subprocess timeout
	Python   string   `yaml:"python,omitempty"`  // interpreter override
}

// Duration wraps time.Duration for human-readable YAML values ("90s", "5m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default dependency set for the Word→HTML converter.
var (
	DefaultPackages = []string{"python-docx", "mammoth", "beautifulsoup4", "lxml"}

	DefaultHiddenImports = []string{
		"docx", "mammoth", "bs4", "lxml",
		"tkinter", "tkinter.ttk", "tkinter.filedialog",
		"tkinter.scrolledtext", "tkinter.messagebox",
	}
)

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env files if present; existing process env is never overridden.
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, xerrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns a configuration populated with defaults only, for running
// without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Source.Entry == "" {
		c.Source.Entry = "word_to_html_converter.py"
	}
	if len(c.Source.Packages) == 0 {
		c.Source.Packages = append([]string(nil), DefaultPackages...)
	}
	if len(c.Source.HiddenImports) == 0 {
		c.Source.HiddenImports = append([]string(nil), DefaultHiddenImports...)
	}
	if c.Output.Name == "" {
		c.Output.Name = "WordToHtmlConverter"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "dist"
	}
	if c.Build.SpecFile == "" {
		c.Build.SpecFile = "word_converter.spec"
	}
}

// Validate checks the configuration for values the workflow cannot run with.
func (c *Config) Validate() error {
	if c.Source.Entry == "" {
		return xerrors.ValidationFailed("source.entry", "must not be empty")
	}
	if c.Output.Name == "" {
		return xerrors.ValidationFailed("output.name", "must not be empty")
	}
	if c.Build.Timeout < 0 {
		return xerrors.ValidationFailed("build.timeout", "must not be negative")
	}
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Source: SourceConfig{
			Entry:         "word_to_html_converter.py",
			Packages:      DefaultPackages,
			HiddenImports: DefaultHiddenImports,
		},
		Output: OutputConfig{
			Name:      "WordToHtmlConverter",
			Directory: "dist",
		},
		Build: BuildConfig{
			SpecFile: "word_converter.spec",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// loadEnvFiles loads environment variables from .env/.env.local files.
// godotenv never overrides variables already present in the environment.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			return
		}
	}
}
