package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when present and no --config flag is given
const DefaultFile = "vqagen.yaml"

// Config holds the settings for a generation run
type Config struct {
	ImageDir       string        `yaml:"image_dir"`
	OutputFile     string        `yaml:"output_file"`
	Provider       string        `yaml:"provider"`
	Model          string        `yaml:"model"`
	Temperature    *float32      `yaml:"temperature"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Shuffle        bool          `yaml:"shuffle"`
	IncludeLevels  bool          `yaml:"include_levels"`

	// Credentials only ever come from the environment.
	GeminiAPIKey string `yaml:"-"`
	OpenAIAPIKey string `yaml:"-"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		ImageDir:   "images",
		OutputFile: "vqa.json",
		Provider:   "gemini",
		Shuffle:    true,
	}
}

// Load builds a Config from defaults, an optional YAML file and the environment.
// If path is empty the default file is used when it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	required := path != ""
	if path == "" {
		path = DefaultFile
	}

	if err := cfg.mergeFile(path, required); err != nil {
		return nil, err
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv("VQA_IMAGE_DIR"); v != "" {
		c.ImageDir = v
	}
	if v := os.Getenv("VQA_OUTPUT_FILE"); v != "" {
		c.OutputFile = v
	}
	if v := os.Getenv("VQA_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("VQA_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid VQA_REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = d
	}
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	return nil
}

// ResolveModel fills in the provider's default model when none was configured
func (c *Config) ResolveModel() {
	if c.Model != "" {
		return
	}
	c.Model = DefaultModel(c.Provider)
}

// DefaultModel returns the model for provider, honoring the provider's *_MODEL variable
func DefaultModel(provider string) string {
	switch provider {
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-2.5-flash"
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	default:
		return ""
	}
}

// Validate checks the settings that would otherwise fail late in a run
func (c *Config) Validate() error {
	if c.ImageDir == "" {
		return fmt.Errorf("image directory must not be empty")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file must not be empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	switch c.Provider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
	default:
		return fmt.Errorf("unsupported provider: %s (supported: gemini, openai, ollama)", c.Provider)
	}
	return nil
}
