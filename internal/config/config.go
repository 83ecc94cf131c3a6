package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/YangKyeongHoon/tool-ocr-2/internal/common"
)

// Config is the root configuration loaded from YAML.
type Config struct {
	Models []string     `yaml:"models"`
	Run    RunConfig    `yaml:"run"`
	OCR    OCRConfig    `yaml:"ocr"`
	Report ReportConfig `yaml:"report"`
}

// RunConfig holds batch and filesystem settings.
type RunConfig struct {
	ImageDir     string `yaml:"imageDir"`
	OutputDir    string `yaml:"outputDir"`
	SampleCount  int    `yaml:"sampleCount"`
	DatabasePath string `yaml:"databasePath"` // optional, overrides default outputDir/runlog.db
	LogLevel     string `yaml:"logLevel"`     // debug|info|warn|error
}

// OCRConfig selects provider and provider-specific options.
type OCRConfig struct {
	Provider string         `yaml:"provider"` // "ollama" or "mock"
	Ollama   OllamaSettings `yaml:"ollama"`
	Mock     MockSettings   `yaml:"mock"`
}

// OllamaSettings config for the Ollama generate API.
type OllamaSettings struct {
	BaseURL string        `yaml:"baseUrl"` // e.g. http://localhost:11434
	Prompt  string        `yaml:"prompt"`  // optional extraction prompt override
	Timeout time.Duration `yaml:"timeout"` // per-request timeout
}

// MockSettings config for the mock OCR provider.
type MockSettings struct {
	Delay  time.Duration `yaml:"delay"`
	Prefix string        `yaml:"prefix"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	Path     string `yaml:"path"`
	HTMLPath string `yaml:"htmlPath"` // optional; when set, an HTML rendering is written too
}

// Load reads YAML config from path, expands environment variables, and validates it.
// If path is empty, it will attempt to read from env var OCRCOMPARE_CONFIG, then
// default to "config.yaml". A missing default file is not an error: the tool then
// runs entirely on built-in defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("OCRCOMPARE_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}

	var cfg Config
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304 - reading sanitized config file path is expected
	switch {
	case err == nil:
		// Expand environment variables in file content.
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	// Ensure output directory exists
	if err := os.MkdirAll(cfg.Run.OutputDir, 0o750); err != nil {
		return nil, fmt.Errorf("ensure output dir: %w", err)
	}
	// Default DB path under output dir if not set.
	if cfg.Run.DatabasePath == "" {
		cfg.Run.DatabasePath = filepath.Join(cfg.Run.OutputDir, "runlog.db")
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.Models) == 0 {
		cfg.Models = []string{
			"yasserrmd/Nanonets-OCR-s:latest",
			"MedAIBase/PaddleOCR-VL:0.9b",
			"deepseek-ocr:latest",
		}
	}

	if cfg.Run.ImageDir == "" {
		cfg.Run.ImageDir = common.DefaultImageDir
	}
	if cfg.Run.OutputDir == "" {
		cfg.Run.OutputDir = common.DefaultOutputDir
	}
	if cfg.Run.SampleCount <= 0 {
		cfg.Run.SampleCount = common.DefaultSampleCount
	}
	if strings.TrimSpace(cfg.Run.LogLevel) == "" {
		cfg.Run.LogLevel = "info"
	}

	if cfg.OCR.Provider == "" {
		cfg.OCR.Provider = "ollama"
	}
	if strings.TrimSpace(cfg.OCR.Ollama.BaseURL) == "" {
		cfg.OCR.Ollama.BaseURL = common.DefaultOllamaBaseURL
	}
	if strings.TrimSpace(cfg.OCR.Ollama.Prompt) == "" {
		cfg.OCR.Ollama.Prompt = common.ExtractionPrompt
	}
	if cfg.OCR.Ollama.Timeout == 0 {
		cfg.OCR.Ollama.Timeout = 10 * time.Minute
	}
	if cfg.OCR.Mock.Prefix == "" {
		cfg.OCR.Mock.Prefix = "Extracted by Mock"
	}

	if cfg.Report.Path == "" {
		cfg.Report.Path = common.DefaultReportPath
	}
}

func validate(cfg *Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model is required")
	}
	for _, m := range cfg.Models {
		if strings.TrimSpace(m) == "" {
			return errors.New("model names must be non-empty")
		}
	}
	switch cfg.OCR.Provider {
	case "ollama", "mock":
	default:
		return fmt.Errorf("unsupported ocr provider %q", cfg.OCR.Provider)
	}
	if cfg.Run.SampleCount <= 0 {
		return errors.New("run.sampleCount must be positive")
	}
	return nil
}
