package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the analyzer.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LLMConfig holds model call configuration.
type LLMConfig struct {
	Provider     string  `yaml:"provider"`    // "openai", "mock"
	Model        string  `yaml:"model"`       // e.g., "gpt-4o-mini"
	BaseURL      string  `yaml:"base_url"`    // override for OpenAI-compatible endpoints
	APIKeyEnv    string  `yaml:"api_key_env"` // environment variable for API key
	SystemPrompt string  `yaml:"system_prompt"`
	Temperature  float32 `yaml:"temperature"`
	MaxTokens    int     `yaml:"max_tokens"` // completion cap per call
	BatchSize    int     `yaml:"batch_size"` // max in-flight model calls
}

// AnalysisConfig holds file selection, chunking, and layer configuration.
type AnalysisConfig struct {
	Languages    map[string][]string `yaml:"languages"` // language -> extensions (or filenames for docker)
	Excludes     []string            `yaml:"excludes"`
	Layers       []LayerConfig       `yaml:"layers"`
	ChunkTokens  int                 `yaml:"chunk_tokens"`
	ChunkOverlap int                 `yaml:"chunk_overlap"`
}

// LayerConfig describes one architectural layer of the business analysis.
// Layers are analyzed with layer-specific context and merged in list order.
type LayerConfig struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	Context  string   `yaml:"context"`
}

// CacheConfig holds response cache configuration.
type CacheConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			APIKeyEnv:    "OPENAI_API_KEY",
			SystemPrompt: "You are an expert code and business logic analyzer.",
			Temperature:  0.0,
			MaxTokens:    4000,
			BatchSize:    3,
		},
		Analysis: AnalysisConfig{
			Languages: map[string][]string{
				"python":     {".py"},
				"javascript": {".js", ".jsx", ".ts", ".tsx"},
				"go":         {".go"},
				"docker":     {"Dockerfile", "docker-compose.yml", "docker-compose.yaml"},
				"nginx":      {".conf"},
			},
			Excludes: []string{
				"**/__pycache__/**", "**/*.pyc", "**/venv/**", "**/.git/**",
				"**/node_modules/**", "**/vendor/**", "**/dist/**", "**/build/**",
			},
			Layers: []LayerConfig{
				{Name: "models", Patterns: []string{"**/models/**"}, Context: "Domain model analysis"},
				{Name: "services", Patterns: []string{"**/services/**"}, Context: "Business service analysis"},
				{Name: "controllers", Patterns: []string{"**/controllers/**", "**/handlers/**"}, Context: "Controller/API analysis"},
				{Name: "views", Patterns: []string{"**/views/**", "**/templates/**"}, Context: "View/UI analysis"},
			},
			ChunkTokens:  3000,
			ChunkOverlap: 0,
		},
		Cache: CacheConfig{
			Dir: filepath.Join(".cache", "archlens"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for archlens.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "archlens.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".archlens", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RunDBPath returns the path to the run store database.
func RunDBPath(dir string) string {
	return filepath.Join(dir, ".archlens", "runs.db")
}

// EnsureWorkDir ensures the .archlens directory exists.
func EnsureWorkDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".archlens"), 0755)
}
