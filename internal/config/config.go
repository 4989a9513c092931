// Package config loads and validates application configuration from a YAML
// file. Every recognized option is required: a missing option is a startup
// error, never a silent default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// APIKeyEnv names the environment variable holding the Gemini API key. The
// key never lives in the config file.
const APIKeyEnv = "GEMINI_API_KEY"

// GeminiConfig selects the hosted models.
type GeminiConfig struct {
	EmbeddingModel  string `yaml:"embedding_model"`
	GenerationModel string `yaml:"generation_model"`
	// EmbeddingDimension sizes the zero-vector fallback used when an
	// embedding call fails.
	EmbeddingDimension int `yaml:"embedding_dimension"`
}

// ChunkingConfig configures the window chunker.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// DocumentConfig bounds document intake.
type DocumentConfig struct {
	MaxSizeMB int `yaml:"max_size_mb"`
}

// QdrantConfig contains connection details for the qdrant store backend.
type QdrantConfig struct {
	URL        string `yaml:"url"`
	APIKey     string `yaml:"api_key"`
	Collection string `yaml:"collection"`
}

// StorageConfig selects and configures the vector store backend.
type StorageConfig struct {
	// Type is "file" or "qdrant".
	Type string `yaml:"type"`
	// Dir holds the flat store file for the file backend.
	Dir    string        `yaml:"dir"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Gemini   GeminiConfig   `yaml:"gemini"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Document DocumentConfig `yaml:"document"`
	Storage  StorageConfig  `yaml:"storage"`
}

// Load reads and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate collects every missing or inconsistent option into one error so
// the operator sees the full list at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Gemini.EmbeddingModel == "" {
		missing = append(missing, "gemini.embedding_model")
	}
	if c.Gemini.GenerationModel == "" {
		missing = append(missing, "gemini.generation_model")
	}
	if c.Gemini.EmbeddingDimension <= 0 {
		missing = append(missing, "gemini.embedding_dimension")
	}
	if c.Chunking.Size <= 0 {
		missing = append(missing, "chunking.size")
	}
	if c.Chunking.Overlap < 0 {
		missing = append(missing, "chunking.overlap")
	}
	if c.Document.MaxSizeMB <= 0 {
		missing = append(missing, "document.max_size_mb")
	}
	switch c.Storage.Type {
	case "file":
		if c.Storage.Dir == "" {
			missing = append(missing, "storage.dir")
		}
	case "qdrant":
		if c.Storage.Qdrant == nil || c.Storage.Qdrant.URL == "" {
			missing = append(missing, "storage.qdrant.url")
		}
		if c.Storage.Qdrant == nil || c.Storage.Qdrant.Collection == "" {
			missing = append(missing, "storage.qdrant.collection")
		}
	case "":
		missing = append(missing, "storage.type")
	default:
		return fmt.Errorf("unknown storage.type %q (want file or qdrant)", c.Storage.Type)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config options: %s", strings.Join(missing, ", "))
	}
	if c.Chunking.Size <= c.Chunking.Overlap {
		return fmt.Errorf("chunking.size (%d) must be greater than chunking.overlap (%d)", c.Chunking.Size, c.Chunking.Overlap)
	}
	return nil
}

// StorePath is the flat file holding the serialized store for the file
// backend.
func (c *Config) StorePath() string {
	return filepath.Join(c.Storage.Dir, "embeddings.json")
}

// MaxDocumentBytes converts the configured megabyte limit.
func (c *Config) MaxDocumentBytes() int64 {
	return int64(c.Document.MaxSizeMB) << 20
}

// APIKey reads the Gemini key from the environment.
func APIKey() string {
	return os.Getenv(APIKeyEnv)
}
