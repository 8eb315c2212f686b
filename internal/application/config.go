package application

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var configValidator = validator.New()

// Config is the complete runtime configuration for the service and CLI.
// Zero values are filled from DefaultConfig before validation, so a
// minimal file only needs the settings it changes.
type Config struct {
	// Server configures the HTTP presentation layer.
	Server ServerConfig `yaml:"server" validate:"required"`

	// Collectors configures per-collector time budgets and the upstream
	// endpoints of the network-backed collectors.
	Collectors CollectorsConfig `yaml:"collectors" validate:"required"`

	// Reference configures the canonical medicine dataset.
	Reference ReferenceConfig `yaml:"reference" validate:"required"`

	// Narrative configures the optional LLM executive summary. Disabled
	// when APIKey is empty.
	Narrative NarrativeConfig `yaml:"narrative"`

	// Logging configures log output for the server and CLI.
	Logging LoggingConfig `yaml:"logging" validate:"required"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	// Address is the host:port the API listens on.
	Address string `yaml:"address" validate:"required,hostname_port"`

	// ShutdownSeconds bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownSeconds int `yaml:"shutdown_seconds" validate:"required,min=1,max=120"`
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownSeconds) * time.Second
}

// CollectorsConfig holds the per-collector budgets and upstream
// endpoints. Network collectors carry larger budgets than table-backed
// ones.
type CollectorsConfig struct {
	// LiteratureTimeoutSeconds bounds one PubMed search and fetch round
	// trip.
	LiteratureTimeoutSeconds int `yaml:"literature_timeout_seconds" validate:"required,min=1,max=300"`

	// TrialsTimeoutSeconds bounds one ClinicalTrials.gov query.
	TrialsTimeoutSeconds int `yaml:"trials_timeout_seconds" validate:"required,min=1,max=300"`

	// TableTimeoutSeconds bounds the table-backed collectors (patents,
	// regulatory, market). Generous relative to their cost so only a
	// cancelled request context trips it.
	TableTimeoutSeconds int `yaml:"table_timeout_seconds" validate:"required,min=1,max=300"`

	// PubMedBaseURL is the NCBI eutils endpoint.
	PubMedBaseURL string `yaml:"pubmed_base_url" validate:"required,url"`

	// TrialsBaseURL is the ClinicalTrials.gov v2 API endpoint.
	TrialsBaseURL string `yaml:"trials_base_url" validate:"required,url"`

	// RequestsPerSecond caps the outbound request rate per upstream.
	// NCBI asks unauthenticated clients to stay under 3 req/s.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"required,gt=0,max=10"`

	// Burst is the rate limiter burst size.
	Burst int `yaml:"burst" validate:"required,min=1,max=20"`
}

// LiteratureTimeout returns the literature collector budget.
func (c CollectorsConfig) LiteratureTimeout() time.Duration {
	return time.Duration(c.LiteratureTimeoutSeconds) * time.Second
}

// TrialsTimeout returns the trials collector budget.
func (c CollectorsConfig) TrialsTimeout() time.Duration {
	return time.Duration(c.TrialsTimeoutSeconds) * time.Second
}

// TableTimeout returns the table-backed collector budget.
func (c CollectorsConfig) TableTimeout() time.Duration {
	return time.Duration(c.TableTimeoutSeconds) * time.Second
}

// ReferenceConfig locates the medicine reference dataset.
type ReferenceConfig struct {
	// Path is the CSV dataset file.
	Path string `yaml:"path" validate:"required"`

	// CacheSize bounds the lookup cache entry count.
	CacheSize int `yaml:"cache_size" validate:"required,min=16,max=100000"`
}

// NarrativeConfig controls the optional LLM-written executive summary.
type NarrativeConfig struct {
	// APIKey authenticates against the inference endpoint. Empty
	// disables narration entirely.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the OpenAI-compatible endpoint. Empty uses the
	// client default.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// Model names the model to use.
	Model string `yaml:"model" validate:"required_with=APIKey"`

	// TimeoutSeconds bounds one summary generation.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"omitempty,min=1,max=120"`
}

// Enabled reports whether narration is configured.
func (c NarrativeConfig) Enabled() bool { return c.APIKey != "" }

// Timeout returns the narration budget.
func (c NarrativeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum level to emit.
	Level string `yaml:"level" validate:"required,oneof=debug info warn error"`

	// Format selects the log formatter.
	Format string `yaml:"format" validate:"required,oneof=text json"`
}

// DefaultConfig returns the configuration used when no file overrides a
// setting.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8080",
			ShutdownSeconds: 10,
		},
		Collectors: CollectorsConfig{
			LiteratureTimeoutSeconds: 20,
			TrialsTimeoutSeconds:     20,
			TableTimeoutSeconds:      15,
			PubMedBaseURL:            "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
			TrialsBaseURL:            "https://clinicaltrials.gov/api/v2",
			RequestsPerSecond:        3,
			Burst:                    3,
		},
		Reference: ReferenceConfig{
			Path:      "data/medicine_dataset.csv",
			CacheSize: 1024,
		},
		Narrative: NarrativeConfig{
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads, strictly decodes, and validates a YAML config file.
// Settings absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Strict mode - fail on unknown fields.
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := configValidator.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
