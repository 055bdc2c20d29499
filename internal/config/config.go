package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables read on top of the YAML file.
const (
	EnvEnabled         = "DOCSTRING_INHERITANCE_ENABLED"
	EnvSimilarityRatio = "DOCSTRING_INHERITANCE_SIMILARITY_RATIO"
	EnvWarns           = "DOCSTRING_INHERITANCE_WARNS"
	EnvDialect         = "DOCINHERIT_DIALECT"
	EnvDB              = "DOCINHERIT_DB"
)

type Config struct {
	Project struct {
		Root         string `yaml:"root"`
		IncludeStubs bool   `yaml:"include_stubs"`
		Workers      int    `yaml:"workers" validate:"gte=0"`
	} `yaml:"project"`
	Inheritance struct {
		Enabled bool `yaml:"enabled"`
		// Dialect is used for classes whose metaclass does not name one.
		Dialect           string  `yaml:"dialect" validate:"oneof=google numpy"`
		InitInClass       bool    `yaml:"init_in_class"`
		AllClasses        bool    `yaml:"all_classes"`
		ArbitrarySections bool    `yaml:"arbitrary_sections"`
		SimilarityRatio   float64 `yaml:"similarity_ratio" validate:"gte=0,lte=1"`
		Warns             bool    `yaml:"warns"`
	} `yaml:"inheritance"`
	Storage struct {
		DB string `yaml:"db"`
	} `yaml:"storage"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Project.Root = "."
	cfg.Inheritance.Enabled = true
	cfg.Inheritance.Dialect = "google"
	cfg.Storage.DB = "docinherit.db"
	return &cfg
}

// LoadConfig reads path on top of the defaults, then applies the environment.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// 3. Override with Environment Variables if present
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvEnabled); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvEnabled, v)
		}
		cfg.Inheritance.Enabled = enabled
	}

	// Warnings are only turned on by the environment when one of the warning
	// variables is set at all.
	if v, ok := os.LookupEnv(EnvSimilarityRatio); ok {
		ratio, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvSimilarityRatio, v)
		}
		cfg.Inheritance.SimilarityRatio = ratio
		cfg.Inheritance.Warns = true
	}
	if _, ok := os.LookupEnv(EnvWarns); ok {
		cfg.Inheritance.Warns = true
	}

	if v := os.Getenv(EnvDialect); v != "" {
		cfg.Inheritance.Dialect = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.Storage.DB = v
	}
	return nil
}

var validate = validator.New()

// Validate checks the field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
