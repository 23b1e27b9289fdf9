package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/resumex/internal/logging"
	"github.com/cognicore/resumex/pkg/resumex/ingest"
	"github.com/cognicore/resumex/pkg/resumex/internalerr"
	"github.com/cognicore/resumex/pkg/resumex/lexicon"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config is the full resumex configuration.
type Config struct {
	LowercaseNormalize    bool     `yaml:"lowercaseNormalize"`
	ActiveSkillCategories []string `yaml:"activeSkillCategories"` // empty means all
	EducationKeywords     []string `yaml:"educationKeywords"`
	CustomModelPath       string   `yaml:"customModelPath"`
	GeneralModelPath      string   `yaml:"generalModelPath"`

	LexiconPath string        `yaml:"lexiconPath"` // empty means the built-in lexicon
	Boilerplate []string      `yaml:"boilerplate"`
	Workers     int           `yaml:"workers"`
	Store       StoreConfig   `yaml:"store"`
	Logging     LoggingConfig `yaml:"logging"`
	OpenAI      OpenAIConfig  `yaml:"openai"`
}

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	DSN           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// OpenAIConfig holds credentials for hosted recognizer models.
type OpenAIConfig struct {
	APIKey     string `yaml:"apiKey"`
	BaseURL    string `yaml:"baseURL"`
	MaxRetries int    `yaml:"maxRetries"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LowercaseNormalize: true,
		EducationKeywords:  append([]string(nil), lexicon.DefaultEducationKeywords...),
		GeneralModelPath:   "models/general.yaml",
		CustomModelPath:    "models/custom.yaml",
		Boilerplate:        append([]string(nil), ingest.DefaultBoilerplate...),
		Workers:            4,
		Store:              StoreConfig{Driver: DriverSQLite, Path: "resumex.db"},
		Logging:            LoggingConfig{Level: "info"},
		OpenAI:             OpenAIConfig{MaxRetries: 2},
	}
}

// Load reads path over the defaults, applies environment overrides
// (a .env file in the working directory is honored) and validates.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: read config: %v", internalerr.ErrInvalidConfig, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse config %s: %v", internalerr.ErrInvalidConfig, path, err)
		}
	}

	_ = godotenv.Load()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from RESUMEX_* environment variables.
func (c *Config) ApplyEnv() {
	c.LowercaseNormalize = getEnvBool("RESUMEX_LOWERCASE_NORMALIZE", c.LowercaseNormalize)
	c.ActiveSkillCategories = getEnvList("RESUMEX_ACTIVE_SKILL_CATEGORIES", c.ActiveSkillCategories)
	c.EducationKeywords = getEnvList("RESUMEX_EDUCATION_KEYWORDS", c.EducationKeywords)
	c.GeneralModelPath = getEnv("RESUMEX_GENERAL_MODEL_PATH", c.GeneralModelPath)
	c.CustomModelPath = getEnv("RESUMEX_CUSTOM_MODEL_PATH", c.CustomModelPath)
	c.LexiconPath = getEnv("RESUMEX_LEXICON_PATH", c.LexiconPath)
	c.Workers = getEnvInt("RESUMEX_WORKERS", c.Workers)

	c.Store.Driver = getEnv("RESUMEX_STORE_DRIVER", c.Store.Driver)
	c.Store.Path = getEnv("RESUMEX_STORE_PATH", c.Store.Path)
	c.Store.DSN = getEnv("RESUMEX_STORE_DSN", c.Store.DSN)
	c.Store.RedisAddr = getEnv("RESUMEX_REDIS_ADDR", c.Store.RedisAddr)
	c.Store.RedisPassword = getEnv("RESUMEX_REDIS_PASSWORD", c.Store.RedisPassword)
	c.Store.RedisDB = getEnvInt("RESUMEX_REDIS_DB", c.Store.RedisDB)

	c.Logging.Level = getEnv("RESUMEX_LOG_LEVEL", c.Logging.Level)
	c.Logging.File = getEnv("RESUMEX_LOG_FILE", c.Logging.File)

	c.OpenAI.APIKey = getEnv("OPENAI_API_KEY", c.OpenAI.APIKey)
	c.OpenAI.APIKey = getEnv("RESUMEX_OPENAI_API_KEY", c.OpenAI.APIKey)
	c.OpenAI.BaseURL = getEnv("RESUMEX_OPENAI_BASE_URL", c.OpenAI.BaseURL)
}

// Validate reports the first invalid setting as ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", internalerr.ErrInvalidConfig, c.Workers)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	for _, k := range c.EducationKeywords {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("%w: empty education keyword", internalerr.ErrInvalidConfig)
		}
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: sqlite store requires store.path", internalerr.ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: postgres store requires store.dsn", internalerr.ErrInvalidConfig)
		}
	case DriverRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("%w: redis store requires store.redisAddr", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, c.Store.Driver)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvList reads a comma-separated list.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
