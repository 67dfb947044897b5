package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Pipeline    PipelineConfig
	Candidates  CandidateSourceConfig
	Environment Environment
}

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

func (c Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}
func (c Config) IsProd() bool {
	return c.Environment == EnvironmentProduction
}

func loadEnvironment() Environment {
	env := getEnv("ENVIRONMENT", "development")
	switch strings.ToLower(env) {
	case "production":
		return EnvironmentProduction
	case "staging":
		return EnvironmentStaging
	default:
		return EnvironmentDevelopment
	}
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server:      loadServerConfig(),
		Database:    loadDatabaseConfig(),
		Redis:       loadRedisConfig(),
		Storage:     loadStorageConfig(),
		Pipeline:    loadPipelineConfig(),
		Candidates:  loadCandidateSourceConfig(),
		Environment: loadEnvironment(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}

	switch c.Storage.Mode {
	case StorageModeLocal:
	case StorageModeS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required when STORAGE_MODE=s3")
		}
	default:
		return fmt.Errorf("STORAGE_MODE must be %q or %q", StorageModeLocal, StorageModeS3)
	}

	if c.Pipeline.Name == "" {
		return fmt.Errorf("PIPELINE_NAME is required")
	}
	if c.Pipeline.CacheEnabled && c.Pipeline.CacheTTL <= 0 {
		return fmt.Errorf("PIPELINE_CACHE_TTL must be positive when the cache is enabled")
	}

	switch c.Candidates.Mode {
	case CandidateSourceNone:
	case CandidateSourceHTTP:
		if c.Candidates.BaseURL == "" {
			return fmt.Errorf("CANDIDATE_API_URL is required when CANDIDATE_SOURCE=http")
		}
		if c.Candidates.Concurrency <= 0 {
			return fmt.Errorf("CANDIDATE_API_CONCURRENCY must be positive")
		}
	case CandidateSourcePostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required when CANDIDATE_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("CANDIDATE_SOURCE must be one of none, http, postgres")
	}

	return nil
}

// Helper functions
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
