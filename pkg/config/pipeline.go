package config

import "time"

// ============================================================================
// Storage
// ============================================================================

type StorageMode string

const (
	StorageModeLocal StorageMode = "local"
	StorageModeS3    StorageMode = "s3"
)

type StorageConfig struct {
	Mode      StorageMode
	BasePath  string
	AWSRegion string
	S3Bucket  string
	S3Prefix  string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:      StorageMode(getEnv("STORAGE_MODE", string(StorageModeLocal))),
		BasePath:  getEnv("STORAGE_BASE_PATH", "./config"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:  getEnv("AWS_S3_BUCKET", ""),
		S3Prefix:  getEnv("AWS_S3_PREFIX", ""),
	}
}

// ============================================================================
// Pipeline definition
// ============================================================================

type PipelineConfig struct {
	// DefinitionPath is relative to the storage root. Empty means the
	// built-in default pipeline is used.
	DefinitionPath   string
	Name             string
	StrictMembership bool
	CacheEnabled     bool
	CacheTTL         time.Duration
}

func loadPipelineConfig() PipelineConfig {
	return PipelineConfig{
		DefinitionPath:   getEnv("PIPELINE_DEFINITION_PATH", ""),
		Name:             getEnv("PIPELINE_NAME", "default"),
		StrictMembership: getEnvBool("PIPELINE_STRICT_MEMBERSHIP", false),
		CacheEnabled:     getEnvBool("PIPELINE_CACHE_ENABLED", false),
		CacheTTL:         getEnvDuration("PIPELINE_CACHE_TTL", 10*time.Minute),
	}
}

// ============================================================================
// Candidate source
// ============================================================================

type CandidateSourceMode string

const (
	CandidateSourceNone     CandidateSourceMode = "none"
	CandidateSourceHTTP     CandidateSourceMode = "http"
	CandidateSourcePostgres CandidateSourceMode = "postgres"
)

type CandidateSourceConfig struct {
	Mode        CandidateSourceMode
	BaseURL     string
	APIToken    string
	Timeout     time.Duration
	Concurrency int
	PageSize    int
}

func loadCandidateSourceConfig() CandidateSourceConfig {
	return CandidateSourceConfig{
		Mode:        CandidateSourceMode(getEnv("CANDIDATE_SOURCE", string(CandidateSourceNone))),
		BaseURL:     getEnv("CANDIDATE_API_URL", ""),
		APIToken:    getEnv("CANDIDATE_API_TOKEN", ""),
		Timeout:     getEnvDuration("CANDIDATE_API_TIMEOUT", 10*time.Second),
		Concurrency: getEnvInt("CANDIDATE_API_CONCURRENCY", 8),
		PageSize:    getEnvInt("CANDIDATE_API_PAGE_SIZE", 100),
	}
}
