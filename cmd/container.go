// container.go
package main

import (
	"context"

	"github.com/Abraxas-365/stagetrack/pkg/candidate"
	"github.com/Abraxas-365/stagetrack/pkg/candidate/candidateinfra"
	"github.com/Abraxas-365/stagetrack/pkg/config"
	"github.com/Abraxas-365/stagetrack/pkg/fsx"
	"github.com/Abraxas-365/stagetrack/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/stagetrack/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/stagetrack/pkg/logx"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline/pipelineapi"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline/pipelineinfra"
	"github.com/Abraxas-365/stagetrack/pkg/pipeline/pipelinesrv"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure (DB and Redis are nil when not configured)
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Domain
	Pipeline        *pipeline.Config
	CandidateReader candidate.Reader
	PipelineService *pipelinesrv.PipelineService

	// API Handlers
	PipelineHandlers *pipelineapi.PipelineHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	logx.Info("🔧 Initializing dependency container...")

	c := &Container{
		Config: cfg,
	}

	c.initInfrastructure(ctx)
	c.initPipeline(ctx)
	c.initServices()

	logx.Info("✅ Container initialized successfully")
	return c
}

func (c *Container) initInfrastructure(ctx context.Context) {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database Connection (solo lectura, sólo si el origen es postgres)
	if c.Config.Candidates.Mode == config.CandidateSourcePostgres {
		db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
		db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
		c.DB = db
		logx.Info("✅ Database connected")
	}

	// 2. Redis Connection
	if c.Config.Redis.Enabled {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Address(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(ctx).Result(); err != nil {
			logx.Warnf("⚠️  Redis not reachable: %v (pipeline cache will fall through)", err)
		} else {
			logx.Info("✅ Redis connected")
		}
	}

	// 3. File Storage Configuration (Local or S3)
	c.initFileStorage(ctx)

	logx.Info("✅ Infrastructure initialized")
}

func (c *Container) initFileStorage(ctx context.Context) {
	storage := c.Config.Storage

	switch storage.Mode {
	case config.StorageModeS3:
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, storage.S3Bucket, storage.S3Prefix)
		logx.Infof("✅ S3 file system configured (bucket: %s, region: %s)", storage.S3Bucket, storage.AWSRegion)

	default:
		localFS, err := fsxlocal.NewLocalFileSystem(storage.BasePath)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("✅ Local file system configured (path: %s)", localFS.GetBasePath())
	}
}

// initPipeline loads and validates the pipeline definition once
func (c *Container) initPipeline(ctx context.Context) {
	pc := c.Config.Pipeline

	var opts []pipeline.Option
	if pc.StrictMembership {
		opts = append(opts, pipeline.WithStrictMembership())
	}

	var source pipeline.DefinitionSource
	origin := "builtin"
	if pc.DefinitionPath == "" {
		source = pipelineinfra.NewStaticDefinitionSource(nil)
		logx.Info("📋 Using built-in default pipeline")
	} else {
		source = pipelineinfra.NewFileSystemDefinitionSource(c.FileSystem, pc.DefinitionPath)
		origin = string(c.Config.Storage.Mode) + ":" + pc.DefinitionPath
		logx.Infof("📋 Loading pipeline definition from %s", pc.DefinitionPath)
	}

	if pc.CacheEnabled && c.Redis != nil {
		source = pipelineinfra.NewRedisDefinitionCache(c.Redis, source, pc.Name, origin, pc.CacheTTL, opts...)
		logx.Infof("✅ Pipeline definition cache enabled (ttl: %s)", pc.CacheTTL)
	}

	cfg, err := pipeline.Load(ctx, source, opts...)
	if err != nil {
		logx.Fatalf("Invalid pipeline definition: %v", err)
	}
	c.Pipeline = cfg

	if ambiguous := cfg.AmbiguousStatuses(); len(ambiguous) > 0 {
		logx.WithField("statuses", ambiguous).Warn("⚠️  Statuses listed in more than one stage; the first stage wins")
	}
	logx.Infof("✅ Pipeline %q loaded with %d stages", pc.Name, cfg.Len())
}

func (c *Container) initServices() {
	logx.Info("🗄️  Initializing services...")

	switch c.Config.Candidates.Mode {
	case config.CandidateSourceHTTP:
		cs := c.Config.Candidates
		c.CandidateReader = candidateinfra.NewHTTPCandidateReader(candidateinfra.HTTPReaderConfig{
			BaseURL:     cs.BaseURL,
			APIToken:    cs.APIToken,
			Timeout:     cs.Timeout,
			Concurrency: cs.Concurrency,
			PageSize:    cs.PageSize,
		})
		logx.Infof("✅ Candidate source: ATS API (%s)", cs.BaseURL)
	case config.CandidateSourcePostgres:
		c.CandidateReader = candidateinfra.NewPostgresCandidateReader(c.DB)
		logx.Info("✅ Candidate source: ATS database")
	default:
		logx.Warn("⚠️  No candidate source configured; candidate routes will answer 503")
	}

	c.PipelineService = pipelinesrv.NewPipelineService(c.Pipeline, c.CandidateReader)
	c.PipelineHandlers = pipelineapi.NewPipelineHandlers(c.PipelineService)
}

// Cleanup closes all connections
func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
