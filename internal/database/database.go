package database

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"padelmania/internal/cache"
	"padelmania/internal/config"
)

// Connections holds the optional backing services. A nil field means the
// service is not configured and the server runs on its in-process fallback.
type Connections struct {
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client

	bucket string
}

// Connect opens every configured service. Redis is required once
// configured, since carts would otherwise silently stop persisting. Search
// and image hosting degrade to their fallbacks when unreachable.
func Connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Connections, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	conns := &Connections{bucket: cfg.MinIOBucket}

	if cfg.RedisEnabled() {
		client, err := cache.NewRedis(ctx, cfg.RedisHost, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		conns.Redis = client
		log.Info("✅ connected to Redis", zap.String("addr", cfg.RedisHost))
	} else {
		log.Warn("⚠️  REDIS_HOST not set, carts are kept in memory")
	}

	if cfg.ElasticEnabled() {
		client, err := connectElastic(cfg)
		if err != nil {
			log.Warn("⚠️  Elasticsearch unavailable, using in-memory search", zap.Error(err))
		} else {
			conns.Elastic = client
			log.Info("✅ connected to Elasticsearch", zap.String("url", cfg.ElasticURL))
		}
	}

	if cfg.MinIOEnabled() {
		client, err := connectMinIO(ctx, cfg)
		if err != nil {
			log.Warn("⚠️  MinIO unavailable, serving images from IMAGE_BASE_URL", zap.Error(err))
		} else {
			conns.MinIO = client
			log.Info("✅ connected to MinIO", zap.String("endpoint", cfg.MinIOEndpoint), zap.String("bucket", cfg.MinIOBucket))
		}
	}

	return conns, nil
}

func (c *Connections) Close() error {
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}

// ReadyChecks returns one check per connected service.
func (c *Connections) ReadyChecks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.Redis.Ping(ctx).Err()
		}
	}
	if c.Elastic != nil {
		checks["elasticsearch"] = func(ctx context.Context) error {
			res, err := c.Elastic.Ping(c.Elastic.Ping.WithContext(ctx))
			if err != nil {
				return err
			}
			defer res.Body.Close()
			if res.IsError() {
				return fmt.Errorf("ping: %s", res.Status())
			}
			return nil
		}
	}
	if c.MinIO != nil {
		checks["minio"] = func(ctx context.Context) error {
			_, err := c.MinIO.BucketExists(ctx, c.bucket)
			return err
		}
	}
	return checks
}

func connectElastic(cfg *config.Config) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", res.Status())
	}
	return client, nil
}

// NewMinIO builds a client without touching the network. With the region
// set, presigning needs no bucket location lookup.
func NewMinIO(cfg *config.Config) (*minio.Client, error) {
	return minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
		Region: cfg.MinIORegion,
	})
}

func connectMinIO(ctx context.Context, cfg *config.Config) (*minio.Client, error) {
	client, err := NewMinIO(cfg)
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinIOBucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.MinIOBucket)
	}
	return client, nil
}
