package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"login-signup-service/cmd/api/infrastructure"
	"login-signup-service/internal/adapter/cache"
	"login-signup-service/internal/adapter/db/memory"
	mongorepo "login-signup-service/internal/adapter/db/mongo"
	"login-signup-service/internal/adapter/db/postgres"
	ginhandler "login-signup-service/internal/adapter/gin/handler"
	"login-signup-service/internal/adapter/repository/cached"
	"login-signup-service/internal/config"
	"login-signup-service/internal/usecase/auth"
	redisclient "login-signup-service/pkg/redis"
	"login-signup-service/pkg/security"
)

// closeTimeout bounds the MongoDB disconnect on shutdown
const closeTimeout = 5 * time.Second

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Mongo       *mongo.Client
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Repository  auth.Repository
	AuthUC      *auth.Usecase
	AuthHandler *ginhandler.AuthHandler
}

// NewContainer creates and initializes all application dependencies.
// Failing to reach the configured store is an error; nothing is served
// against a degraded backend.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	repo, err := c.initStore(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.Redis.CacheEnabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewCachedUserRepository(repo, userCache, l)
		l.Info("user cache enabled", zap.Int("ttl_seconds", cfg.Redis.CacheTTL))
	}

	c.Repository = repo
	c.AuthUC = auth.New(repo, security.NewBcryptHasher(cfg.Security.BcryptCost), l)
	c.AuthHandler = ginhandler.NewAuthHandler(c.AuthUC, l)

	return c, nil
}

// initStore connects the backend selected by STORAGE_DRIVER.
func (c *Container) initStore(ctx context.Context) (auth.Repository, error) {
	cfg, l := c.Config, c.Logger

	switch cfg.Storage.Driver {
	case config.DriverMongo:
		client, err := infrastructure.NewMongoClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
		}
		c.Mongo = client

		repo := mongorepo.NewUserRepoMongo(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection), l)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	case config.DriverPostgres:
		db, err := infrastructure.NewDatabase(cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db

		repo := postgres.NewUserRepoPG(db, l)
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	case config.DriverMemory:
		l.Warn("using in-memory user store; records are lost on restart")
		return memory.NewUserRepoMemory(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := infrastructure.CloseMongo(ctx, c.Mongo); err != nil {
			errs = append(errs, err)
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
