package server

import (
	"context"
	"fmt"
	"restaurant-directory/core/broker"
	"restaurant-directory/core/cache"
	"restaurant-directory/core/config"
	"restaurant-directory/core/database"
	"restaurant-directory/core/logger"
	"restaurant-directory/core/queue"
	"restaurant-directory/core/storage"
	"restaurant-directory/modules/restaurant"

	"github.com/hibiken/asynq"
)

// Infra holds the shared clients opened from configuration. It is used by
// the HTTP server and by restaurantctl.
type Infra struct {
	Config    *config.Config
	DB        database.Database
	Redis     *cache.RedisCache
	Enqueuer  queue.Enqueuer
	Publisher broker.Publisher
	Store     storage.ObjectStore

	queueClient *queue.Client
}

// LoadConfig reads configuration and installs the process logger.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: cfg.App.LogFormat})
	return cfg, nil
}

// Open connects Postgres and Redis and builds the optional clients. Redis is
// required: it backs token revocation and login lockout.
func Open(ctx context.Context, cfg *config.Config) (*Infra, error) {
	db, err := database.InitDB(database.DatabaseConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	redisCache, err := cache.InitRedis(ctx, cfg.RedisAddress(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	infra := &Infra{
		Config:    cfg,
		DB:        db,
		Redis:     redisCache,
		Enqueuer:  queue.NoopEnqueuer{},
		Publisher: broker.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic),
		Store: storage.NewS3Store(storage.Config{
			Endpoint:     cfg.Storage.Endpoint,
			Region:       cfg.Storage.Region,
			Bucket:       cfg.Storage.Bucket,
			AccessKey:    cfg.Storage.AccessKey,
			SecretKey:    cfg.Storage.SecretKey,
			UsePathStyle: cfg.Storage.UsePathStyle,
		}),
	}
	if cfg.Queue.Enabled {
		infra.queueClient = queue.NewClient(infra.RedisOpt())
		infra.Enqueuer = infra.queueClient
	}
	return infra, nil
}

func (i *Infra) RedisOpt() asynq.RedisClientOpt {
	return queue.RedisOpt(i.Config.RedisAddress(), i.Config.Redis.Password, i.Config.Redis.DB)
}

// RestaurantDependencies leaves Cache nil when caching is switched off.
func (i *Infra) RestaurantDependencies() restaurant.Dependencies {
	deps := restaurant.Dependencies{
		DB:        &i.DB,
		CacheTTL:  i.Config.Cache.TTL,
		Publisher: i.Publisher,
		Enqueuer:  i.Enqueuer,
		Store:     i.Store,
	}
	if i.Config.Cache.Enabled {
		deps.Cache = i.Redis
	}
	return deps
}

func (i *Infra) Close() {
	if i.queueClient != nil {
		if err := i.queueClient.Close(); err != nil {
			logger.Error("Infra:Close:Queue", err)
		}
	}
	if err := i.Publisher.Close(); err != nil {
		logger.Error("Infra:Close:Publisher", err)
	}
	if err := i.Redis.Close(); err != nil {
		logger.Error("Infra:Close:Redis", err)
	}
	if err := i.DB.Close(); err != nil {
		logger.Error("Infra:Close:Database", err)
	}
}
