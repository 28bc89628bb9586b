package di

import (
	"context"

	"gorm.io/gorm"

	"taskstream/application/serviceimpl"
	"taskstream/domain/ports"
	"taskstream/domain/repositories"
	"taskstream/domain/services"
	natspkg "taskstream/infrastructure/nats"
	"taskstream/infrastructure/postgres"
	redispkg "taskstream/infrastructure/redis"
	"taskstream/infrastructure/websocket"
	"taskstream/interfaces/api/handlers"
	"taskstream/pkg/config"
	"taskstream/pkg/logger"
	"taskstream/pkg/scheduler"
)

// snapshotRolloverJob re-broadcasts every connected user's snapshot at local
// midnight so the "created today" counter rolls over without a mutation.
const snapshotRolloverJob = "snapshot-rollover"

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // optional, rate limiting + token revocation
	NATSClient     *natspkg.Client  // optional, cross-instance change fanout
	NATSPublisher  *natspkg.Publisher
	NATSSubscriber *natspkg.Subscriber
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository repositories.UserRepository
	TaskRepository repositories.TaskRepository

	// Services
	UserService services.UserService
	TaskService services.TaskService
	FeedService services.FeedService

	// WebSocket & Broadcasting
	WebSocketManager *websocket.Manager
	FeedBroadcaster  *websocket.FeedBroadcaster
	Notifier         *websocket.Notifier

	// Auth infrastructure
	LoginLimiter  *redispkg.LoginLimiter
	TokenDenylist *redispkg.TokenDenylist
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initBroadcasting(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis is optional. Without it, sign-in rate limiting and token
	// revocation degrade gracefully to disabled.
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (rate limiting and token revocation disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.LoginLimiter = redispkg.NewLoginLimiter(redisClient, c.Config.Auth.LoginMaxAttempts, c.Config.Auth.LoginWindow)
			c.TokenDenylist = redispkg.NewTokenDenylist(redisClient)
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	}

	// NATS is optional. Without it, change events dispatch in-process and
	// only this instance's websocket clients see live updates.
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
		if err != nil {
			logger.Warn("NATS client initialization failed (single-instance fanout only)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.NATSPublisher = natspkg.NewPublisher(natsClient)
			c.NATSSubscriber = natspkg.NewSubscriber(natsClient)
			logger.Info("NATS client initialized", "url", c.Config.NATS.URL)
		}
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	logger.Info("Repositories initialized")
	return nil
}

func (c *Container) initServices() error {
	c.FeedService = serviceimpl.NewFeedService(c.TaskRepository)

	c.WebSocketManager = websocket.NewManager()
	c.Notifier = websocket.NewNotifier(c.WebSocketManager)

	var events ports.TaskEventSubscriber
	if c.NATSSubscriber != nil {
		events = c.NATSSubscriber
	}
	c.FeedBroadcaster = websocket.NewFeedBroadcaster(events, c.FeedService, c.WebSocketManager)

	var publisher ports.TaskEventPublisher
	if c.NATSPublisher != nil {
		publisher = c.NATSPublisher
	} else {
		// In-process dispatch when messaging is unavailable.
		publisher = ports.TaskEventPublisherFunc(func(ctx context.Context, event *ports.TaskChangedEvent) error {
			c.FeedBroadcaster.HandleTaskChanged(event)
			return nil
		})
	}

	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, publisher, c.Notifier)
	c.UserService = serviceimpl.NewUserService(
		c.UserRepository,
		c.LoginLimiter,
		c.TokenDenylist,
		c.FeedBroadcaster,
		c.Config.JWT,
		c.Config.Auth,
	)

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initBroadcasting() error {
	if err := c.FeedBroadcaster.Start(); err != nil {
		return err
	}

	logger.Info("Broadcasting initialized")
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	if err := c.EventScheduler.AddJob(snapshotRolloverJob, "0 0 * * *", c.FeedBroadcaster.RebroadcastAll); err != nil {
		return err
	}

	c.EventScheduler.Start()
	return nil
}

// Handlers assembles the HTTP handler set from the initialized services.
func (c *Container) Handlers() *handlers.Handlers {
	return handlers.NewHandlers(&handlers.Services{
		UserService: c.UserService,
		TaskService: c.TaskService,
		FeedService: c.FeedService,
	})
}

// Cleanup releases infrastructure connections in reverse dependency order.
func (c *Container) Cleanup() {
	if c.EventScheduler != nil {
		c.EventScheduler.Stop()
	}

	if c.FeedBroadcaster != nil {
		c.FeedBroadcaster.Stop()
	}

	if c.NATSClient != nil {
		c.NATSClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", "error", err)
		}
	}

	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	logger.Info("Container cleaned up")
}
