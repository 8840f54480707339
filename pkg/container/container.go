package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"bloghub-backend/internal/config"
	infraCache "bloghub-backend/internal/infrastructure/cache"
	"bloghub-backend/internal/infrastructure/database"
	"bloghub-backend/pkg/cache"
	"bloghub-backend/pkg/jwt"

	blogHandler "bloghub-backend/internal/domains/blog/handler"
	blogRepo "bloghub-backend/internal/domains/blog/repository"
	blogService "bloghub-backend/internal/domains/blog/service"
	userHandler "bloghub-backend/internal/domains/user/handler"
	userRepo "bloghub-backend/internal/domains/user/repository"
	userService "bloghub-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the whole process.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	SubmissionRepo blogRepo.SubmissionRepository
	PublishedRepo  blogRepo.PublishedRepository
	UserRepo       userRepo.UserRepository

	// Services
	AdmissionService  blogService.AdmissionService
	ModerationService blogService.ModerationService
	FeedService       blogService.FeedService
	UserService       userService.ServiceInterface

	// Handlers
	BlogHandler  *blogHandler.BlogHandler
	AdminHandler *blogHandler.AdminHandler
	UserHandler  *userHandler.UserHandler
}

// NewContainer builds the whole dependency graph. Initialization order
// matters: config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("Initializing DI container...")

	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("Config loaded (environment: %s)", cfg.App.Environment)

	// Step 2: database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db

	// Step 3: cache. Redis being down degrades caching, it does not
	// stop the app.
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Printf("WARNING: Redis connection failed (non-critical): %v", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Steps 4-6: layers
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("DI container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.SubmissionRepo = blogRepo.NewPostgresSubmissionRepository(pool)
	c.PublishedRepo = blogRepo.NewPostgresPublishedRepository(pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	c.AdmissionService = blogService.NewAdmissionService(
		c.SubmissionRepo,
		c.Config.Blog.DedupWindow,
	)

	// The user service doubles as the pending-user counter for the
	// moderation dashboard.
	c.ModerationService = blogService.NewModerationService(
		c.SubmissionRepo,
		c.PublishedRepo,
		c.UserService,
		c.Cache,
	)

	c.FeedService = blogService.NewFeedService(c.SubmissionRepo, c.PublishedRepo)
}

func (c *Container) initHandlers() {
	c.BlogHandler = blogHandler.NewBlogHandler(c.AdmissionService, c.FeedService)
	c.AdminHandler = blogHandler.NewAdminHandler(c.ModerationService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	log.Println("Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("WARNING: failed to close database: %v", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("WARNING: failed to close Redis: %v", err)
			}
		}
	}

	log.Println("Container cleanup completed")
}
