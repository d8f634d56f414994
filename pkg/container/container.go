package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/config"
	authorHandler "book-catalog/internal/domains/author/handler"
	authorRepo "book-catalog/internal/domains/author/repository"
	authorService "book-catalog/internal/domains/author/service"
	bookHandler "book-catalog/internal/domains/book/handler"
	bookRepo "book-catalog/internal/domains/book/repository"
	bookService "book-catalog/internal/domains/book/service"
	infraCache "book-catalog/internal/infrastructure/cache"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/internal/infrastructure/memstore"
	"book-catalog/internal/infrastructure/storage"
	"book-catalog/pkg/cache"
	"book-catalog/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application.
// Thứ tự khởi tạo: Config → Infrastructure → Repositories → Services → Handlers
type Container struct {
	// INFRASTRUCTURE LAYER
	Config     *config.Config
	DB         *database.PostgresDB // nil khi DB_DRIVER=memory
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Objects    *storage.MinIOStorage // nil khi MINIO_ENABLED=false

	// REPOSITORY LAYER
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	// SERVICE LAYER
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface
	CoverService  bookService.CoverServiceInterface // nil without object storage

	// HANDLER LAYER
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph for cfg.
// A Redis outage is not fatal: the catalog runs uncached.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI Container...")

	c := &Container{
		Config:     cfg,
		JWTManager: jwt.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer),
	}

	// ========================================
	// STEP 1: STORAGE
	// ========================================
	switch cfg.Storage.Driver {
	case "memory":
		store := memstore.New()
		c.AuthorRepo = store.Authors()
		c.BookRepo = store.Books()
		log.Warn().Msg("Using in-memory storage, data is lost on restart")

	default:
		if err := c.initDatabase(ctx); err != nil {
			c.Cleanup()
			return nil, err
		}
		c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool)
		c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)
	}

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.Cache = c.initCache(ctx)

	// ========================================
	// STEP 3: OBJECT STORAGE (cover uploads)
	// ========================================
	c.Objects = c.initObjectStorage(ctx)

	// ========================================
	// STEP 4: SERVICES + HANDLERS
	// ========================================
	c.initServices()
	c.initHandlers()

	log.Info().
		Str("driver", cfg.Storage.Driver).
		Bool("auth_enabled", cfg.Auth.Enabled).
		Msg("DI Container initialized successfully")
	return c, nil
}

// NewInMemory wires the catalog over a fresh memstore with no cache.
func NewInMemory(cfg *config.Config) *Container {
	store := memstore.New()
	c := &Container{
		Config:     cfg,
		Cache:      infraCache.NewNoopCache(),
		JWTManager: jwt.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer),
		AuthorRepo: store.Authors(),
		BookRepo:   store.Books(),
	}
	c.initServices()
	c.initHandlers()
	return c
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase(ctx context.Context) error {
	log.Info().Msg("Connecting to PostgreSQL...")

	db := database.NewPostgresDB(c.Config.Database)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.Storage.AutoMigrate {
		if err := database.Migrate(ctx, db.Pool, "up"); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		log.Info().Msg("Migrations applied")
	}

	log.Info().Msg("Database connected")
	return nil
}

func (c *Container) initCache(ctx context.Context) cache.Cache {
	if !c.Config.Redis.Enabled {
		log.Info().Msg("Redis disabled, list caching off")
		return infraCache.NewNoopCache()
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		// Redis failure không critical - log warning và continue
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), list caching off")
		_ = rc.Close()
		return infraCache.NewNoopCache()
	}
	return rc
}

func (c *Container) initObjectStorage(ctx context.Context) *storage.MinIOStorage {
	if !c.Config.MinIO.Enabled {
		return nil
	}

	objects, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("MinIO unavailable (non-critical), cover uploads off")
		return nil
	}
	log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("MinIO connected")
	return objects
}

func (c *Container) initServices() {
	ttl := c.Config.Cache.TTL

	c.AuthorService = authorService.NewService(c.AuthorRepo, c.Cache, ttl)

	// Cross-domain dependency: book service resolves authors through the author repository
	c.BookService = bookService.NewService(c.BookRepo, c.AuthorRepo, c.Cache, ttl)

	if c.Objects != nil {
		c.CoverService = bookService.NewCoverService(c.BookRepo, c.Objects, storage.NewImageProcessor(), c.Cache)
	}
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	if c.CoverService != nil {
		c.BookHandler.WithCovers(c.CoverService)
	}
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
