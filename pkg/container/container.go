package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"book-review-backend/internal/config"
	bookHandler "book-review-backend/internal/domains/book/handler"
	bookRepo "book-review-backend/internal/domains/book/repository"
	bookService "book-review-backend/internal/domains/book/service"
	"book-review-backend/internal/domains/rating"
	reviewHandler "book-review-backend/internal/domains/review/handler"
	reviewRepo "book-review-backend/internal/domains/review/repository"
	reviewService "book-review-backend/internal/domains/review/service"
	"book-review-backend/internal/infrastructure/database"
	"book-review-backend/internal/infrastructure/memstore"
	"book-review-backend/internal/seed"
	"book-review-backend/migrations"
	pkgdb "book-review-backend/pkg/database"
)

// Container holds the application's dependency graph.
// Built in order: infrastructure, repositories, services, handlers.
type Container struct {
	Config *config.Config

	// Infrastructure; DB is nil with the memory driver
	DB         *database.PostgresDB
	Transactor pkgdb.Transactor
	ping       func(ctx context.Context) error

	// Repositories
	BookRepo   bookRepo.Repository
	ReviewRepo reviewRepo.Repository

	// Services
	Aggregator    *rating.Aggregator
	BookService   bookService.ServiceInterface
	ReviewService reviewService.ServiceInterface
	Seeder        *seed.Seeder

	// Handlers
	BookHandler   *bookHandler.Handler
	ReviewHandler *reviewHandler.ReviewHandler
}

// NewContainer connects the configured store and wires every layer on top of it.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initStore(ctx); err != nil {
		return nil, err
	}

	c.Aggregator = rating.NewAggregator(c.ReviewRepo, c.BookRepo)
	c.BookService = bookService.NewService(c.BookRepo, c.ReviewRepo, c.Transactor)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.BookRepo, c.Aggregator, c.Transactor)
	c.Seeder = seed.NewSeeder(c.Transactor, c.BookRepo, c.ReviewRepo, c.Aggregator)

	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)

	log.Info().Str("store", cfg.Store.Driver).Msg("container initialized")
	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.Store.Driver {
	case config.StoreDriverMemory:
		store := memstore.New()
		c.Transactor = store
		c.BookRepo = store.Books()
		c.ReviewRepo = store.Reviews()
		c.ping = store.Ping
		return nil

	case config.StoreDriverPostgres:
		db := database.NewPostgresDB(c.Config.Database)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(ctx, db.Pool, migrations.FS); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		if err := database.RegisterPoolMetrics(db.Pool); err != nil {
			log.Warn().Err(err).Msg("pool metrics not registered")
		}

		c.DB = db
		c.Transactor = pkgdb.NewTransactor(db.Pool)
		c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
		c.ReviewRepo = reviewRepo.NewPostgresRepository(db.Pool)
		c.ping = db.HealthCheck
		return nil

	default:
		return fmt.Errorf("unknown store driver %q", c.Config.Store.Driver)
	}
}

// HealthCheck pings the backing store.
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.ping == nil {
		return fmt.Errorf("store is not initialized")
	}
	return c.ping(ctx)
}

// SeedIfEmpty loads the embedded catalog unless disabled or already present.
func (c *Container) SeedIfEmpty(ctx context.Context) error {
	if !c.Config.Store.SeedOnStart {
		return nil
	}

	data, err := seed.Default()
	if err != nil {
		return err
	}
	if _, err := c.Seeder.Run(ctx, data); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	return nil
}

// Cleanup releases infrastructure resources.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
