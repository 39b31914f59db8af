package container

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"catalog/relations/internal/client"
	"catalog/relations/internal/config"
	"catalog/relations/internal/domain"
	"catalog/relations/internal/proxy"
	"catalog/relations/internal/queue"
	"catalog/relations/internal/repository"
	"catalog/relations/internal/resolver"
	"catalog/relations/internal/service"
	"catalog/relations/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const metricsShutdownTimeout = 5 * time.Second

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Resolver     *resolver.Resolver
	Repository   repository.CatalogRepository
	Queue        queue.Queue
	StateManager state.StateManager

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	proxySupplier, err := proxy.NewSupplier(ctx, cfg.Catalog.Proxies, cfg.Catalog.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize proxy supplier: %w", err)
	}

	transport, err := client.NewTransport(cfg.Catalog, proxySupplier)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog transport: %w", err)
	}
	invoker := client.NewInvoker(transport, cfg.Catalog, client.WithObserver(logAttempt))
	container.Resolver = resolver.New(invoker)

	db, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	container.db = db

	catalogRepo := repository.NewCatalogRepository(db)
	if err := catalogRepo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	container.Repository = catalogRepo

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, strconv.Itoa(cfg.Redis.Port)),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})
	container.redis = rdb

	if err := rdb.Ping(ctx).Err(); err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("Connected to Redis")

	redisQueue, err := queue.NewRedisQueue(ctx, rdb, cfg.Redis)
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Queue = redisQueue

	container.StateManager = state.NewRedisStateManager(rdb)

	container.Service = service.NewService(
		catalogRepo,
		container.Resolver,
		redisQueue,
		container.StateManager,
		cfg.Worker,
		cfg.Redis,
	)

	return container, nil
}

// Run enqueues the seeds and processes tasks until ctx is cancelled or a component fails.
func (c *Container) Run(ctx context.Context, seeds []domain.ASIN) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Service.EnqueueSeeds(ctx, seeds)
	})

	g.Go(func() error {
		return c.Service.RunWorkers(ctx, c.Config.Worker.Count)
	})

	if c.Config.Metrics.Port != 0 {
		g.Go(func() error {
			return serveMetrics(ctx, c.Config.Metrics)
		})
	}

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	var err error
	if c.redis != nil {
		err = c.redis.Close()
	}

	log.Info("Container shut down")
	return err
}

func serveMetrics(ctx context.Context, cfg config.MetricsConfig) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("Serving metrics on %s/metrics", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func logAttempt(a client.Attempt) {
	if a.Outcome == client.OutcomeError {
		log.Debugf("Lookup %s (%s) failed on attempt %d: %v", a.Request.ItemID, a.Request.ResponseGroupParam(), a.Number, a.Err)
	}
}
