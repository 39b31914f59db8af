package service

import (
	"context"
	"time"

	"catalog/relations/internal/config"
	"catalog/relations/internal/domain"
	"catalog/relations/internal/queue"
	"catalog/relations/internal/repository"
	"catalog/relations/internal/state"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolver is the part of the catalog resolver the pipeline drives.
type Resolver interface {
	IsValidID(ctx context.Context, id domain.ASIN) (bool, error)
	ResolveFamily(ctx context.Context, seed domain.ASIN) (domain.Family, error)
	ExtractAttributes(ctx context.Context, id domain.ASIN) (domain.ItemAttributes, error)
	ExtractImages(ctx context.Context, id domain.ASIN) (domain.ImageSet, error)
	AggregateOffers(ctx context.Context, item domain.Item) ([]domain.Offer, error)
}

var tasksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_tasks_processed_total",
	Help: "Tasks handled by pipeline workers, by task type and outcome.",
}, []string{"task_type", "outcome"})

type Service struct {
	repository       repository.CatalogRepository
	resolver         Resolver
	queue            queue.Queue
	stateManager     state.StateManager
	maxItemRetries   int
	maxFamilyRetries int
	claimInterval    time.Duration
}

func NewService(
	repository repository.CatalogRepository,
	resolver Resolver,
	queue queue.Queue,
	stateManager state.StateManager,
	workerCfg config.WorkerConfig,
	redisCfg config.RedisConfig,
) *Service {
	return &Service{
		repository:       repository,
		resolver:         resolver,
		queue:            queue,
		stateManager:     stateManager,
		maxItemRetries:   workerCfg.MaxItemRetries,
		maxFamilyRetries: workerCfg.MaxFamilyRetries,
		claimInterval:    redisCfg.MinIdleTime,
	}
}
