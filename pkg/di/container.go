// Package di wires the cache, index, repository, service and batch
// executor into one explicitly constructed object graph, replacing the
// module-level singletons a smaller system might use.
package di

import (
	"log/slog"

	"todocore/batch"
	"todocore/cache"
	"todocore/internal/cacheinfra"
	"todocore/internal/searchinfra"
	"todocore/repository"
	"todocore/search"
	"todocore/service"
)

// Config aggregates the infrastructure configuration for the container.
type Config struct {
	Redis         cacheinfra.Config
	Elasticsearch searchinfra.Config

	// Offline forces the in-process cache and index implementations,
	// skipping both connectivity probes.
	Offline bool
}

// DefaultConfig returns a Config populated from the adapter defaults.
func DefaultConfig() Config {
	return Config{
		Redis:         cacheinfra.DefaultConfig(),
		Elasticsearch: searchinfra.DefaultConfig(),
	}
}

// FromEnv returns a Config populated from the environment.
func FromEnv() Config {
	return Config{
		Redis:         cacheinfra.FromEnv(),
		Elasticsearch: searchinfra.FromEnv(),
	}
}

// Container provides dependency injection for the item system. It owns
// singleton instances of every collaborator; construct it once at
// process start and pass it (or the Service) to callers.
type Container struct {
	cache    cache.Cache
	index    search.Index
	repo     *repository.ItemRepository
	service  *service.ItemService
	executor *batch.Executor
	logger   *slog.Logger
}

// NewContainer builds the object graph. The Redis probe failing is not
// fatal: the cache degrades to the no-op implementation and a warning
// is logged, matching the cache's best-effort contract. An invalid
// Elasticsearch configuration is fatal unless Offline is set, because
// the index is required for mutation correctness.
func NewContainer(cfg Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var itemCache cache.Cache
	var index search.Index

	if cfg.Offline {
		itemCache = cache.NewMemory()
		index = search.NewMemory()
	} else {
		redisCache, err := cacheinfra.NewRedisCache(cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unreachable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
			itemCache = cache.NewNoop()
		} else {
			itemCache = redisCache
		}

		esIndex, err := searchinfra.NewElasticsearchIndex(cfg.Elasticsearch, logger)
		if err != nil {
			return nil, err
		}
		index = esIndex
	}

	repo := repository.New(itemCache, logger)
	svc := service.New(repo, index, itemCache, logger)

	return &Container{
		cache:    itemCache,
		index:    index,
		repo:     repo,
		service:  svc,
		executor: batch.New(svc, logger),
		logger:   logger,
	}, nil
}

// NewContainerWithDefaults builds a container using default configuration.
func NewContainerWithDefaults(logger *slog.Logger) (*Container, error) {
	return NewContainer(DefaultConfig(), logger)
}

// Cache returns the singleton cache instance.
func (c *Container) Cache() cache.Cache { return c.cache }

// Index returns the singleton search index instance.
func (c *Container) Index() search.Index { return c.index }

// Repository returns the singleton item repository.
func (c *Container) Repository() *repository.ItemRepository { return c.repo }

// Service returns the singleton item service.
func (c *Container) Service() *service.ItemService { return c.service }

// Executor returns the singleton batch executor.
func (c *Container) Executor() *batch.Executor { return c.executor }
