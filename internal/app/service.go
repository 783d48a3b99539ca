// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/platos/internal/adapters/repository"
	"github.com/okian/platos/internal/domain/model"
	"github.com/okian/platos/pkg/logger"
	"github.com/okian/platos/pkg/metrics"
)

// Operation result labels.
const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultError    = "error"
)

// AppInfo describes the running application.
type AppInfo struct {
	Name        string `json:"app"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// Service owns the dish registry for the lifetime of the process.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	ownsStore bool

	info  AppInfo
	seed  bool
	menu  []model.CreationInput
	start int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects the registry instead of creating a MemoryStore on Start.
// The caller keeps ownership of an injected store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeed toggles loading the default menu on Start.
func WithSeed(enabled bool) Option {
	return func(s *Service) {
		s.seed = enabled
	}
}

// WithMenu replaces the menu loaded when seeding is enabled.
func WithMenu(menu []model.CreationInput) Option {
	return func(s *Service) {
		s.menu = menu
	}
}

// WithStartID sets the first id of the store created on Start.
func WithStartID(id int) Option {
	return func(s *Service) {
		if id > 0 {
			s.start = id
		}
	}
}

// WithAppInfo sets the name, description and version reported by Info.
func WithAppInfo(name, description, version string) Option {
	return func(s *Service) {
		if name != "" {
			s.info.Name = name
		}
		if description != "" {
			s.info.Description = description
		}
		if version != "" {
			s.info.Version = version
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		info: AppInfo{
			Name:        "Platos API",
			Description: "A simple dishes CRUD API",
			Version:     "0.1.0",
		},
		menu:  repository.DefaultMenu,
		start: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates the registry if none was injected and seeds it when enabled.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dish registry...")

	if s.store == nil {
		s.store = repository.NewMemoryStore(ctx, repository.WithStartID(s.start))
		s.ownsStore = true
	}
	if s.seed {
		dishes, err := repository.SeedMenu(ctx, s.store, s.menu)
		if err != nil {
			s.releaseStore()
			return fmt.Errorf("seed menu: %w", err)
		}
		s.logger.Info(ctx, "default menu loaded", logger.Int("dishes", len(dishes)))
	}
	metrics.SetDishesTotal(s.store.Count(ctx))

	s.started = true
	s.logger.Info(ctx, "dish registry started",
		logger.String("app", s.info.Name),
		logger.String("version", s.info.Version),
		logger.Bool("seeded", s.seed),
	)
	return nil
}

// Stop releases the registry if the service created it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping dish registry...")
	s.releaseStore()
	s.started = false
	s.logger.Info(context.Background(), "dish registry stopped")
}

// releaseStore closes and forgets a store created by Start. Callers hold mu.
func (s *Service) releaseStore() {
	if !s.ownsStore {
		return
	}
	if closer, ok := s.store.(interface{ Close() }); ok {
		closer.Close()
	}
	s.store = nil
	s.ownsStore = false
}

// Started reports whether Start has completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Info returns the application name, description and version.
func (s *Service) Info() AppInfo {
	return s.info
}

// Create adds a dish.
func (s *Service) Create(ctx context.Context, in model.CreationInput) (model.Dish, error) {
	store, err := s.registry()
	if err != nil {
		return model.Dish{}, err
	}
	d, err := store.Create(ctx, in)
	if err != nil {
		s.recordFailure(ctx, "create", err)
		return model.Dish{}, err
	}
	metrics.RecordRegistryOperation("create", resultOK)
	metrics.RecordDishCreated()
	s.logger.Info(ctx, "dish created",
		logger.Int("id", d.ID),
		logger.String("name", d.Name),
		logger.Float64("precio", d.Precio),
	)
	return d, nil
}

// List returns every dish in creation order.
func (s *Service) List(ctx context.Context) ([]model.Dish, error) {
	store, err := s.registry()
	if err != nil {
		return nil, err
	}
	dishes := store.List(ctx)
	metrics.RecordRegistryOperation("list", resultOK)
	s.logger.Debug(ctx, "dishes listed", logger.Int("count", len(dishes)))
	return dishes, nil
}

// Get returns one dish.
func (s *Service) Get(ctx context.Context, id int) (model.Dish, error) {
	store, err := s.registry()
	if err != nil {
		return model.Dish{}, err
	}
	d, err := store.Get(ctx, id)
	if err != nil {
		s.recordFailure(ctx, "get", err, logger.Int("id", id))
		return model.Dish{}, err
	}
	metrics.RecordRegistryOperation("get", resultOK)
	s.logger.Debug(ctx, "dish fetched", logger.Int("id", id))
	return d, nil
}

// Update applies the supplied fields of in to a dish. PUT and PATCH both
// land here.
func (s *Service) Update(ctx context.Context, id int, in model.UpdateInput) (model.Dish, error) {
	store, err := s.registry()
	if err != nil {
		return model.Dish{}, err
	}
	d, err := store.Update(ctx, id, in)
	if err != nil {
		s.recordFailure(ctx, "update", err, logger.Int("id", id))
		return model.Dish{}, err
	}
	metrics.RecordRegistryOperation("update", resultOK)
	s.logger.Info(ctx, "dish updated",
		logger.Int("id", d.ID),
		logger.Bool("name_set", in.Name.IsSet()),
		logger.Bool("precio_set", in.Precio.IsSet()),
	)
	return d, nil
}

// Delete removes a dish.
func (s *Service) Delete(ctx context.Context, id int) error {
	store, err := s.registry()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		s.recordFailure(ctx, "delete", err, logger.Int("id", id))
		return err
	}
	metrics.RecordRegistryOperation("delete", resultOK)
	metrics.RecordDishDeleted()
	s.logger.Info(ctx, "dish deleted", logger.Int("id", id))
	return nil
}

// Stats summarizes the current prices.
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	store, err := s.registry()
	if err != nil {
		return model.Stats{}, err
	}
	st := store.Stats(ctx)
	metrics.RecordRegistryOperation("stats", resultOK)
	return st, nil
}

// Count returns the number of dishes, zero before Start.
func (s *Service) Count(ctx context.Context) int {
	store, err := s.registry()
	if err != nil {
		return 0
	}
	return store.Count(ctx)
}

func (s *Service) registry() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// recordFailure logs client errors at warn and anything else at error.
func (s *Service) recordFailure(ctx context.Context, op string, err error, fields ...logger.Field) {
	fields = append(fields, logger.String("operation", op), logger.Error(err))

	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		metrics.RecordRegistryOperation(op, resultInvalid)
		for _, f := range ve.Fields {
			metrics.RecordValidationFailure(f.Field)
		}
		s.logger.Warn(ctx, "dish rejected", fields...)
	case errors.Is(err, model.ErrNotFound):
		metrics.RecordRegistryOperation(op, resultNotFound)
		s.logger.Warn(ctx, "dish not found", fields...)
	default:
		metrics.RecordRegistryOperation(op, resultError)
		s.logger.Error(ctx, "registry operation failed", fields...)
	}
}
