package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/okian/platos/internal/domain/model"
	"github.com/okian/platos/pkg/metrics"
)

const defaultMetricsUpdateInterval = 10 * time.Second

// MemoryStore is an in-memory Store. One RWMutex guards the map, the
// creation order and the id counter together. Ids are never reused.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[int]model.Dish
	order  []int
	nextID int
	closed bool

	metricsUpdateInterval time.Duration
	stopChan              chan struct{}
	stopOnce              sync.Once
	wg                    sync.WaitGroup
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store whose first id is 1 unless
// WithStartID says otherwise. A background goroutine refreshes the dishes
// gauge until ctx is done or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:                  make(map[int]model.Dish),
		nextID:                1,
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startMetricsUpdater(ctx)
	return s
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, in model.CreationInput) (model.Dish, error) {
	defer observe("create", time.Now())
	if err := in.Validate(); err != nil {
		return model.Dish{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.Dish{}, ErrClosed
	}
	d := model.Dish{ID: s.nextID, Name: in.Name, Precio: in.Precio}
	s.nextID++
	s.byID[d.ID] = d
	s.order = append(s.order, d.ID)
	metrics.SetDishesTotal(len(s.byID))
	return d, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) []model.Dish {
	defer observe("list", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id int) (model.Dish, error) {
	defer observe("get", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[id]
	if !ok {
		return model.Dish{}, &model.NotFoundError{ID: id}
	}
	return d, nil
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, id int, in model.UpdateInput) (model.Dish, error) {
	defer observe("update", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.byID[id]
	if !ok {
		return model.Dish{}, &model.NotFoundError{ID: id}
	}
	if err := in.Validate(); err != nil {
		return model.Dish{}, err
	}
	if s.closed {
		return model.Dish{}, ErrClosed
	}
	d = in.Apply(d)
	s.byID[id] = d
	return d, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id int) error {
	defer observe("delete", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return &model.NotFoundError{ID: id}
	}
	if s.closed {
		return ErrClosed
	}
	delete(s.byID, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	metrics.SetDishesTotal(len(s.byID))
	return nil
}

// Stats implements Store.
func (s *MemoryStore) Stats(_ context.Context) model.Stats {
	defer observe("stats", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.ComputeStats(s.snapshotLocked())
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// NextID returns the id the next Create will assign.
func (s *MemoryStore) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

// Close stops the metrics updater and rejects further writes. Reads keep
// working so in-flight requests can finish during shutdown.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.stopChan)
	})
	s.wg.Wait()
}

// snapshotLocked copies the dishes in creation order. Callers hold mu.
func (s *MemoryStore) snapshotLocked() []model.Dish {
	out := make([]model.Dish, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.SetDishesTotal(s.Count(ctx))
			}
		}
	}()
}

func observe(operation string, start time.Time) {
	metrics.RecordRegistryLatency(operation, float64(time.Since(start).Microseconds())/1000)
}
