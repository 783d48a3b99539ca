// Package smoke drives a running Platos API through a complete dish
// lifecycle and verifies every response.
package smoke

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/okian/platos/internal/domain/model"
	"github.com/okian/platos/pkg/logger"
)

// Runner executes one smoke run.
type Runner struct {
	config *Config
	client *HTTPClient
	log    logger.Logger
	report *Report
}

// NewRunner validates config and prepares a run.
func NewRunner(config *Config, log logger.Logger) (*Runner, error) {
	if config == nil || config.BaseURL == "" {
		return nil, fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	}
	if config.NumDishes < 1 {
		return nil, fmt.Errorf("%w: dishes must be positive", ErrInvalidConfig)
	}
	if log == nil {
		log = logger.Get()
	}
	return &Runner{
		config: config,
		client: newHTTPClient(config.BaseURL, config.Timeout),
		log:    log,
		report: &Report{},
	}, nil
}

// Run executes the complete smoke test.
func Run(ctx context.Context, config *Config) (*Report, error) {
	r, err := NewRunner(config, nil)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Run executes every step and stops at the first failing one.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	r.report.StartTime = time.Now()

	r.log.Info(ctx, "starting platos smoke test",
		logger.String("baseURL", r.config.BaseURL),
		logger.Int("dishes", r.config.NumDishes),
		logger.Int("workers", r.config.Workers),
		logger.String("timeout", r.config.Timeout.String()),
	)

	// Step 1: Check service health
	if err := r.checkHealth(ctx); err != nil {
		return r.report, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Create dishes concurrently
	inputs := generateDishes(r.config.NumDishes)
	created, err := r.createDishes(ctx, inputs)
	if err != nil {
		return r.report, fmt.Errorf("dish creation failed: %w", err)
	}

	// Step 3: Read every dish back
	if err := r.readBack(ctx, created); err != nil {
		return r.report, fmt.Errorf("read-back failed: %w", err)
	}

	// Step 4: Patch the price of every other dish
	if err := r.patchHalf(ctx, created); err != nil {
		return r.report, fmt.Errorf("update failed: %w", err)
	}

	// Step 5: Cross-check the listing and the summary
	if err := r.verifyListing(ctx, created); err != nil {
		return r.report, fmt.Errorf("listing verification failed: %w", err)
	}

	// Step 6: Delete and confirm every dish is gone
	if err := r.deleteDishes(ctx, created); err != nil {
		return r.report, fmt.Errorf("deletion failed: %w", err)
	}
	if err := r.verifyDeleted(ctx, created); err != nil {
		return r.report, fmt.Errorf("deletion verification failed: %w", err)
	}

	r.report.EndTime = time.Now()
	r.report.Duration = r.report.EndTime.Sub(r.report.StartTime)
	r.displayFinalStats(ctx)

	r.log.Info(ctx, "smoke test completed successfully")
	return r.report, nil
}

func (r *Runner) checkHealth(ctx context.Context) error {
	var health healthResponse
	if err := r.client.Do(ctx, http.MethodGet, "/health", nil, &health, http.StatusOK); err != nil {
		return err
	}
	if health.Status != "healthy" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, health.Status)
	}
	r.log.Info(ctx, "service is healthy",
		logger.String("app", health.App),
		logger.String("version", health.Version),
	)
	return nil
}

func (r *Runner) createDishes(ctx context.Context, inputs []model.CreationInput) ([]model.Dish, error) {
	created := make([]model.Dish, len(inputs))
	var mu sync.Mutex

	err := forEach(ctx, r.config.Workers, len(inputs), func(ctx context.Context, i int) error {
		var d model.Dish
		if err := r.client.Do(ctx, http.MethodPost, "/platos/", inputs[i], &d, http.StatusCreated); err != nil {
			return err
		}
		if d.Name != inputs[i].Name || d.Precio != inputs[i].Precio || d.ID < 1 {
			return fmt.Errorf("%w: created %+v from %+v", ErrMismatch, d, inputs[i])
		}
		r.log.Debug(ctx, "dish created", logger.Int("id", d.ID), logger.String("name", d.Name))

		mu.Lock()
		created[i] = d
		r.report.Created++
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := uniqueIDs(created); err != nil {
		return nil, err
	}
	r.log.Info(ctx, "dishes created", logger.Int("count", r.report.Created))
	return created, nil
}

func (r *Runner) readBack(ctx context.Context, dishes []model.Dish) error {
	var mu sync.Mutex
	err := forEach(ctx, r.config.Workers, len(dishes), func(ctx context.Context, i int) error {
		want := dishes[i]
		var got model.Dish
		if err := r.client.Do(ctx, http.MethodGet, dishPath(want.ID), nil, &got, http.StatusOK); err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("%w: read %+v, want %+v", ErrMismatch, got, want)
		}
		mu.Lock()
		r.report.Read++
		mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}
	r.log.Info(ctx, "dishes read back", logger.Int("count", r.report.Read))
	return nil
}

// patchHalf updates the price of every even-indexed dish in place.
func (r *Runner) patchHalf(ctx context.Context, dishes []model.Dish) error {
	var mu sync.Mutex
	err := forEach(ctx, r.config.Workers, len(dishes), func(ctx context.Context, i int) error {
		if i%2 != 0 {
			return nil
		}
		want := dishes[i]
		want.Precio = patchedPrecio(want.Precio)

		var got model.Dish
		body := map[string]float64{"precio": want.Precio}
		if err := r.client.Do(ctx, http.MethodPatch, dishPath(want.ID), body, &got, http.StatusOK); err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("%w: patched %+v, want %+v", ErrMismatch, got, want)
		}

		mu.Lock()
		dishes[i] = got
		r.report.Patched++
		mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}
	r.log.Info(ctx, "dishes updated", logger.Int("count", r.report.Patched))
	return nil
}

func (r *Runner) deleteDishes(ctx context.Context, dishes []model.Dish) error {
	var mu sync.Mutex
	err := forEach(ctx, r.config.Workers, len(dishes), func(ctx context.Context, i int) error {
		if err := r.client.Do(ctx, http.MethodDelete, dishPath(dishes[i].ID), nil, nil, http.StatusNoContent); err != nil {
			return err
		}
		mu.Lock()
		r.report.Deleted++
		mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}
	r.log.Info(ctx, "dishes deleted", logger.Int("count", r.report.Deleted))
	return nil
}

// displayFinalStats logs the final run statistics.
func (r *Runner) displayFinalStats(ctx context.Context) {
	var requestsPerSecond float64
	requests := r.report.Created + r.report.Read + r.report.Patched + r.report.Deleted + r.report.Gone
	if r.report.Duration > 0 {
		requestsPerSecond = float64(requests) / r.report.Duration.Seconds()
	}

	r.log.Info(ctx, "final statistics",
		logger.Int("created", r.report.Created),
		logger.Int("read", r.report.Read),
		logger.Int("patched", r.report.Patched),
		logger.Int("listed", r.report.Listed),
		logger.Int("deleted", r.report.Deleted),
		logger.Int("gone", r.report.Gone),
		logger.String("duration", r.report.Duration.String()),
		logger.Float64("requestsPerSecond", requestsPerSecond),
	)
}

func dishPath(id int) string {
	return "/platos/" + strconv.Itoa(id)
}
