package smoke

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/okian/platos/internal/domain/model"
	"github.com/okian/platos/pkg/logger"
)

// verifyListing checks that every created dish is listed with its current
// values and that the summary matches the listing.
func (r *Runner) verifyListing(ctx context.Context, created []model.Dish) error {
	var list []model.Dish
	if err := r.client.Do(ctx, http.MethodGet, "/platos/", nil, &list, http.StatusOK); err != nil {
		return err
	}
	if err := containsAll(list, created); err != nil {
		return err
	}
	r.report.Listed = len(list)

	var summary model.Stats
	if err := r.client.Do(ctx, http.MethodGet, "/platos/stats/summary", nil, &summary, http.StatusOK); err != nil {
		return err
	}
	if want := model.ComputeStats(list); summary != want {
		return fmt.Errorf("%w: summary %+v, listing gives %+v", ErrMismatch, summary, want)
	}

	r.log.Info(ctx, "listing and summary verified",
		logger.Int("listed", len(list)),
		logger.Float64("average", summary.Average),
	)
	return nil
}

// verifyDeleted checks that every deleted id now answers 404.
func (r *Runner) verifyDeleted(ctx context.Context, deleted []model.Dish) error {
	var mu sync.Mutex
	err := forEach(ctx, r.config.Workers, len(deleted), func(ctx context.Context, i int) error {
		if err := r.client.Do(ctx, http.MethodGet, dishPath(deleted[i].ID), nil, nil, http.StatusNotFound); err != nil {
			return err
		}
		mu.Lock()
		r.report.Gone++
		mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}
	r.log.Info(ctx, "deleted dishes are gone", logger.Int("count", r.report.Gone))
	return nil
}

// containsAll reports a mismatch for any dish of want missing from list or
// listed with different values.
func containsAll(list, want []model.Dish) error {
	byID := make(map[int]model.Dish, len(list))
	for _, d := range list {
		byID[d.ID] = d
	}
	for _, w := range want {
		got, ok := byID[w.ID]
		if !ok {
			return fmt.Errorf("%w: dish %d missing from listing", ErrMismatch, w.ID)
		}
		if got != w {
			return fmt.Errorf("%w: listed %+v, want %+v", ErrMismatch, got, w)
		}
	}
	return nil
}

// uniqueIDs fails when two created dishes share an id.
func uniqueIDs(dishes []model.Dish) error {
	seen := make(map[int]struct{}, len(dishes))
	for _, d := range dishes {
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("%w: id %d assigned twice", ErrMismatch, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}
