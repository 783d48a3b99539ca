// Package repository holds the dish registry: the store interface, its
// in-memory implementation and the default menu.
package repository

import (
	"context"

	"github.com/okian/platos/internal/domain/model"
)

// Store provides read/write access to the dish registry.
type Store interface {
	// Create validates in, assigns the next id and stores the dish.
	// Returns a *model.ValidationError without consuming an id on failure.
	Create(ctx context.Context, in model.CreationInput) (model.Dish, error)

	// List returns every dish in creation order.
	List(ctx context.Context) []model.Dish

	// Get returns the dish with id or a *model.NotFoundError.
	Get(ctx context.Context, id int) (model.Dish, error)

	// Update assigns the supplied fields of in onto the dish with id.
	// Unknown ids fail with *model.NotFoundError before validation runs;
	// invalid fields fail with *model.ValidationError and leave the dish as is.
	Update(ctx context.Context, id int, in model.UpdateInput) (model.Dish, error)

	// Delete removes the dish with id or returns a *model.NotFoundError.
	Delete(ctx context.Context, id int) error

	// Stats aggregates the prices of the current dishes.
	Stats(ctx context.Context) model.Stats

	// Count returns the number of dishes.
	Count(ctx context.Context) int
}
