package repository

import (
	"context"
	"fmt"

	"github.com/okian/platos/internal/domain/model"
)

// DefaultMenu is the menu a fresh process starts with when seeding is on.
var DefaultMenu = []model.CreationInput{
	{Name: "Spaghetti Carbonara", Precio: 12.50},
	{Name: "Pizza Margherita", Precio: 10.00},
	{Name: "Risotto ai Funghi", Precio: 14.00},
	{Name: "Lasagna Bolognese", Precio: 13.50},
	{Name: "Fettuccine Alfredo", Precio: 11.00},
	{Name: "Osso Buco alla Milanese", Precio: 18.00},
	{Name: "Tiramisu", Precio: 6.50},
}

// SeedMenu creates every dish of menu in order through s.
func SeedMenu(ctx context.Context, s Store, menu []model.CreationInput) ([]model.Dish, error) {
	out := make([]model.Dish, 0, len(menu))
	for _, in := range menu {
		d, err := s.Create(ctx, in)
		if err != nil {
			return out, fmt.Errorf("seed %q: %w", in.Name, err)
		}
		out = append(out, d)
	}
	return out, nil
}
