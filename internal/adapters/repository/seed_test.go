package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/platos/internal/domain/model"
)

func TestSeedMenu(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	dishes, err := SeedMenu(ctx, s, DefaultMenu)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(dishes) != 7 {
		t.Fatalf("expected 7 dishes, got %d", len(dishes))
	}
	if dishes[0].ID != 1 || dishes[0].Name != "Spaghetti Carbonara" || dishes[0].Precio != 12.5 {
		t.Errorf("unexpected first dish %+v", dishes[0])
	}
	if dishes[6].ID != 7 || dishes[6].Name != "Tiramisu" {
		t.Errorf("unexpected last dish %+v", dishes[6])
	}
	if s.NextID() != 8 {
		t.Errorf("expected next id 8, got %d", s.NextID())
	}
}

func TestSeedMenu_InvalidEntry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	dishes, err := SeedMenu(ctx, s, []model.CreationInput{{Name: "ok", Precio: 1}, {Name: "", Precio: 1}})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(dishes) != 1 {
		t.Errorf("expected the valid dish to be kept, got %d", len(dishes))
	}
}
