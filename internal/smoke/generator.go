package smoke

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/platos/internal/domain/model"
)

// generateDishes creates n creation inputs with unique names and prices
// between 1.00 and 50.00.
func generateDishes(n int) []model.CreationInput {
	dishes := make([]model.CreationInput, n)
	for i := range dishes {
		dishes[i] = model.CreationInput{
			Name:   namePrefix + uuid.NewString(),
			Precio: randomPrecio(),
		}
	}
	return dishes
}

func randomPrecio() float64 {
	n, err := rand.Int(rand.Reader, big.NewInt(precioCents+1))
	if err != nil {
		return minPrecio
	}
	return minPrecio + float64(n.Int64())/centsPerUnit
}

// patchedPrecio is the price applied to a dish during the update step.
func patchedPrecio(p float64) float64 {
	cents := int64(p*patchMultiplier*centsPerUnit + 0.5)
	return float64(cents) / centsPerUnit
}
