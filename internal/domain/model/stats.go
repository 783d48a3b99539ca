package model

import (
	"math"
	"strconv"
)

// Stats summarizes the prices of the current dishes.
type Stats struct {
	Count   int     `json:"total_platos"`
	Average float64 `json:"precio_promedio"`
	Min     float64 `json:"precio_minimo"`
	Max     float64 `json:"precio_maximo"`
}

// ComputeStats aggregates dishes. An empty slice yields all zeros.
func ComputeStats(dishes []Dish) Stats {
	if len(dishes) == 0 {
		return Stats{}
	}
	s := Stats{
		Count: len(dishes),
		Min:   dishes[0].Precio,
		Max:   dishes[0].Precio,
	}
	var sum float64
	for _, d := range dishes {
		sum += d.Precio
		s.Min = math.Min(s.Min, d.Precio)
		s.Max = math.Max(s.Max, d.Precio)
	}
	s.Average = round2(sum / float64(len(dishes)))
	return s
}

// round2 rounds the exact binary value of x to two decimals, ties to even.
func round2(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}
