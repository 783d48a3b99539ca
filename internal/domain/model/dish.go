// Package model contains domain models passed between layers.
package model

import (
	"math"
	"unicode/utf8"
)

// Field constraints for a dish.
const (
	NameMinLength = 1
	NameMaxLength = 100
)

// Dish is a menu entry held by the registry.
type Dish struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Precio float64 `json:"precio"`
}

// CreationInput carries the fields required to create a dish.
type CreationInput struct {
	Name   string  `json:"name"`
	Precio float64 `json:"precio"`
}

// Validate checks every field and reports all violations at once.
func (in CreationInput) Validate() error {
	var ve ValidationError
	ve.check("name", validateName(in.Name))
	ve.check("precio", validatePrecio(in.Precio))
	return ve.errOrNil()
}

// UpdateInput carries the fields a caller wants to change. Fields that were
// not supplied are left untouched on the stored dish.
type UpdateInput struct {
	Name   Optional[string]  `json:"name"`
	Precio Optional[float64] `json:"precio"`
}

// Empty reports whether no field was supplied.
func (in UpdateInput) Empty() bool {
	return !in.Name.IsSet() && !in.Precio.IsSet()
}

// Validate checks the supplied fields only. An explicit null is rejected
// since neither field is nullable.
func (in UpdateInput) Validate() error {
	var ve ValidationError
	if in.Name.IsSet() {
		if in.Name.IsNull() {
			ve.add("name", "must not be null")
		} else {
			ve.check("name", validateName(in.Name.Value()))
		}
	}
	if in.Precio.IsSet() {
		if in.Precio.IsNull() {
			ve.add("precio", "must not be null")
		} else {
			ve.check("precio", validatePrecio(in.Precio.Value()))
		}
	}
	return ve.errOrNil()
}

// Apply returns d with the supplied fields assigned. The id never changes.
// Callers validate first.
func (in UpdateInput) Apply(d Dish) Dish {
	if v, ok := in.Name.Get(); ok {
		d.Name = v
	}
	if v, ok := in.Precio.Get(); ok {
		d.Precio = v
	}
	return d
}

func validateName(name string) string {
	n := utf8.RuneCountInString(name)
	switch {
	case n < NameMinLength:
		return "must not be empty"
	case n > NameMaxLength:
		return "must be at most 100 characters"
	}
	return ""
}

func validatePrecio(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "must be a finite number"
	}
	if p <= 0 {
		return "must be greater than 0"
	}
	return ""
}
