package domain

import (
	"fmt"
	"math"
)

// StrictResult is the outcome of a strict calculation for a single portion.
type StrictResult struct {
	Potencies     []Potency `json:"potencies"`
	PortionWeight float64   `json:"portionWeight"`
	// Pills is the number of pills per potency for the portion, rounded up.
	Pills []int `json:"pills"`
	// FatGramsPerPill is the whole grams of fat one pill covers, rounded down.
	FatGramsPerPill []float64 `json:"fatGramsPerPill"`
}

// CalculateStrict computes pills for a portion cut from a package. Unlike the
// Inputs setters, it rejects bad values with ErrInvalidArgument instead of
// treating them as absent.
func CalculateStrict(fatPercent, packageWeight, portionWeight float64, potencies []Potency) (StrictResult, error) {
	switch {
	case math.IsNaN(fatPercent) || math.IsInf(fatPercent, 0):
		return StrictResult{}, fmt.Errorf("%w: fat per 100g must be a finite number", ErrInvalidArgument)
	case fatPercent < 0:
		return StrictResult{}, fmt.Errorf("%w: fat per 100g cannot be negative", ErrInvalidArgument)
	case !(packageWeight > 0) || math.IsInf(packageWeight, 0):
		return StrictResult{}, fmt.Errorf("%w: package weight must be positive", ErrInvalidArgument)
	case !(portionWeight > 0) || math.IsInf(portionWeight, 0):
		return StrictResult{}, fmt.Errorf("%w: portion weight must be positive", ErrInvalidArgument)
	case portionWeight > packageWeight:
		return StrictResult{}, fmt.Errorf("%w: portion weight %g exceeds package weight %g", ErrInvalidArgument, portionWeight, packageWeight)
	}
	if err := ValidatePotencies(potencies); err != nil {
		return StrictResult{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	res := StrictResult{
		Potencies:       append([]Potency(nil), potencies...),
		PortionWeight:   portionWeight,
		Pills:           pillsFor(fatPercent, portionWeight, potencies),
		FatGramsPerPill: make([]float64, len(potencies)),
	}
	for i, p := range potencies {
		res.FatGramsPerPill[i] = math.Floor(float64(p) / UnitsPerGramFat)
	}
	return res, nil
}

// CalculateStrictByCount is CalculateStrict for a package split into portions
// equal parts.
func CalculateStrictByCount(fatPercent, packageWeight, portions float64, potencies []Potency) (StrictResult, error) {
	if !(portions > 0) || math.IsInf(portions, 0) {
		return StrictResult{}, fmt.Errorf("%w: number of portions must be positive", ErrInvalidArgument)
	}
	return CalculateStrict(fatPercent, packageWeight, packageWeight/portions, potencies)
}
