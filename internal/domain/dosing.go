// Package domain contains the dosing entities, the pill calculator and the
// session port.
package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// UnitsPerGramFat is the number of absorption units one gram of fat needs.
const UnitsPerGramFat = 2000.0

var (
	// ErrInvalidArgument reports inputs rejected by the strict entry points.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidPotency reports an empty potency list or a non-positive potency.
	ErrInvalidPotency = errors.New("potencies must be a non-empty list of positive integers")
)

// Potency is the number of absorption units delivered by one pill.
type Potency int

// DefaultPotencies are the two pill strengths on the market.
var DefaultPotencies = []Potency{10000, 35000}

// Label renders a potency the way pill boxes are labelled, e.g. "10k" or
// "2.5k".
func (p Potency) Label() string {
	return strconv.FormatFloat(float64(p)/1000, 'f', -1, 64) + "k"
}

// ValidatePotencies checks that ps is usable by the calculator.
func ValidatePotencies(ps []Potency) error {
	if len(ps) == 0 {
		return ErrInvalidPotency
	}
	for _, p := range ps {
		if p <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidPotency, p)
		}
	}
	return nil
}
