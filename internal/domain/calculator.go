package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Pill arithmetic runs on decimals built from the shortest representation of
// each float, so 7% of 100g is exactly 7g and a ceiling never lands one pill
// high because of binary rounding.

// unitsPerPercentGram is UnitsPerGramFat / 100: units needed per gram of
// product per percent of fat.
var unitsPerPercentGram = decimal.NewFromFloat(UnitsPerGramFat).Shift(-2)

func unitsNeeded(fatPercent, grams float64) decimal.Decimal {
	return decimal.NewFromFloat(fatPercent).
		Mul(decimal.NewFromFloat(grams)).
		Mul(unitsPerPercentGram)
}

var maxPills = decimal.NewFromInt(math.MaxInt)

// ceilDiv returns ceil(units / p) using an exact quotient and remainder. Counts
// past math.MaxInt saturate there.
func ceilDiv(units decimal.Decimal, p Potency) int {
	q, r := units.QuoRem(decimal.NewFromInt(int64(p)), 0)
	if q.GreaterThanOrEqual(maxPills) {
		return math.MaxInt
	}
	n := int(q.IntPart())
	if r.Sign() > 0 {
		n++
	}
	return n
}

// PillsNeeded is the number of pills of potency p covering grams of product
// with fatPercent grams of fat per 100g. It always rounds up.
func PillsNeeded(fatPercent, grams float64, p Potency) int {
	return ceilDiv(unitsNeeded(fatPercent, grams), p)
}

func pillsFor(fatPercent, grams float64, potencies []Potency) []int {
	units := unitsNeeded(fatPercent, grams)
	out := make([]int, len(potencies))
	for i, p := range potencies {
		out[i] = ceilDiv(units, p)
	}
	return out
}

// PortionPills returns pills per potency for the directly entered portion.
// ok is false unless fatPercent and directPortionWeight are known.
func PortionPills(in Inputs, potencies []Potency) (pills []int, ok bool) {
	fat, okFat := in.FatPercent()
	w, okW := in.DirectPortionWeight()
	if !okFat || !okW {
		return nil, false
	}
	return pillsFor(fat, w, potencies), true
}

// GramsPerPill returns, per potency, the whole grams of product one pill
// covers, rounded down. With zero fat a pill covers any amount and the value
// is +Inf. ok is false unless fatPercent is known.
func GramsPerPill(in Inputs, potencies []Potency) (grams []float64, ok bool) {
	fat, okFat := in.FatPercent()
	if !okFat {
		return nil, false
	}
	out := make([]float64, len(potencies))
	if fat == 0 {
		for i := range out {
			out[i] = math.Inf(1)
		}
		return out, true
	}
	// floor((p / UnitsPerGramFat) / (fat / 100)) == floor(p / (fat * unitsPerPercentGram))
	perGram := decimal.NewFromFloat(fat).Mul(unitsPerPercentGram)
	for i, p := range potencies {
		q, _ := decimal.NewFromInt(int64(p)).QuoRem(perGram, 0)
		out[i] = clampFloat(q)
	}
	return out, true
}

// SubPackagePills returns pills per potency for one sub-unit of the package.
// ok is false unless fatPercent, packageWeight and subUnitsInPackage are known.
func SubPackagePills(in Inputs, potencies []Potency) (pills []int, ok bool) {
	fat, okFat := in.FatPercent()
	w, okW := in.SubUnitWeight()
	if !okFat || !okW {
		return nil, false
	}
	return pillsFor(fat, w, potencies), true
}

// PackagePills returns pills per potency for the whole package.
// ok is false unless fatPercent and packageWeight are known.
func PackagePills(in Inputs, potencies []Potency) (pills []int, ok bool) {
	fat, okFat := in.FatPercent()
	w, okW := in.PackageWeight()
	if !okFat || !okW {
		return nil, false
	}
	return pillsFor(fat, w, potencies), true
}

// ItemPills returns pills per potency for one food item.
// ok is false unless fatPercent and an effective item weight are known.
func ItemPills(in Inputs, potencies []Potency) (pills []int, ok bool) {
	fat, okFat := in.FatPercent()
	w, okW := in.EffectiveItemWeight()
	if !okFat || !okW {
		return nil, false
	}
	return pillsFor(fat, w, potencies), true
}

// ItemsCoveredPerPill returns, per potency, how many food items one pill
// covers. The ratio is not rounded; callers wanting whole items floor it.
// With zero fat the value is +Inf. ok follows ItemPills.
func ItemsCoveredPerPill(in Inputs, potencies []Potency) (items []float64, ok bool) {
	fat, okFat := in.FatPercent()
	w, okW := in.EffectiveItemWeight()
	if !okFat || !okW {
		return nil, false
	}
	units := unitsNeeded(fat, w)
	// Keep 16 significant digits however large units is.
	prec := int32(16)
	if n := units.NumDigits() + int(units.Exponent()); n > 0 {
		prec += int32(n)
	}
	out := make([]float64, len(potencies))
	for i, p := range potencies {
		if units.IsZero() {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = clampFloat(decimal.NewFromInt(int64(p)).DivRound(units, prec))
	}
	return out, true
}

// clampFloat converts d to float64, clamping at math.MaxFloat64. +Inf is reserved
// for zero fat.
func clampFloat(d decimal.Decimal) float64 {
	return math.Min(d.InexactFloat64(), math.MaxFloat64)
}

// Column is one calculator view over a potency list. Values is nil when OK is
// false.
type Column[T int | float64] struct {
	Values []T
	OK     bool
}

func column[T int | float64](v []T, ok bool) Column[T] {
	return Column[T]{Values: v, OK: ok}
}

// Results holds every calculator view for one Inputs snapshot.
type Results struct {
	Potencies           []Potency
	PortionPills        Column[int]
	GramsPerPill        Column[float64]
	SubPackagePills     Column[int]
	PackagePills        Column[int]
	ItemPills           Column[int]
	ItemsCoveredPerPill Column[float64]
}

// Calculate evaluates all six views of in for potencies.
func Calculate(in Inputs, potencies []Potency) Results {
	ps := append([]Potency(nil), potencies...)
	return Results{
		Potencies:           ps,
		PortionPills:        column[int](PortionPills(in, ps)),
		GramsPerPill:        column[float64](GramsPerPill(in, ps)),
		SubPackagePills:     column[int](SubPackagePills(in, ps)),
		PackagePills:        column[int](PackagePills(in, ps)),
		ItemPills:           column[int](ItemPills(in, ps)),
		ItemsCoveredPerPill: column[float64](ItemsCoveredPerPill(in, ps)),
	}
}
