package domain

import "fmt"

// HasDirectWeight reports whether PortionPills is available.
func (in Inputs) HasDirectWeight() bool {
	return in.fatPercent.ok && in.directPortionWeight.ok
}

// HasPackageDivision reports whether SubPackagePills is available.
func (in Inputs) HasPackageDivision() bool {
	_, ok := in.SubUnitWeight()
	return in.fatPercent.ok && ok
}

// HasFoodItem reports whether ItemPills and ItemsCoveredPerPill are available.
func (in Inputs) HasFoodItem() bool {
	_, ok := in.EffectiveItemWeight()
	return in.fatPercent.ok && ok
}

// HasPackage reports whether PackagePills is available.
func (in Inputs) HasPackage() bool {
	return in.fatPercent.ok && in.packageWeight.ok
}

// DirectWeightDescription labels the direct portion, e.g. "Direct weight (50.0g)".
func (in Inputs) DirectWeightDescription() (string, bool) {
	w, ok := in.DirectPortionWeight()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Direct weight (%.1fg)", w), true
}

// PackageDivisionDescription labels one sub-unit of the package.
func (in Inputs) PackageDivisionDescription() (string, bool) {
	w, ok := in.SubUnitWeight()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Per sub-unit (%.1fg each)", w), true
}

// FoodItemDescription labels one food item and says whether its weight was
// typed in or derived from the package.
func (in Inputs) FoodItemDescription() (string, bool) {
	w, ok := in.EffectiveItemWeight()
	if !ok {
		return "", false
	}
	source := "direct"
	if in.effectiveItemWeightDerived() {
		source = "calculated"
	}
	return fmt.Sprintf("Per food item (%.2fg each, %s)", w, source), true
}
