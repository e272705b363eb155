package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownField is returned by Inputs.Set for a field name it does not know.
var ErrUnknownField = errors.New("unknown field")

// Field names a single settable input.
type Field string

// Input fields, named as they appear on the wire.
const (
	FieldFatPercent          Field = "fatPercent"
	FieldDirectPortionWeight Field = "directPortionWeight"
	FieldPackageWeight       Field = "packageWeight"
	FieldSubUnitsInPackage   Field = "subUnitsInPackage"
	FieldItemWeight          Field = "itemWeight"
	FieldItemCount           Field = "itemCount"
)

// Fields lists every input field in entry order.
var Fields = []Field{
	FieldFatPercent,
	FieldDirectPortionWeight,
	FieldPackageWeight,
	FieldSubUnitsInPackage,
	FieldItemWeight,
	FieldItemCount,
}

type optional struct {
	v  float64
	ok bool
}

func (o optional) get() (float64, bool) { return o.v, o.ok }

func (o optional) ptr() *float64 {
	if !o.ok {
		return nil
	}
	v := o.v
	return &v
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func nonNegative(v float64) optional {
	if !finite(v) || v < 0 {
		return optional{}
	}
	return optional{v: v, ok: true}
}

func positive(v float64) optional {
	if !finite(v) || v <= 0 {
		return optional{}
	}
	return optional{v: v, ok: true}
}

// Inputs describes one food product and how much of it is eaten. Every field
// is optional; setters drop values that are out of range instead of storing
// them, so a stored value is always usable.
//
// The zero value has every field absent and is ready to use.
type Inputs struct {
	fatPercent          optional
	directPortionWeight optional
	packageWeight       optional
	subUnitsInPackage   optional
	itemWeight          optional
	itemCount           optional
}

// InputValues is the plain view of Inputs. Absent fields are nil.
type InputValues struct {
	FatPercent          *float64 `json:"fatPercent"`
	DirectPortionWeight *float64 `json:"directPortionWeight"`
	PackageWeight       *float64 `json:"packageWeight"`
	SubUnitsInPackage   *float64 `json:"subUnitsInPackage"`
	ItemWeight          *float64 `json:"itemWeight"`
	ItemCount           *float64 `json:"itemCount"`
}

// Values returns a copy of the stored fields.
func (in Inputs) Values() InputValues {
	return InputValues{
		FatPercent:          in.fatPercent.ptr(),
		DirectPortionWeight: in.directPortionWeight.ptr(),
		PackageWeight:       in.packageWeight.ptr(),
		SubUnitsInPackage:   in.subUnitsInPackage.ptr(),
		ItemWeight:          in.itemWeight.ptr(),
		ItemCount:           in.itemCount.ptr(),
	}
}

// FatPercent returns grams of fat per 100g of product.
func (in Inputs) FatPercent() (float64, bool) { return in.fatPercent.get() }

// DirectPortionWeight returns the weight of one portion entered directly.
func (in Inputs) DirectPortionWeight() (float64, bool) { return in.directPortionWeight.get() }

// PackageWeight returns the weight of the whole package.
func (in Inputs) PackageWeight() (float64, bool) { return in.packageWeight.get() }

// SubUnitsInPackage returns the number of equal portions the package splits into.
func (in Inputs) SubUnitsInPackage() (float64, bool) { return in.subUnitsInPackage.get() }

// ItemWeight returns the weight of one food item.
func (in Inputs) ItemWeight() (float64, bool) { return in.itemWeight.get() }

// ItemCount returns the number of food items in the package.
func (in Inputs) ItemCount() (float64, bool) { return in.itemCount.get() }

// SetFatPercent stores v, or clears the field when v is negative.
func (in *Inputs) SetFatPercent(v float64) { in.fatPercent = nonNegative(v) }

// SetDirectPortionWeight stores v, or clears the field when v <= 0.
func (in *Inputs) SetDirectPortionWeight(v float64) { in.directPortionWeight = positive(v) }

// SetPackageWeight stores v, or clears the field when v <= 0. It does not
// touch itemWeight or itemCount.
func (in *Inputs) SetPackageWeight(v float64) { in.packageWeight = positive(v) }

// SetSubUnitsInPackage stores v, or clears the field when v <= 0.
func (in *Inputs) SetSubUnitsInPackage(v float64) { in.subUnitsInPackage = positive(v) }

// SetItemWeight stores v, or clears the field when v <= 0. With a package
// weight present, itemCount is overwritten with packageWeight / v.
func (in *Inputs) SetItemWeight(v float64) {
	in.itemWeight = positive(v)
	w, ok := in.itemWeight.get()
	if !ok {
		return
	}
	if pkg, ok := in.packageWeight.get(); ok {
		in.itemCount = optional{v: pkg / w, ok: true}
	}
}

// SetItemCount stores v, or clears the field when v <= 0. With a package
// weight present, itemWeight is overwritten with packageWeight / v.
func (in *Inputs) SetItemCount(v float64) {
	in.itemCount = positive(v)
	n, ok := in.itemCount.get()
	if !ok {
		return
	}
	if pkg, ok := in.packageWeight.get(); ok {
		in.itemWeight = optional{v: pkg / n, ok: true}
	}
}

// ClearFatPercent marks fatPercent absent.
func (in *Inputs) ClearFatPercent() { in.fatPercent = optional{} }

// ClearDirectPortionWeight marks directPortionWeight absent.
func (in *Inputs) ClearDirectPortionWeight() { in.directPortionWeight = optional{} }

// ClearPackageWeight marks packageWeight absent.
func (in *Inputs) ClearPackageWeight() { in.packageWeight = optional{} }

// ClearSubUnitsInPackage marks subUnitsInPackage absent.
func (in *Inputs) ClearSubUnitsInPackage() { in.subUnitsInPackage = optional{} }

// ClearItemWeight marks itemWeight absent. itemCount is left alone.
func (in *Inputs) ClearItemWeight() { in.itemWeight = optional{} }

// ClearItemCount marks itemCount absent. itemWeight is left alone.
func (in *Inputs) ClearItemCount() { in.itemCount = optional{} }

// Clear resets every field.
func (in *Inputs) Clear() { *in = Inputs{} }

// Set applies v to the named field through its setter. A nil v clears it.
func (in *Inputs) Set(f Field, v *float64) error {
	type pair struct {
		set   func(float64)
		clear func()
	}
	var p pair
	switch f {
	case FieldFatPercent:
		p = pair{in.SetFatPercent, in.ClearFatPercent}
	case FieldDirectPortionWeight:
		p = pair{in.SetDirectPortionWeight, in.ClearDirectPortionWeight}
	case FieldPackageWeight:
		p = pair{in.SetPackageWeight, in.ClearPackageWeight}
	case FieldSubUnitsInPackage:
		p = pair{in.SetSubUnitsInPackage, in.ClearSubUnitsInPackage}
	case FieldItemWeight:
		p = pair{in.SetItemWeight, in.ClearItemWeight}
	case FieldItemCount:
		p = pair{in.SetItemCount, in.ClearItemCount}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if v == nil {
		p.clear()
		return nil
	}
	p.set(*v)
	return nil
}

// EffectiveItemWeight is packageWeight / itemCount when both are known,
// otherwise the stored itemWeight.
func (in Inputs) EffectiveItemWeight() (float64, bool) {
	pkg, okPkg := in.packageWeight.get()
	n, okN := in.itemCount.get()
	if okPkg && okN {
		return pkg / n, true
	}
	return in.itemWeight.get()
}

// effectiveItemWeightDerived reports whether EffectiveItemWeight comes from
// the package split rather than a weight typed in directly.
func (in Inputs) effectiveItemWeightDerived() bool {
	return in.packageWeight.ok && in.itemCount.ok
}

// SubUnitWeight is packageWeight / subUnitsInPackage when both are known.
func (in Inputs) SubUnitWeight() (float64, bool) {
	pkg, okPkg := in.packageWeight.get()
	n, okN := in.subUnitsInPackage.get()
	if !okPkg || !okN {
		return 0, false
	}
	return pkg / n, true
}
