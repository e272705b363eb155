package domain_test

import (
	"errors"
	"math"
	"testing"

	"fatrobin/internal/domain"
)

func mustGet(t *testing.T, name string, get func() (float64, bool)) float64 {
	t.Helper()
	v, ok := get()
	if !ok {
		t.Fatalf("%s: expected a value, got absent", name)
	}
	return v
}

func mustBeAbsent(t *testing.T, name string, get func() (float64, bool)) {
	t.Helper()
	if v, ok := get(); ok {
		t.Fatalf("%s: expected absent, got %v", name, v)
	}
}

func TestSetItemWeight_DerivesItemCount(t *testing.T) {
	var in domain.Inputs
	in.SetPackageWeight(120)
	in.SetItemWeight(30)

	if got := mustGet(t, "itemCount", in.ItemCount); got != 4.0 {
		t.Fatalf("itemCount = %v; want 4", got)
	}
}

func TestSetItemCount_DerivesItemWeight(t *testing.T) {
	var in domain.Inputs
	in.SetPackageWeight(120)
	in.SetItemCount(4)

	if got := mustGet(t, "itemWeight", in.ItemWeight); got != 30.0 {
		t.Fatalf("itemWeight = %v; want 30", got)
	}
	if got := mustGet(t, "effectiveItemWeight", in.EffectiveItemWeight); got != 30.0 {
		t.Fatalf("effectiveItemWeight = %v; want 30", got)
	}
}

func TestItemDerivation_LastWriteWins(t *testing.T) {
	const pkg = 500.0
	var in domain.Inputs
	in.SetPackageWeight(pkg)

	for _, x := range []float64{50, 62.5, 125, 7} {
		in.SetItemWeight(x)
		if got := mustGet(t, "itemCount", in.ItemCount); got != pkg/x {
			t.Fatalf("after itemWeight=%v: itemCount = %v; want %v", x, got, pkg/x)
		}
	}
	for _, n := range []float64{4, 10, 3} {
		in.SetItemCount(n)
		if got := mustGet(t, "itemWeight", in.ItemWeight); got != pkg/n {
			t.Fatalf("after itemCount=%v: itemWeight = %v; want %v", n, got, pkg/n)
		}
		if got := mustGet(t, "effectiveItemWeight", in.EffectiveItemWeight); got != pkg/n {
			t.Fatalf("after itemCount=%v: effectiveItemWeight = %v; want %v", n, got, pkg/n)
		}
	}
	in.SetItemWeight(25)
	if got := mustGet(t, "itemCount", in.ItemCount); got != 20 {
		t.Fatalf("itemCount = %v; want 20", got)
	}
}

func TestEffectiveItemWeight(t *testing.T) {
	var in domain.Inputs
	in.SetPackageWeight(120)
	in.SetItemCount(4)
	if got := mustGet(t, "effectiveItemWeight", in.EffectiveItemWeight); got != 30.0 {
		t.Fatalf("effectiveItemWeight = %v; want 30", got)
	}

	in.SetItemWeight(25)
	if got := mustGet(t, "itemCount", in.ItemCount); got != 4.8 {
		t.Fatalf("itemCount = %v; want 4.8", got)
	}
	if got := mustGet(t, "effectiveItemWeight", in.EffectiveItemWeight); got != 25.0 {
		t.Fatalf("effectiveItemWeight = %v; want 25", got)
	}

	in.Clear()
	in.SetItemWeight(25)
	if got := mustGet(t, "effectiveItemWeight", in.EffectiveItemWeight); got != 25.0 {
		t.Fatalf("effectiveItemWeight without package = %v; want 25", got)
	}
}

func TestNoDerivationWithoutPackage(t *testing.T) {
	var in domain.Inputs
	in.SetItemWeight(30)
	mustBeAbsent(t, "itemCount", in.ItemCount)

	in.SetItemCount(4)
	if got := mustGet(t, "itemWeight", in.ItemWeight); got != 30 {
		t.Fatalf("itemWeight = %v; want the original 30", got)
	}
}

func TestNoDerivationFromNonPositive(t *testing.T) {
	var in domain.Inputs
	in.SetPackageWeight(120)

	in.SetItemWeight(0)
	mustBeAbsent(t, "itemWeight", in.ItemWeight)
	mustBeAbsent(t, "itemCount", in.ItemCount)

	in.SetItemWeight(-5)
	mustBeAbsent(t, "itemWeight", in.ItemWeight)
	mustBeAbsent(t, "itemCount", in.ItemCount)

	in.SetItemCount(4)
	in.SetItemCount(-1)
	mustBeAbsent(t, "itemCount", in.ItemCount)
	if got := mustGet(t, "itemWeight", in.ItemWeight); got != 30 {
		t.Fatalf("itemWeight = %v; want 30 left over from the earlier count", got)
	}
}

func TestSetPackageWeight_DoesNotRederive(t *testing.T) {
	var in domain.Inputs
	in.SetPackageWeight(120)
	in.SetItemCount(4)
	in.SetPackageWeight(200)

	if got := mustGet(t, "itemWeight", in.ItemWeight); got != 30 {
		t.Fatalf("itemWeight = %v; want 30", got)
	}
	if got := mustGet(t, "effectiveItemWeight", in.EffectiveItemWeight); got != 50 {
		t.Fatalf("effectiveItemWeight = %v; want 50", got)
	}
}

func TestSetterFiltering(t *testing.T) {
	tests := []struct {
		name  string
		set   func(*domain.Inputs, float64)
		get   func(domain.Inputs) (float64, bool)
		value float64
		want  bool
	}{
		{"fat zero kept", (*domain.Inputs).SetFatPercent, domain.Inputs.FatPercent, 0, true},
		{"fat negative dropped", (*domain.Inputs).SetFatPercent, domain.Inputs.FatPercent, -1, false},
		{"fat NaN dropped", (*domain.Inputs).SetFatPercent, domain.Inputs.FatPercent, math.NaN(), false},
		{"portion zero dropped", (*domain.Inputs).SetDirectPortionWeight, domain.Inputs.DirectPortionWeight, 0, false},
		{"portion positive kept", (*domain.Inputs).SetDirectPortionWeight, domain.Inputs.DirectPortionWeight, 50, true},
		{"package negative dropped", (*domain.Inputs).SetPackageWeight, domain.Inputs.PackageWeight, -10, false},
		{"package inf dropped", (*domain.Inputs).SetPackageWeight, domain.Inputs.PackageWeight, math.Inf(1), false},
		{"sub-units zero dropped", (*domain.Inputs).SetSubUnitsInPackage, domain.Inputs.SubUnitsInPackage, 0, false},
		{"sub-units negative dropped", (*domain.Inputs).SetSubUnitsInPackage, domain.Inputs.SubUnitsInPackage, -3, false},
		{"sub-units fractional kept", (*domain.Inputs).SetSubUnitsInPackage, domain.Inputs.SubUnitsInPackage, 2.5, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var in domain.Inputs
			tc.set(&in, tc.value)
			if _, ok := tc.get(in); ok != tc.want {
				t.Fatalf("present = %v; want %v", ok, tc.want)
			}
		})
	}
}

func TestBadValueReplacesGoodOne(t *testing.T) {
	var in domain.Inputs
	in.SetSubUnitsInPackage(3)
	in.SetSubUnitsInPackage(0)
	mustBeAbsent(t, "subUnitsInPackage", in.SubUnitsInPackage)
}

func TestSubUnitWeight(t *testing.T) {
	var in domain.Inputs
	mustBeAbsent(t, "subUnitWeight", in.SubUnitWeight)

	in.SetPackageWeight(120)
	mustBeAbsent(t, "subUnitWeight", in.SubUnitWeight)

	in.SetSubUnitsInPackage(3)
	if got := mustGet(t, "subUnitWeight", in.SubUnitWeight); got != 40 {
		t.Fatalf("subUnitWeight = %v; want 40", got)
	}
}

func TestInputsSet(t *testing.T) {
	var in domain.Inputs
	v := func(f float64) *float64 { return &f }

	if err := in.Set(domain.FieldPackageWeight, v(120)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := in.Set(domain.FieldItemCount, v(4)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustGet(t, "itemWeight", in.ItemWeight); got != 30 {
		t.Fatalf("itemWeight = %v; want 30", got)
	}

	if err := in.Set(domain.FieldItemCount, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustBeAbsent(t, "itemCount", in.ItemCount)
	if got := mustGet(t, "itemWeight", in.ItemWeight); got != 30 {
		t.Fatalf("clearing itemCount changed itemWeight to %v", got)
	}

	err := in.Set(domain.Field("sugarPercent"), v(1))
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestValuesAndClear(t *testing.T) {
	var in domain.Inputs
	in.SetFatPercent(10)
	in.SetPackageWeight(120)

	vals := in.Values()
	if vals.FatPercent == nil || *vals.FatPercent != 10 {
		t.Fatalf("FatPercent = %v; want 10", vals.FatPercent)
	}
	if vals.DirectPortionWeight != nil {
		t.Fatalf("DirectPortionWeight = %v; want nil", *vals.DirectPortionWeight)
	}

	in.Clear()
	if in.Values() != (domain.InputValues{}) {
		t.Fatalf("expected every field absent after Clear, got %+v", in.Values())
	}
}
