package app_test

import (
	"errors"
	"slices"
	"testing"

	"fatrobin/internal/app"
	"fatrobin/internal/domain"
)

func f(v float64) *float64 { return &v }

func TestCalculate_Table(t *testing.T) {
	svc := app.NewDosingService(nil)

	rep, err := svc.Calculate(app.CalculateRequest{
		FatPercent:          f(10),
		DirectPortionWeight: f(50),
		PackageWeight:       f(120),
		SubUnitsInPackage:   f(3),
		ItemWeight:          f(25),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Rows) != 2 {
		t.Fatalf("expected 2 rows for the default potencies, got %d", len(rep.Rows))
	}

	r10, r35 := rep.Rows[0], rep.Rows[1]
	if r10.Label != "10k" || r35.Label != "35k" {
		t.Fatalf("unexpected labels %q, %q", r10.Label, r35.Label)
	}
	if *r10.PortionPills != 1 || *r10.PackagePills != 3 || *r35.PackagePills != 1 {
		t.Fatalf("unexpected pill counts: %+v / %+v", r10, r35)
	}
	if *r10.GramsPerPill != 50 || *r35.GramsPerPill != 175 {
		t.Fatalf("unexpected grams per pill: %v / %v", *r10.GramsPerPill, *r35.GramsPerPill)
	}
	// 120g / 25g = 4.8 items, so the effective item is 25g: 5000 units.
	if r10.ItemsPerPill == nil || *r10.ItemsPerPill != 2 {
		t.Fatalf("10k ItemsPerPill = %v; want 2", r10.ItemsPerPill)
	}
	if r35.ItemsPerPill == nil || *r35.ItemsPerPill != 7 {
		t.Fatalf("35k ItemsPerPill = %v; want 7", r35.ItemsPerPill)
	}

	if rep.Descriptions.PackageDivision != "Per sub-unit (40.0g each)" {
		t.Fatalf("unexpected description %q", rep.Descriptions.PackageDivision)
	}
}

func TestCalculate_ItemsPerPillOnlyAboveOne(t *testing.T) {
	svc := app.NewDosingService(nil)
	// 60g item at 20% fat: 24000 units per item.
	rep, err := svc.Calculate(app.CalculateRequest{FatPercent: f(20), ItemWeight: f(60)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range rep.Rows {
		if r.ItemsPerPill != nil {
			t.Fatalf("%s: ItemsPerPill = %d; want nil", r.Label, *r.ItemsPerPill)
		}
	}
	if *rep.Rows[0].ItemPills != 3 || *rep.Rows[1].ItemPills != 1 {
		t.Fatalf("unexpected item pills %d / %d", *rep.Rows[0].ItemPills, *rep.Rows[1].ItemPills)
	}
}

func TestCalculate_UnavailableCellsAreNil(t *testing.T) {
	svc := app.NewDosingService(nil)
	rep, err := svc.Calculate(app.CalculateRequest{DirectPortionWeight: f(50)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range rep.Rows {
		if r.PortionPills != nil || r.GramsPerPill != nil || r.PackagePills != nil {
			t.Fatalf("expected nil cells without fat content, got %+v", r)
		}
	}
	if rep.Descriptions.DirectWeight != "Direct weight (50.0g)" {
		t.Fatalf("unexpected description %q", rep.Descriptions.DirectWeight)
	}
}

func TestCalculateRequest_ItemSource(t *testing.T) {
	base := app.CalculateRequest{PackageWeight: f(120), ItemWeight: f(30), ItemCount: f(6)}

	tests := []struct {
		source     string
		wantWeight float64
		wantCount  float64
	}{
		{"", 20, 6},
		{app.ItemSourceCount, 20, 6},
		{app.ItemSourceWeight, 30, 4},
	}
	for _, tc := range tests {
		t.Run("source="+tc.source, func(t *testing.T) {
			req := base
			req.ItemSource = tc.source
			in, err := req.Inputs()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			w, _ := in.ItemWeight()
			n, _ := in.ItemCount()
			if w != tc.wantWeight || n != tc.wantCount {
				t.Fatalf("itemWeight=%v itemCount=%v; want %v, %v", w, n, tc.wantWeight, tc.wantCount)
			}
		})
	}

	req := base
	req.ItemSource = "guess"
	if _, err := req.Inputs(); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCalculate_Potencies(t *testing.T) {
	svc := app.NewDosingService([]domain.Potency{25000})

	rep, err := svc.Calculate(app.CalculateRequest{FatPercent: f(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(rep.Results.Potencies, []domain.Potency{25000}) {
		t.Fatalf("expected service defaults, got %v", rep.Results.Potencies)
	}

	rep, err = svc.Calculate(app.CalculateRequest{FatPercent: f(10), Potencies: []domain.Potency{5000, 10000}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(rep.Results.GramsPerPill.Values, []float64{25, 50}) {
		t.Fatalf("GramsPerPill = %v; want [25 50]", rep.Results.GramsPerPill.Values)
	}

	_, err = svc.Calculate(app.CalculateRequest{FatPercent: f(10), Potencies: []domain.Potency{0}})
	if !errors.Is(err, domain.ErrInvalidPotency) {
		t.Fatalf("expected ErrInvalidPotency, got %v", err)
	}
}

func TestCalculateStrict_Service(t *testing.T) {
	svc := app.NewDosingService(nil)

	res, err := svc.CalculateStrict(app.StrictRequest{FatPercent: f(10), PackageWeight: f(100), PortionWeight: f(50)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(res.Pills, []int{1, 1}) {
		t.Fatalf("Pills = %v; want [1 1]", res.Pills)
	}

	res, err = svc.CalculateStrict(app.StrictRequest{FatPercent: f(10), PackageWeight: f(120), Portions: f(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PortionWeight != 40 {
		t.Fatalf("PortionWeight = %v; want 40", res.PortionWeight)
	}

	bad := []app.StrictRequest{
		{FatPercent: f(10), PackageWeight: f(100), PortionWeight: f(150)},
		{FatPercent: f(10), PackageWeight: f(100)},
		{FatPercent: f(10), PackageWeight: f(100), PortionWeight: f(50), Portions: f(2)},
		{PackageWeight: f(100), PortionWeight: f(50)},
	}
	for i, req := range bad {
		if _, err := svc.CalculateStrict(req); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("case %d: expected ErrInvalidArgument, got %v", i, err)
		}
	}
}
