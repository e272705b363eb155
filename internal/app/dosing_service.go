// Package app holds the application services and business logic.
package app

import (
	"fmt"
	"math"

	"fatrobin/internal/domain"
)

// Item sources say which of the linked item fields the user typed last.
const (
	ItemSourceWeight = "weight"
	ItemSourceCount  = "count"
)

// DosingService turns inputs into the results table shown to the user.
type DosingService struct {
	potencies []domain.Potency
}

// NewDosingService creates a DosingService that falls back to defaults when a
// request does not name its own potencies.
func NewDosingService(defaults []domain.Potency) *DosingService {
	if len(defaults) == 0 {
		defaults = domain.DefaultPotencies
	}
	return &DosingService{potencies: append([]domain.Potency(nil), defaults...)}
}

// DefaultPotencies returns a copy of the service's fallback potency list.
func (s *DosingService) DefaultPotencies() []domain.Potency {
	return append([]domain.Potency(nil), s.potencies...)
}

// CalculateRequest carries a full set of inputs for a one-shot calculation.
type CalculateRequest struct {
	FatPercent          *float64         `json:"fatPercent"`
	DirectPortionWeight *float64         `json:"directPortionWeight"`
	PackageWeight       *float64         `json:"packageWeight"`
	SubUnitsInPackage   *float64         `json:"subUnitsInPackage"`
	ItemWeight          *float64         `json:"itemWeight"`
	ItemCount           *float64         `json:"itemCount"`
	ItemSource          string           `json:"itemSource"`
	Potencies           []domain.Potency `json:"potencies"`
}

// Inputs replays the request through the domain setters. The package weight
// goes in before the item fields, and the field named by ItemSource goes in
// last, so it is the one the other is derived from.
func (r CalculateRequest) Inputs() (domain.Inputs, error) {
	var in domain.Inputs
	set := func(f domain.Field, v *float64) {
		if v != nil {
			_ = in.Set(f, v)
		}
	}
	set(domain.FieldFatPercent, r.FatPercent)
	set(domain.FieldDirectPortionWeight, r.DirectPortionWeight)
	set(domain.FieldPackageWeight, r.PackageWeight)
	set(domain.FieldSubUnitsInPackage, r.SubUnitsInPackage)

	switch r.ItemSource {
	case "", ItemSourceCount:
		set(domain.FieldItemWeight, r.ItemWeight)
		set(domain.FieldItemCount, r.ItemCount)
	case ItemSourceWeight:
		set(domain.FieldItemCount, r.ItemCount)
		set(domain.FieldItemWeight, r.ItemWeight)
	default:
		return domain.Inputs{}, fmt.Errorf("%w: itemSource must be %q or %q", domain.ErrInvalidArgument, ItemSourceWeight, ItemSourceCount)
	}
	return in, nil
}

// Report is the full calculation for one Inputs snapshot.
type Report struct {
	Inputs       domain.InputValues
	Results      domain.Results
	Rows         []Row
	Descriptions Descriptions
}

// Descriptions label the portion methods that are currently usable.
type Descriptions struct {
	DirectWeight    string `json:"directWeight,omitempty"`
	PackageDivision string `json:"packageDivision,omitempty"`
	FoodItem        string `json:"foodItem,omitempty"`
}

// Row is one line of the results table, one per potency. Nil cells are
// unavailable.
type Row struct {
	Potency             domain.Potency
	Label               string
	PortionPills        *int
	GramsPerPill        *float64
	SubPackagePills     *int
	PackagePills        *int
	ItemPills           *int
	ItemsCoveredPerPill *float64
	// ItemsPerPill is the whole number of items one pill covers. It is set
	// only when that number is above one; otherwise ItemPills is the figure
	// to show.
	ItemsPerPill *int
}

// Calculate builds a report from a one-shot request.
func (s *DosingService) Calculate(req CalculateRequest) (*Report, error) {
	in, err := req.Inputs()
	if err != nil {
		return nil, err
	}
	return s.Report(in, req.Potencies)
}

// Report evaluates in for potencies, or for the default list when potencies
// is empty.
func (s *DosingService) Report(in domain.Inputs, potencies []domain.Potency) (*Report, error) {
	if len(potencies) == 0 {
		potencies = s.potencies
	}
	if err := domain.ValidatePotencies(potencies); err != nil {
		return nil, err
	}

	res := domain.Calculate(in, potencies)
	rep := &Report{
		Inputs:  in.Values(),
		Results: res,
		Rows:    make([]Row, len(res.Potencies)),
	}
	rep.Descriptions.DirectWeight, _ = in.DirectWeightDescription()
	rep.Descriptions.PackageDivision, _ = in.PackageDivisionDescription()
	rep.Descriptions.FoodItem, _ = in.FoodItemDescription()

	for i, p := range res.Potencies {
		row := Row{
			Potency:             p,
			Label:               p.Label(),
			PortionPills:        cell(res.PortionPills, i),
			GramsPerPill:        cell(res.GramsPerPill, i),
			SubPackagePills:     cell(res.SubPackagePills, i),
			PackagePills:        cell(res.PackagePills, i),
			ItemPills:           cell(res.ItemPills, i),
			ItemsCoveredPerPill: cell(res.ItemsCoveredPerPill, i),
		}
		if c := row.ItemsCoveredPerPill; c != nil && !math.IsInf(*c, 1) {
			n := int(math.Floor(*c))
			if n > 1 {
				row.ItemsPerPill = &n
			}
		}
		rep.Rows[i] = row
	}
	return rep, nil
}

// CalculateStrict runs the validating calculation. Exactly one of
// portionWeight and portions must be set.
func (s *DosingService) CalculateStrict(req StrictRequest) (*domain.StrictResult, error) {
	potencies := req.Potencies
	if len(potencies) == 0 {
		potencies = s.potencies
	}
	if req.FatPercent == nil || req.PackageWeight == nil {
		return nil, fmt.Errorf("%w: fatPercent and packageWeight are required", domain.ErrInvalidArgument)
	}

	var (
		res domain.StrictResult
		err error
	)
	switch {
	case req.PortionWeight != nil && req.Portions == nil:
		res, err = domain.CalculateStrict(*req.FatPercent, *req.PackageWeight, *req.PortionWeight, potencies)
	case req.Portions != nil && req.PortionWeight == nil:
		res, err = domain.CalculateStrictByCount(*req.FatPercent, *req.PackageWeight, *req.Portions, potencies)
	default:
		return nil, fmt.Errorf("%w: set exactly one of portionWeight and portions", domain.ErrInvalidArgument)
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// StrictRequest is the input to CalculateStrict.
type StrictRequest struct {
	FatPercent    *float64         `json:"fatPercent"`
	PackageWeight *float64         `json:"packageWeight"`
	PortionWeight *float64         `json:"portionWeight"`
	Portions      *float64         `json:"portions"`
	Potencies     []domain.Potency `json:"potencies"`
}

func cell[T int | float64](c domain.Column[T], i int) *T {
	if !c.OK {
		return nil
	}
	v := c.Values[i]
	return &v
}
