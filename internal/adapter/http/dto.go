package adapthttp

import (
	"math"
	"time"

	"fatrobin/internal/app"
	"fatrobin/internal/domain"
)

// Coverage figures are +Inf when the food has no fat. JSON cannot carry
// infinities, so those cells go out as null with unboundedCoverage set.

type reportResponse struct {
	Inputs       domain.InputValues `json:"inputs"`
	Potencies    []domain.Potency   `json:"potencies"`
	Results      resultsDTO         `json:"results"`
	Rows         []rowDTO           `json:"rows"`
	Descriptions app.Descriptions   `json:"descriptions"`
}

type resultsDTO struct {
	PortionPills        []int      `json:"portionPills"`
	GramsPerPill        []*float64 `json:"gramsPerPill"`
	SubPackagePills     []int      `json:"subPackagePills"`
	PackagePills        []int      `json:"packagePills"`
	ItemPills           []int      `json:"itemPills"`
	ItemsCoveredPerPill []*float64 `json:"itemsCoveredPerPill"`
	UnboundedCoverage   bool       `json:"unboundedCoverage"`
}

type rowDTO struct {
	Potency             domain.Potency `json:"potency"`
	Label               string         `json:"label"`
	PortionPills        *int           `json:"portionPills"`
	GramsPerPill        *float64       `json:"gramsPerPill"`
	SubPackagePills     *int           `json:"subPackagePills"`
	PackagePills        *int           `json:"packagePills"`
	ItemPills           *int           `json:"itemPills"`
	ItemsCoveredPerPill *float64       `json:"itemsCoveredPerPill"`
	ItemsPerPill        *int           `json:"itemsPerPill"`
}

type sessionResponse struct {
	ID        string         `json:"id"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Report    reportResponse `json:"report"`
}

func pills(c domain.Column[int]) []int {
	if !c.OK {
		return nil
	}
	return c.Values
}

// coverage converts a coverage column, reporting whether any cell was +Inf.
func coverage(c domain.Column[float64]) ([]*float64, bool) {
	if !c.OK {
		return nil, false
	}
	out := make([]*float64, len(c.Values))
	unbounded := false
	for i, v := range c.Values {
		out[i] = finitePtr(v)
		if out[i] == nil {
			unbounded = true
		}
	}
	return out, unbounded
}

func finitePtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func toReportResponse(rep *app.Report) reportResponse {
	res := rep.Results
	grams, ub1 := coverage(res.GramsPerPill)
	items, ub2 := coverage(res.ItemsCoveredPerPill)

	out := reportResponse{
		Inputs:    rep.Inputs,
		Potencies: res.Potencies,
		Results: resultsDTO{
			PortionPills:        pills(res.PortionPills),
			GramsPerPill:        grams,
			SubPackagePills:     pills(res.SubPackagePills),
			PackagePills:        pills(res.PackagePills),
			ItemPills:           pills(res.ItemPills),
			ItemsCoveredPerPill: items,
			UnboundedCoverage:   ub1 || ub2,
		},
		Rows:         make([]rowDTO, len(rep.Rows)),
		Descriptions: rep.Descriptions,
	}
	for i, r := range rep.Rows {
		row := rowDTO{
			Potency:         r.Potency,
			Label:           r.Label,
			PortionPills:    r.PortionPills,
			SubPackagePills: r.SubPackagePills,
			PackagePills:    r.PackagePills,
			ItemPills:       r.ItemPills,
			ItemsPerPill:    r.ItemsPerPill,
		}
		if r.GramsPerPill != nil {
			row.GramsPerPill = finitePtr(*r.GramsPerPill)
		}
		if r.ItemsCoveredPerPill != nil {
			row.ItemsCoveredPerPill = finitePtr(*r.ItemsCoveredPerPill)
		}
		out.Rows[i] = row
	}
	return out
}
