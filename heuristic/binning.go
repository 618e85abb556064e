package heuristic

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

// BinningName is the report name of Binning.
const BinningName = "Binning"

// DefaultISPWidth is the default width of one ISP bin.
const DefaultISPWidth = 0.02

// Binning fills bins from the top of the ISP range down.
//
// The first bin ("High-ISP") starts with every site above ThresholdISP and
// takes the highest-ISP remaining sites until its pooled ISP drops below
// ThresholdISP. Each following bin takes sites until its pooled ISP drops
// below (highest remaining ISP − width), and is named after that range.
// Binning stops once a bin floor falls under MinimumISP; what remains goes
// to "The-Rest-Low-ISP". A bin keeps the site that pushed it under its
// floor.
type Binning struct {
	cep.Base
	width float64
}

var _ cep.Strategy = (*Binning)(nil)

// NewBinning reads isp_width (default DefaultISPWidth; must be positive).
func NewBinning(params cep.Params) (*Binning, error) {
	width, err := params.Float("isp_width", DefaultISPWidth)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: isp_width=%v must be positive", cep.ErrBadParam, width)
	}

	return &Binning{Base: cep.NewBase(BinningName, params), width: width}, nil
}

// Width returns the ISP bin width.
func (s *Binning) Width() float64 { return s.width }

// CreateGroups implements cep.Strategy.
func (s *Binning) CreateGroups(_ context.Context, sponsor *cep.Sponsor) error {
	if len(sponsor.Sites) == 0 {
		s.SetGroups(nil)
		return nil
	}

	high, rest := split(sponsor.Sites, cep.ThresholdISP)
	// Ascending, so the highest-ISP site is popped from the end.
	slices.SortStableFunc(rest, func(a, b *cep.Site) int { return cmp.Compare(a.Isp(), b.Isp()) })

	fill := func(target []*cep.Site, floor float64) []*cep.Site {
		for len(rest) > 0 {
			target = append(target, rest[len(rest)-1])
			rest = rest[:len(rest)-1]
			if pooledIsp(target) < floor {
				break
			}
		}
		return target
	}

	level := cep.ThresholdISP
	groups := []*cep.Group{cep.NewGroup(sponsor, "High-ISP", fill(high, level))}
	for len(rest) > 0 && level >= cep.MinimumISP {
		level = rest[len(rest)-1].Isp() - s.width
		name := fmt.Sprintf("ISP-%.2f_to_%.2f", level, level+s.width)
		groups = append(groups, cep.NewGroup(sponsor, name, fill(nil, level)))
	}
	if len(rest) > 0 {
		groups = append(groups, cep.NewGroup(sponsor, "The-Rest-Low-ISP", rest))
	}
	s.SetGroups(groups)

	return nil
}

// pooledIsp is the unrounded eligible/enrolled ratio of sites, 0 without
// enrollment.
func pooledIsp(sites []*cep.Site) float64 {
	var eligible, enrolled int
	for _, s := range sites {
		eligible += s.Eligible()
		enrolled += s.Enrolled()
	}
	if enrolled == 0 {
		return 0
	}

	return float64(eligible) / float64(enrolled)
}
