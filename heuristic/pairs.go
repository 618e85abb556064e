package heuristic

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

// PairsName is the report name of Pairs.
const PairsName = "Pairs"

// ErrCoverageMismatch is returned when Pairs loses or duplicates a site.
var ErrCoverageMismatch = errors.New("heuristic: grouped sites do not match the roster")

// Pairs matches each high-ISP site with at most one low-ISP partner.
//
// Pass one pairs every site above ThresholdISP with the largest-enrollment
// site at or below it whose pair ISP stays above ThresholdISP. Pass two does
// the same at MinimumISP over the sites still unpaired below the threshold.
// Unmatched high sites become singletons; sites left at or below MinimumISP
// go to "Not CEP Eligible".
type Pairs struct{ cep.Base }

var _ cep.Strategy = (*Pairs)(nil)

// NewPairs returns the pairing strategy.
func NewPairs(params cep.Params) *Pairs {
	return &Pairs{Base: cep.NewBase(PairsName, params)}
}

// CreateGroups implements cep.Strategy.
//
// Errors: ErrCoverageMismatch.
func (s *Pairs) CreateGroups(_ context.Context, sponsor *cep.Sponsor) error {
	sites := byIspDesc(sponsor.Sites)
	groups := make([]*cep.Group, 0, len(sites))

	high, low := splitByEnrollment(sites, cep.ThresholdISP)
	groups, low = match(sponsor, groups, high, low, cep.ThresholdISP)

	high, low = splitByEnrollment(low, cep.MinimumISP)
	groups, low = match(sponsor, groups, high, low, cep.MinimumISP)

	if len(low) > 0 {
		groups = append(groups, cep.NewGroup(sponsor, "Not CEP Eligible", low))
	}

	placed := 0
	for _, g := range groups {
		placed += g.Len()
	}
	if placed != len(sites) {
		return fmt.Errorf("%w: %d grouped, %d on roster", ErrCoverageMismatch, placed, len(sites))
	}
	s.SetGroups(groups)

	return nil
}

// splitByEnrollment splits on threshold and orders the low side by
// enrollment, largest first.
func splitByEnrollment(sites []*cep.Site, threshold float64) (high, low []*cep.Site) {
	high, low = split(sites, threshold)
	slices.SortStableFunc(low, func(a, b *cep.Site) int { return cmp.Compare(b.Enrolled(), a.Enrolled()) })

	return high, low
}

// match pairs each high site with the first low site keeping the pair above
// threshold, and returns the extended groups and the unmatched low sites.
func match(sponsor *cep.Sponsor, groups []*cep.Group, high, low []*cep.Site, threshold float64) ([]*cep.Group, []*cep.Site) {
	for _, h := range high {
		matched := false
		for i, l := range low {
			g := cep.NewGroup(sponsor, "Group-of-"+h.Code(), []*cep.Site{h, l})
			if g.Isp() > threshold {
				groups = append(groups, g)
				low = slices.Delete(low, i, i+1)
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, cep.NewGroup(sponsor, "Singleton-Group-of-"+h.Code(), []*cep.Site{h}))
		}
	}

	return groups, low
}
