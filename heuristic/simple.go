package heuristic

import (
	"cmp"
	"context"
	"slices"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

// Report names.
const (
	OneGroupName = "One Group"
	OneToOneName = "OneToOne"
)

// OneGroup places every site in a single group named "G1".
type OneGroup struct{ cep.Base }

// OneToOne places each site in its own group named after the site code.
type OneToOne struct{ cep.Base }

var (
	_ cep.Strategy = (*OneGroup)(nil)
	_ cep.Strategy = (*OneToOne)(nil)
)

// NewOneGroup returns the single-group strategy.
func NewOneGroup(params cep.Params) *OneGroup {
	return &OneGroup{Base: cep.NewBase(OneGroupName, params)}
}

// NewOneToOne returns the one-site-per-group strategy.
func NewOneToOne(params cep.Params) *OneToOne {
	return &OneToOne{Base: cep.NewBase(OneToOneName, params)}
}

// CreateGroups implements cep.Strategy.
func (s *OneGroup) CreateGroups(_ context.Context, sponsor *cep.Sponsor) error {
	if len(sponsor.Sites) == 0 {
		s.SetGroups(nil)
		return nil
	}
	s.SetGroups([]*cep.Group{cep.NewGroup(sponsor, "G1", append([]*cep.Site(nil), sponsor.Sites...))})

	return nil
}

// CreateGroups implements cep.Strategy.
func (s *OneToOne) CreateGroups(_ context.Context, sponsor *cep.Sponsor) error {
	groups := make([]*cep.Group, 0, len(sponsor.Sites))
	for _, site := range sponsor.Sites {
		groups = append(groups, cep.NewGroup(sponsor, site.Code(), []*cep.Site{site}))
	}
	s.SetGroups(groups)

	return nil
}

// byIspDesc returns a copy of sites sorted by ISP, highest first. Ties keep
// roster order.
func byIspDesc(sites []*cep.Site) []*cep.Site {
	out := append([]*cep.Site(nil), sites...)
	slices.SortStableFunc(out, func(a, b *cep.Site) int { return cmp.Compare(b.Isp(), a.Isp()) })

	return out
}

// split partitions sites into those with ISP above threshold and the rest,
// preserving order.
func split(sites []*cep.Site, threshold float64) (high, low []*cep.Site) {
	for _, s := range sites {
		if s.Isp() > threshold {
			high = append(high, s)
		} else {
			low = append(low, s)
		}
	}

	return high, low
}
