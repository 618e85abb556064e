package cep_test

import (
	"context"
	"fmt"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

// fixedStrategy returns a preset grouping; build maps a sponsor to groups.
type fixedStrategy struct {
	cep.Base
	build func(*cep.Sponsor) []*cep.Group
	err   error
	skip  bool
}

func newFixed(name string, build func(*cep.Sponsor) []*cep.Group) *fixedStrategy {
	return &fixedStrategy{Base: cep.NewBase(name, nil), build: build}
}

func (f *fixedStrategy) CreateGroups(_ context.Context, s *cep.Sponsor) error {
	if f.err != nil {
		return f.err
	}
	if f.skip {
		return nil
	}
	f.SetGroups(f.build(s))

	return nil
}

// oneGroup puts every roster site into a single group.
func oneGroup(s *cep.Sponsor) []*cep.Group {
	return []*cep.Group{cep.NewGroup(s, "All", append([]*cep.Site(nil), s.Sites...))}
}

// singletons puts every roster site into its own group.
func singletons(s *cep.Sponsor) []*cep.Group {
	out := make([]*cep.Group, 0, len(s.Sites))
	for i, site := range s.Sites {
		out = append(out, cep.NewGroup(s, fmt.Sprintf("G%d", i), []*cep.Site{site}))
	}

	return out
}

// valleySponsor builds the twelve-site sample district.
func valleySponsor(certified bool) *cep.Sponsor {
	sp := cep.NewSponsor("Valley District", "VD", certified)
	eligible := []int{10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 11, 16}
	for i, e := range eligible {
		sp.AddSite(cep.NewSite(fmt.Sprintf("S%d", i+1), 100, e))
	}

	return sp
}
