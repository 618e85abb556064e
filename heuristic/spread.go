package heuristic

import (
	"context"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

// SpreadName is the report name of Spread.
const SpreadName = "Spread"

// Spread lets each site above ThresholdISP, highest first, absorb the
// highest-ISP remaining low sites while the group ISP stays at or above
// ThresholdISP. Low sites nobody absorbs go to "Remainder".
type Spread struct{ cep.Base }

var _ cep.Strategy = (*Spread)(nil)

// NewSpread returns the spreading strategy.
func NewSpread(params cep.Params) *Spread {
	return &Spread{Base: cep.NewBase(SpreadName, params)}
}

// CreateGroups implements cep.Strategy.
func (s *Spread) CreateGroups(_ context.Context, sponsor *cep.Sponsor) error {
	high, low := split(byIspDesc(sponsor.Sites), cep.ThresholdISP)

	groups := make([]*cep.Group, 0, len(high)+1)
	for _, h := range high {
		g := cep.NewGroup(sponsor, "Group-of-"+h.Code(), []*cep.Site{h})
		for len(low) > 0 {
			g.Sites = append(g.Sites, low[0])
			if g.Isp() < cep.ThresholdISP {
				g.Sites = g.Sites[:len(g.Sites)-1]
				break
			}
			low = low[1:]
		}
		groups = append(groups, g)
	}
	if len(low) > 0 {
		groups = append(groups, cep.NewGroup(sponsor, "Remainder", low))
	}
	s.SetGroups(groups)

	return nil
}
