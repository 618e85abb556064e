package cep

import (
	"fmt"
	"math"
)

// Group is an aggregate over an ordered list of sites. Sites is exported and
// mutable: optimizers relocate members in place, and every metric below is
// recomputed from the current members on each call.
type Group struct {
	// Name labels the group in reports.
	Name string

	// Sites are the members, in insertion order.
	Sites []*Site

	sponsor *Sponsor
}

// SiteClaim is the reporting view of a member evaluated at its group's rate.
type SiteClaim struct {
	Site          *Site
	ClaimingRate  float64
	Reimbursement float64
}

// NewGroup creates a group owned by sponsor. The sponsor supplies the
// certification flag at estimation time; a nil sponsor means uncertified.
// The sites slice is used as-is (not copied).
func NewGroup(sponsor *Sponsor, name string, sites []*Site) *Group {
	if sites == nil {
		sites = []*Site{}
	}

	return &Group{Name: name, Sites: sites, sponsor: sponsor}
}

// Len returns the number of member sites.
func (g *Group) Len() int { return len(g.Sites) }

// Sponsor returns the owning sponsor (may be nil).
func (g *Group) Sponsor() *Sponsor { return g.sponsor }

// Certified reports whether the owning sponsor is certified.
func (g *Group) Certified() bool { return g.sponsor != nil && g.sponsor.Certified }

// SiteCodes returns the set of member codes.
func (g *Group) SiteCodes() map[string]struct{} {
	codes := make(map[string]struct{}, len(g.Sites))
	var s *Site
	for _, s = range g.Sites {
		codes[s.code] = struct{}{}
	}

	return codes
}

// TotalEligible sums member eligibility.
func (g *Group) TotalEligible() int {
	var (
		total int
		s     *Site
	)
	for _, s = range g.Sites {
		total += s.eligible
	}

	return total
}

// TotalEnrolled sums member enrollment.
func (g *Group) TotalEnrolled() int {
	var (
		total int
		s     *Site
	)
	for _, s = range g.Sites {
		total += s.enrolled
	}

	return total
}

// DailyBreakfast sums member daily breakfasts.
func (g *Group) DailyBreakfast() int {
	var (
		total int
		s     *Site
	)
	for _, s = range g.Sites {
		total += s.breakfast
	}

	return total
}

// DailyLunch sums member daily lunches.
func (g *Group) DailyLunch() int {
	var (
		total int
		s     *Site
	)
	for _, s = range g.Sites {
		total += s.lunch
	}

	return total
}

// Isp returns round(ΣEligible/ΣEnrolled, 4), 0 when ΣEnrolled == 0.
func (g *Group) Isp() float64 {
	return Ratio(g.TotalEligible(), g.TotalEnrolled())
}

// FreeRate returns IspToFreeRate(Isp()).
func (g *Group) FreeRate() float64 {
	return IspToFreeRate(g.Isp())
}

// CoveredStudents returns round(FreeRate × ΣEnrolled).
func (g *Group) CoveredStudents() int {
	var (
		eligible int
		enrolled int
		s        *Site
	)
	for _, s = range g.Sites {
		eligible += s.eligible
		enrolled += s.enrolled
	}

	return int(math.RoundToEven(IspToFreeRate(Ratio(eligible, enrolled)) * float64(enrolled)))
}

// CepEligible reports whether the group claims at a positive free rate.
func (g *Group) CepEligible() bool { return g.FreeRate() > 0 }

// EstimateReimbursement evaluates every member at the group's free rate and
// sums the results. Sites are not mutated, so the value stays valid until the
// member list changes.
//
// Complexity: O(len(Sites)).
func (g *Group) EstimateReimbursement() float64 {
	var (
		rate      = g.FreeRate()
		certified = g.Certified()
		total     float64
		s         *Site
	)
	if rate <= 0 {
		return 0
	}
	for _, s = range g.Sites {
		total += s.Reimbursement(rate, certified)
	}

	return total
}

// SiteClaims returns each member evaluated at the group's free rate.
func (g *Group) SiteClaims() []SiteClaim {
	var (
		rate      = g.FreeRate()
		certified = g.Certified()
		out       = make([]SiteClaim, 0, len(g.Sites))
		s         *Site
	)
	for _, s = range g.Sites {
		out = append(out, SiteClaim{
			Site:          s,
			ClaimingRate:  rate,
			Reimbursement: s.Reimbursement(rate, certified),
		})
	}

	return out
}

// Clone returns a group with the same name and sponsor and a copied member list.
func (g *Group) Clone() *Group {
	sites := make([]*Site, len(g.Sites))
	copy(sites, g.Sites)

	return &Group{Name: g.Name, Sites: sites, sponsor: g.sponsor}
}

// String renders a one-line group summary.
func (g *Group) String() string {
	if g.TotalEnrolled() == 0 {
		return fmt.Sprintf("%s / %s -- no students enrolled --", g.sponsor, g.Name)
	}

	return fmt.Sprintf("Group: %s ISP=%.0f%% ENROLLED=%d FREE_RATE=%.2f REIMBURSEMENT=%s",
		g.Name, g.Isp()*100, g.TotalEnrolled(), g.FreeRate()*100, FormatDollars(g.EstimateReimbursement()))
}
