package cep

import "fmt"

// Sponsor owns a fixed site roster, the certification flag, and the ordered
// list of candidate strategies. After EvaluateStrategies it retains the best.
type Sponsor struct {
	// Name is the display name of the district.
	Name string

	// Code identifies the district.
	Code string

	// Sites is the roster; it must not change during an optimization run.
	Sites []*Site

	// Certified adds CertifiedLunchBonus per lunch to every reimbursement.
	Certified bool

	strategies []Strategy
	best       Strategy
}

// NewSponsor creates a sponsor with an empty roster.
func NewSponsor(name, code string, certified bool) *Sponsor {
	return &Sponsor{Name: name, Code: code, Certified: certified}
}

// AddSite appends sites to the roster.
func (s *Sponsor) AddSite(sites ...*Site) {
	s.Sites = append(s.Sites, sites...)
}

// AddStrategy registers strategies; evaluation follows registration order.
func (s *Sponsor) AddStrategy(strategies ...Strategy) {
	s.strategies = append(s.strategies, strategies...)
}

// Strategies returns the registered strategies in registration order.
func (s *Sponsor) Strategies() []Strategy {
	out := make([]Strategy, len(s.strategies))
	copy(out, s.strategies)

	return out
}

// Best returns the strategy retained by the last evaluation, or nil.
func (s *Sponsor) Best() Strategy { return s.best }

// TotalEnrolled sums enrollment over the roster.
func (s *Sponsor) TotalEnrolled() int {
	var (
		total int
		site  *Site
	)
	for _, site = range s.Sites {
		total += site.enrolled
	}

	return total
}

// StudentsCovered returns the best strategy's covered students (0 before evaluation).
func (s *Sponsor) StudentsCovered() int {
	if s.best == nil {
		return 0
	}

	return s.best.StudentsCovered()
}

// String renders "Name (Code)".
func (s *Sponsor) String() string {
	if s == nil {
		return "<nil sponsor>"
	}

	return fmt.Sprintf("%s (%s)", s.Name, s.Code)
}
