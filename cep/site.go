package cep

import (
	"fmt"
	"math"
)

// MealRates is the per-meal reimbursement table of a site.
type MealRates struct {
	FreeBreakfast float64 `yaml:"free_breakfast" json:"free_breakfast"`
	PaidBreakfast float64 `yaml:"paid_breakfast" json:"paid_breakfast"`
	FreeLunch     float64 `yaml:"free_lunch" json:"free_lunch"`
	PaidLunch     float64 `yaml:"paid_lunch" json:"paid_lunch"`
}

// DefaultMealRates returns the program rate table.
func DefaultMealRates() MealRates {
	return MealRates{
		FreeBreakfast: FreeBreakfastRate,
		PaidBreakfast: PaidBreakfastRate,
		FreeLunch:     FreeLunchRate,
		PaidLunch:     PaidLunchRate,
	}
}

// Site is one roster entry. It is immutable after NewSite; every derived
// value is computed from the constructor inputs.
//
// Invariants:
//   - 0 ≤ Eligible() ≤ Enrolled().
//   - Isp() == Ratio(Eligible(), Enrolled()).
type Site struct {
	code      string
	enrolled  int
	eligible  int
	breakfast int
	lunch     int
	isp       float64
	rates     MealRates
}

// siteConfig collects SiteOption values before a Site is built.
type siteConfig struct {
	breakfast int
	lunch     int
	rates     MealRates
}

// SiteOption customizes NewSite.
type SiteOption func(*siteConfig)

// WithServed sets the daily breakfast and lunch counts. A zero count falls
// back to the participation estimate (50% of enrollment).
func WithServed(breakfast, lunch int) SiteOption {
	return func(c *siteConfig) {
		c.breakfast = breakfast
		c.lunch = lunch
	}
}

// WithMealRates overrides the program rate table for a single site.
func WithMealRates(r MealRates) SiteOption {
	return func(c *siteConfig) { c.rates = r }
}

// NewSite builds a Site.
//
// Normalization:
//   - negative counts are treated as 0,
//   - eligible is clamped to enrolled,
//   - breakfast/lunch of 0 default to round(0.5 × enrolled),
//   - Isp is round(eligible/enrolled, 4), 0 when enrolled == 0.
//
// Complexity: O(1).
func NewSite(code string, enrolled, eligible int, opts ...SiteOption) *Site {
	cfg := siteConfig{rates: DefaultMealRates()}
	var opt SiteOption
	for _, opt = range opts {
		opt(&cfg)
	}

	enrolled = max(enrolled, 0)
	eligible = min(max(eligible, 0), enrolled)

	s := &Site{
		code:      code,
		enrolled:  enrolled,
		eligible:  eligible,
		breakfast: max(cfg.breakfast, 0),
		lunch:     max(cfg.lunch, 0),
		rates:     cfg.rates,
	}
	if s.breakfast == 0 {
		s.breakfast = int(math.RoundToEven(float64(enrolled) * BreakfastEstParticipation))
	}
	if s.lunch == 0 {
		s.lunch = int(math.RoundToEven(float64(enrolled) * LunchEstParticipation))
	}
	s.isp = Ratio(eligible, enrolled)

	return s
}

// Code returns the unique site code.
func (s *Site) Code() string { return s.code }

// Enrolled returns the total enrolled count.
func (s *Site) Enrolled() int { return s.enrolled }

// Eligible returns the total eligible count (never above Enrolled).
func (s *Site) Eligible() int { return s.eligible }

// Breakfast returns the daily breakfasts served.
func (s *Site) Breakfast() int { return s.breakfast }

// Lunch returns the daily lunches served.
func (s *Site) Lunch() int { return s.lunch }

// Isp returns the site's own eligibility ratio.
func (s *Site) Isp() float64 { return s.isp }

// Rates returns the site's meal rate table.
func (s *Site) Rates() MealRates { return s.rates }

// Reimbursement returns the annual reimbursement of the site when its meals
// are claimed at rate. It does not mutate the site.
//
// Rule:
//   - rate ≤ 0 ⇒ 0.
//   - otherwise the per-day dollar total (certification bonus included) is
//     rounded to cents, then multiplied by ServingDays.
//
// Complexity: O(1).
func (s *Site) Reimbursement(rate float64, certified bool) float64 {
	if rate <= 0 {
		return 0
	}
	var (
		b = float64(s.breakfast)
		l = float64(s.lunch)
	)
	perDay := b*s.rates.FreeBreakfast*rate +
		b*s.rates.PaidBreakfast*(1-rate) +
		l*s.rates.FreeLunch*rate +
		l*s.rates.PaidLunch*(1-rate)
	if certified {
		perDay += l * CertifiedLunchBonus
	}

	return Round(perDay, 2) * ServingDays
}

// String renders the site without claiming information.
func (s *Site) String() string {
	return fmt.Sprintf("  Site: %s, Enrolled: %d, Eligible: %d, ISP: %.2f%%",
		s.code, s.enrolled, s.eligible, s.isp*100)
}
