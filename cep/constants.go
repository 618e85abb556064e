package cep

import "math"

// Program constants. They are referenced, never duplicated, by every optimizer.
const (
	// ClaimingPercMultiplier converts an ISP into a free-claiming rate.
	ClaimingPercMultiplier = 1.6

	// MaxClaimingPercentage caps the free-claiming rate.
	MaxClaimingPercentage = 1.0

	// MinimumISP is the eligibility threshold; below it the claiming rate is 0.
	MinimumISP = 0.25

	// ThresholdISP is the ISP at which a group is fully funded (0.625 × 1.6 = 1).
	ThresholdISP = 0.625

	// ServingDays is the number of annual serving days.
	ServingDays = 180

	// BreakfastEstParticipation estimates daily breakfasts as a share of enrollment.
	BreakfastEstParticipation = 0.5

	// LunchEstParticipation estimates daily lunches as a share of enrollment.
	LunchEstParticipation = 0.5

	// CertifiedLunchBonus is the per-lunch bonus paid to certified sponsors.
	CertifiedLunchBonus = 0.07

	// FreeBreakfastRate is the reimbursement per breakfast claimed as free.
	FreeBreakfastRate = 2.28

	// PaidBreakfastRate is the reimbursement per breakfast claimed as paid.
	PaidBreakfastRate = 0.38

	// FreeLunchRate is the reimbursement per lunch claimed as free.
	FreeLunchRate = 4.27

	// PaidLunchRate is the reimbursement per lunch claimed as paid.
	PaidLunchRate = 0.42
)

// ispPlaces is the number of decimal places ISP values are rounded to.
const ispPlaces = 4

// IspToFreeRate maps an ISP to its free-claiming rate:
//   - multiply by ClaimingPercMultiplier,
//   - clamp to MaxClaimingPercentage,
//   - force 0 when isp < MinimumISP.
//
// Examples: 0.70 → 1.00, 0.50 → 0.80, 0.25 → 0.40, 0.20 → 0.
//
// Complexity: O(1).
func IspToFreeRate(isp float64) float64 {
	rate := isp * ClaimingPercMultiplier
	if rate > MaxClaimingPercentage {
		rate = MaxClaimingPercentage
	} else if isp < MinimumISP {
		rate = 0
	}

	return rate
}

// Ratio returns round(eligible/enrolled, 4), or 0 when enrolled is 0.
//
// Complexity: O(1).
func Ratio(eligible, enrolled int) float64 {
	if enrolled == 0 {
		return 0
	}

	return Round(float64(eligible)/float64(enrolled), ispPlaces)
}

// Round rounds x to the given number of decimal places, half to even.
//
// Complexity: O(1).
func Round(x float64, places int) float64 {
	if places <= 0 {
		return math.RoundToEven(x)
	}
	p := math.Pow(10, float64(places))

	return math.RoundToEven(x*p) / p
}
