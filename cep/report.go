package cep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Summary is the serializable view of a strategy's result.
type Summary struct {
	Strategy        string         `yaml:"strategy" json:"strategy"`
	TotalEnrolled   int            `yaml:"total_enrolled" json:"total_enrolled"`
	StudentsCovered int            `yaml:"students_covered" json:"students_covered"`
	ISP             float64        `yaml:"isp" json:"isp"`
	FreeRate        float64        `yaml:"free_rate" json:"free_rate"`
	Reimbursement   float64        `yaml:"reimbursement" json:"reimbursement"`
	Groups          []GroupSummary `yaml:"groups" json:"groups"`
}

// GroupSummary is the serializable view of one group.
type GroupSummary struct {
	Name          string        `yaml:"name" json:"name"`
	ISP           float64       `yaml:"isp" json:"isp"`
	FreeRate      float64       `yaml:"free_rate" json:"free_rate"`
	Enrolled      int           `yaml:"enrolled" json:"enrolled"`
	Covered       int           `yaml:"covered" json:"covered"`
	Reimbursement float64       `yaml:"reimbursement" json:"reimbursement"`
	Sites         []SiteSummary `yaml:"sites" json:"sites"`
}

// SiteSummary is the serializable view of one site claim.
type SiteSummary struct {
	Code          string  `yaml:"code" json:"code"`
	Enrolled      int     `yaml:"enrolled" json:"enrolled"`
	Eligible      int     `yaml:"eligible" json:"eligible"`
	ISP           float64 `yaml:"isp" json:"isp"`
	Reimbursement float64 `yaml:"reimbursement" json:"reimbursement"`
}

// Summarize builds the Summary of st's current groups.
func Summarize(st Strategy) Summary {
	out := Summary{
		Strategy:        st.Name(),
		TotalEnrolled:   st.TotalEnrolled(),
		StudentsCovered: st.StudentsCovered(),
		ISP:             st.ISP(),
		FreeRate:        st.FreeRate(),
		Reimbursement:   st.Reimbursement(),
		Groups:          make([]GroupSummary, 0, len(st.Groups())),
	}
	for _, g := range st.Groups() {
		gs := GroupSummary{
			Name:          g.Name,
			ISP:           g.Isp(),
			FreeRate:      g.FreeRate(),
			Enrolled:      g.TotalEnrolled(),
			Covered:       g.CoveredStudents(),
			Reimbursement: g.EstimateReimbursement(),
			Sites:         make([]SiteSummary, 0, len(g.Sites)),
		}
		for _, c := range g.SiteClaims() {
			gs.Sites = append(gs.Sites, SiteSummary{
				Code:          c.Site.Code(),
				Enrolled:      c.Site.Enrolled(),
				Eligible:      c.Site.Eligible(),
				ISP:           c.Site.Isp(),
				Reimbursement: c.Reimbursement,
			})
		}
		out.Groups = append(out.Groups, gs)
	}

	return out
}

// Report renders the text block printed for the winning strategy.
func Report(st Strategy) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Best Strategy: %s\n", st.Name())
	fmt.Fprintf(&b, "Total Enrolled: %d\n", st.TotalEnrolled())
	fmt.Fprintf(&b, "Students Covered: %d\n", st.StudentsCovered())
	fmt.Fprintf(&b, "ISP: %.2f%%\n", st.ISP()*100)
	fmt.Fprintf(&b, "Free Rate: %.2f%%\n", st.FreeRate()*100)
	fmt.Fprintf(&b, "Reimbursement: %s\n", FormatDollars(st.Reimbursement()))
	fmt.Fprintf(&b, "Groups: %d\n", len(st.Groups()))

	for _, g := range st.Groups() {
		fmt.Fprintf(&b, "  %s\n", g)
		for _, c := range g.SiteClaims() {
			fmt.Fprintf(&b, "    %-12s enrolled=%-6d eligible=%-6d isp=%.4f reimbursement=%s\n",
				c.Site.Code(), c.Site.Enrolled(), c.Site.Eligible(), c.Site.Isp(), FormatDollars(c.Reimbursement))
		}
	}

	return b.String()
}

// FormatDollars renders x as "$1,234,567.89". Negative values get a leading
// minus before the dollar sign.
func FormatDollars(x float64) string {
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	s := strconv.FormatFloat(math.RoundToEven(x*100)/100, 'f', 2, 64)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)

	return b.String()
}
