package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
)

// Sample sponsor identity used with SampleRoster.
const (
	SampleSponsorName = "Valley District"
	SampleSponsorCode = "498"
)

// ErrInvalidRoster wraps every roster validation failure.
var ErrInvalidRoster = errors.New("config: invalid roster")

// Roster is the on-disk site list.
//
//	sites:
//	  - code: S1
//	    enrolled: 100
//	    eligible: 10
//	    lunch: 60            # optional, defaults to half of enrolled
//	    rates:               # optional overrides
//	      free_lunch: 4.50
type Roster struct {
	Sites []SiteEntry `yaml:"sites"`
}

// SiteEntry is one roster row.
type SiteEntry struct {
	Code      string     `yaml:"code"`
	Enrolled  int        `yaml:"enrolled"`
	Eligible  int        `yaml:"eligible"`
	Breakfast int        `yaml:"breakfast,omitempty"`
	Lunch     int        `yaml:"lunch,omitempty"`
	Rates     *RateEntry `yaml:"rates,omitempty"`
}

// RateEntry overrides individual meal rates; unset fields keep the program
// defaults.
type RateEntry struct {
	FreeBreakfast *float64 `yaml:"free_breakfast,omitempty"`
	PaidBreakfast *float64 `yaml:"paid_breakfast,omitempty"`
	FreeLunch     *float64 `yaml:"free_lunch,omitempty"`
	PaidLunch     *float64 `yaml:"paid_lunch,omitempty"`
}

// LoadRoster reads a roster file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	return ReadRoster(bytes.NewReader(data))
}

// ReadRoster decodes a roster, rejecting unknown fields.
func ReadRoster(r io.Reader) (*Roster, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var roster Roster
	if err := dec.Decode(&roster); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if err := roster.Validate(); err != nil {
		return nil, err
	}

	return &roster, nil
}

// Validate checks codes and counts. An eligible count above enrolled is
// accepted; Build clamps it to enrolled.
func (r *Roster) Validate() error {
	seen := make(map[string]struct{}, len(r.Sites))
	for i, s := range r.Sites {
		switch {
		case s.Code == "":
			return fmt.Errorf("%w: sites[%d] has no code", ErrInvalidRoster, i)
		case s.Enrolled < 0 || s.Eligible < 0 || s.Breakfast < 0 || s.Lunch < 0:
			return fmt.Errorf("%w: site %s has a negative count", ErrInvalidRoster, s.Code)
		}
		if _, dup := seen[s.Code]; dup {
			return fmt.Errorf("%w: duplicate site code %s", ErrInvalidRoster, s.Code)
		}
		seen[s.Code] = struct{}{}
	}

	return nil
}

// Build validates the roster and returns its sites in file order.
// Eligible counts are clamped to enrolled by cep.NewSite.
func (r *Roster) Build() ([]*cep.Site, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out := make([]*cep.Site, 0, len(r.Sites))
	for _, s := range r.Sites {
		opts := []cep.SiteOption{cep.WithServed(s.Breakfast, s.Lunch)}
		if s.Rates != nil {
			opts = append(opts, cep.WithMealRates(s.Rates.apply(cep.DefaultMealRates())))
		}
		out = append(out, cep.NewSite(s.Code, s.Enrolled, s.Eligible, opts...))
	}

	return out, nil
}

func (e *RateEntry) apply(r cep.MealRates) cep.MealRates {
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{e.FreeBreakfast, &r.FreeBreakfast},
		{e.PaidBreakfast, &r.PaidBreakfast},
		{e.FreeLunch, &r.FreeLunch},
		{e.PaidLunch, &r.PaidLunch},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	return r
}

// SampleRoster returns the twelve-site sample district: 100 students per
// site, eligible counts 10, 15, …, 55, then 11 and 16.
func SampleRoster() *Roster {
	eligible := []int{10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 11, 16}
	r := &Roster{Sites: make([]SiteEntry, len(eligible))}
	for i, e := range eligible {
		r.Sites[i] = SiteEntry{Code: fmt.Sprintf("S%d", i+1), Enrolled: 100, Eligible: e}
	}

	return r
}

// Marshal renders the roster as YAML.
func (r *Roster) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
