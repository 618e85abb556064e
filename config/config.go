// Package config loads run configuration and site rosters.
//
// A run file (YAML, JSON or TOML) is read with viper; every key can be
// overridden from the environment with the CEPGROUP_ prefix, nested keys
// joined by underscores (CEPGROUP_SPONSOR_CERTIFIED=true). Rosters are YAML
// files decoded with yaml.v3.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/strategies"
)

// EnvPrefix is the environment variable prefix for overrides.
const EnvPrefix = "CEPGROUP"

// ErrInvalidConfig wraps every validation failure of a run file.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Run is one evaluation run.
type Run struct {
	Sponsor     SponsorConfig    `mapstructure:"sponsor" yaml:"sponsor"`
	Roster      string           `mapstructure:"roster" yaml:"roster"`           // roster file; empty selects the sample roster
	Objective   string           `mapstructure:"objective" yaml:"objective"`     // reimbursement or coverage
	Concurrency int              `mapstructure:"concurrency" yaml:"concurrency"` // ≤ 1 runs strategies sequentially
	Strategies  []StrategyConfig `mapstructure:"strategies" yaml:"strategies"`
}

// SponsorConfig identifies the sponsor.
type SponsorConfig struct {
	Name      string `mapstructure:"name" yaml:"name"`
	Code      string `mapstructure:"code" yaml:"code"`
	Certified bool   `mapstructure:"certified" yaml:"certified"`
}

// StrategyConfig selects one registered strategy and its parameters.
type StrategyConfig struct {
	Name   string         `mapstructure:"name" yaml:"name"`
	Params map[string]any `mapstructure:"params" yaml:"params,omitempty"`
}

// DefaultStrategies is the strategy list used when a run names none.
func DefaultStrategies() []StrategyConfig {
	return []StrategyConfig{
		{Name: strategies.Exhaustive},
		{Name: strategies.OneGroup},
		{Name: strategies.OneToOne},
		{Name: strategies.Pairs},
		{Name: strategies.Spread},
		{Name: strategies.Binning},
		{Name: strategies.SimulatedAnnealing, Params: map[string]any{
			"fresh_starts": 50,
			"iterations":   1000,
			"ngroups":      nil,
			"tfactor":      1_000_000,
			"annealing":    1,
			"delta_t":      0.01,
			"seed":         38,
			"evaluate_by":  "reimbursement",
		}},
		{Name: strategies.MIPBinGreedy},
	}
}

// Load reads path (may be empty) over the defaults and environment
// overrides, then validates the result.
//
// Errors: file read/parse errors, ErrInvalidConfig.
func Load(path string) (*Run, error) {
	v := viper.New()
	v.SetDefault("sponsor.name", SampleSponsorName)
	v.SetDefault("sponsor.code", SampleSponsorCode)
	v.SetDefault("sponsor.certified", true)
	v.SetDefault("roster", "")
	v.SetDefault("objective", string(cep.ObjectiveReimbursement))
	v.SetDefault("concurrency", 1)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var run Run
	if err := v.Unmarshal(&run); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if len(run.Strategies) == 0 {
		run.Strategies = DefaultStrategies()
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}

	return &run, nil
}

// Validate checks the objective, concurrency and strategy names.
func (r *Run) Validate() error {
	if _, err := r.ObjectiveValue(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if r.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency %d is negative", ErrInvalidConfig, r.Concurrency)
	}
	for i, s := range r.Strategies {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: strategies[%d] has no name", ErrInvalidConfig, i)
		}
	}

	return nil
}

// ObjectiveValue parses Objective. Only comparable objectives are accepted.
func (r *Run) ObjectiveValue() (cep.Objective, error) {
	obj, err := cep.ParseObjective(r.Objective)
	if err != nil {
		return obj, err
	}
	if !obj.Comparable() {
		return obj, fmt.Errorf("%w: %q", cep.ErrUnknownObjective, r.Objective)
	}

	return obj, nil
}

// Entries converts the strategy list for strategies.Registry.NewAll.
func (r *Run) Entries() []strategies.Entry {
	entries := make([]strategies.Entry, len(r.Strategies))
	for i, s := range r.Strategies {
		entries[i] = strategies.Entry{ID: s.Name, Params: cep.Params(s.Params)}
	}

	return entries
}

// NewSponsor returns the configured sponsor holding roster's sites.
func (r *Run) NewSponsor(roster *Roster) (*cep.Sponsor, error) {
	sites, err := roster.Build()
	if err != nil {
		return nil, err
	}
	sp := cep.NewSponsor(r.Sponsor.Name, r.Sponsor.Code, r.Sponsor.Certified)
	sp.AddSite(sites...)

	return sp, nil
}
