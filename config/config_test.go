package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/config"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/strategies"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	run, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.SampleSponsorName, run.Sponsor.Name)
	assert.Equal(t, config.SampleSponsorCode, run.Sponsor.Code)
	assert.True(t, run.Sponsor.Certified)
	assert.Empty(t, run.Roster)
	assert.Equal(t, 1, run.Concurrency)
	assert.Equal(t, config.DefaultStrategies(), run.Strategies)

	obj, err := run.ObjectiveValue()
	require.NoError(t, err)
	assert.Equal(t, cep.ObjectiveReimbursement, obj)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "run.yaml", `
sponsor:
  name: North
  code: "77"
  certified: false
roster: sites.yaml
objective: coverage
concurrency: 3
strategies:
  - name: pairs
  - name: simulated_annealing
    params:
      seed: 7
      fresh_starts: "5"
`)
	run, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.SponsorConfig{Name: "North", Code: "77"}, run.Sponsor)
	assert.Equal(t, "sites.yaml", run.Roster)
	assert.Equal(t, 3, run.Concurrency)

	entries := run.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, strategies.Pairs, entries[0].ID)
	assert.Equal(t, strategies.SimulatedAnnealing, entries[1].ID)
	starts, err := entries[1].Params.Int("fresh_starts", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, starts)

	built, err := strategies.Default(nil).NewAll(entries)
	require.NoError(t, err)
	assert.Len(t, built, 2)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CEPGROUP_OBJECTIVE", "coverage")
	t.Setenv("CEPGROUP_SPONSOR_CERTIFIED", "false")
	t.Setenv("CEPGROUP_CONCURRENCY", "8")

	run, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "coverage", run.Objective)
	assert.False(t, run.Sponsor.Certified)
	assert.Equal(t, 8, run.Concurrency)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"objective":   "objective: schools\n",
		"unknown":     "objective: fastest\n",
		"concurrency": "concurrency: -1\n",
		"strategy":    "strategies:\n  - params: {seed: 1}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "run.yaml", body))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestReadRoster(t *testing.T) {
	r, err := config.ReadRoster(strings.NewReader(`
sites:
  - code: A
    enrolled: 200
    eligible: 150
    lunch: 120
    rates:
      free_lunch: 5.00
  - code: B
    enrolled: 80
    eligible: 20
`))
	require.NoError(t, err)
	sites, err := r.Build()
	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.Equal(t, "A", sites[0].Code())
	assert.Equal(t, 120, sites[0].Lunch())
	assert.Equal(t, 100, sites[0].Breakfast())
	assert.Equal(t, 5.00, sites[0].Rates().FreeLunch)
	assert.Equal(t, cep.FreeBreakfastRate, sites[0].Rates().FreeBreakfast)
	assert.Equal(t, cep.DefaultMealRates(), sites[1].Rates())
	assert.Equal(t, 0.25, sites[1].Isp())

	empty, err := config.ReadRoster(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Sites)
}

func TestReadRosterInvalid(t *testing.T) {
	cases := map[string]string{
		"no code":   "sites:\n  - enrolled: 10\n",
		"negative":  "sites:\n  - code: A\n    enrolled: -1\n",
		"duplicate": "sites:\n  - code: A\n    enrolled: 10\n  - code: A\n    enrolled: 20\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.ReadRoster(strings.NewReader(body))
			require.ErrorIs(t, err, config.ErrInvalidRoster)
		})
	}

	_, err := config.ReadRoster(strings.NewReader("sites:\n  - code: A\n    students: 10\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalidRoster)
}

func TestRosterBuildClampsEligible(t *testing.T) {
	r, err := config.ReadRoster(strings.NewReader("sites:\n  - code: A\n    enrolled: 10\n    eligible: 11\n"))
	require.NoError(t, err)
	sites, err := r.Build()
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, 10, sites[0].Eligible())
	assert.Equal(t, 1.0, sites[0].Isp())
}

func TestLoadRoster(t *testing.T) {
	data, err := config.SampleRoster().Marshal()
	require.NoError(t, err)
	r, err := config.LoadRoster(writeFile(t, "sites.yaml", string(data)))
	require.NoError(t, err)
	assert.Equal(t, config.SampleRoster(), r)

	_, err = config.LoadRoster(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewSponsor(t *testing.T) {
	run, err := config.Load("")
	require.NoError(t, err)
	sp, err := run.NewSponsor(config.SampleRoster())
	require.NoError(t, err)

	assert.Equal(t, config.SampleSponsorName, sp.Name)
	assert.True(t, sp.Certified)
	require.Len(t, sp.Sites, 12)
	assert.Equal(t, 1200, sp.TotalEnrolled())
	assert.Equal(t, "S12", sp.Sites[11].Code())
	assert.Equal(t, 0.16, sp.Sites[11].Isp())
}
