package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simConfig() Config {
	cfg := DefaultConfig()
	cfg.Items = testPool()
	return cfg
}

func TestRunMonteCarlo_FirstSSRBoundedByHardPity(t *testing.T) {
	stats, err := RunMonteCarlo(SimParams{Config: simConfig(), Seed: 42}, GoalFirstSSR, 2000)
	require.NoError(t, err)

	assert.Len(t, stats.Samples, 2000)
	for _, s := range stats.Samples {
		assert.GreaterOrEqual(t, s, 1)
		assert.LessOrEqual(t, s, 50, "hard pity caps the wait")
	}
	assert.Greater(t, stats.Mean, 1.0)
	assert.LessOrEqual(t, stats.P50, stats.P90)
	assert.LessOrEqual(t, stats.P90, stats.P99)
}

func TestRunMonteCarlo_Replicable(t *testing.T) {
	p := SimParams{Config: simConfig(), Seed: 9}
	a, err := RunMonteCarlo(p, GoalFirstSSR, 200)
	require.NoError(t, err)
	b, err := RunMonteCarlo(p, GoalFirstSSR, 200)
	require.NoError(t, err)
	assert.Equal(t, a.Samples, b.Samples)
}

func TestRunMonteCarlo_FixedBudgetAllHardPity(t *testing.T) {
	cfg := simConfig()
	cfg.Chances = 30
	cfg.HardPity = 1
	stats, err := RunMonteCarlo(SimParams{Config: cfg, Seed: 1}, GoalFixedBudget, 50)
	require.NoError(t, err)
	assert.Equal(t, 30.0, stats.Mean)
	assert.Equal(t, 0.0, stats.StdDev)
}

func TestRunMonteCarlo_PropagatesPoolErrors(t *testing.T) {
	cfg := simConfig()
	cfg.Items = ItemPool{}
	_, err := RunMonteCarlo(SimParams{Config: cfg}, GoalFixedBudget, 10)
	assert.ErrorIs(t, err, ErrInvalidRarity)
}

func TestRunMonteCarlo_NoTrials(t *testing.T) {
	stats, err := RunMonteCarlo(SimParams{Config: simConfig()}, GoalFirstSSR, 0)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestCalcStats(t *testing.T) {
	s := calcStats([]int{1, 2, 3, 4})
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.25, s.Var, 1e-12)
	assert.InDelta(t, 2.5, s.P50, 1e-12)
	assert.InDelta(t, 3.97, s.P99, 1e-12)
}

func TestParseTrialGoal(t *testing.T) {
	g, err := ParseTrialGoal("first_ssr")
	require.NoError(t, err)
	assert.Equal(t, GoalFirstSSR, g)
	_, err = ParseTrialGoal("first_up")
	assert.Error(t, err)
}
