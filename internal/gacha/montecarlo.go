package gacha

import (
	"fmt"
	"math"
	"sort"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Pulls until the first SSR (hard pity bounds this when configured).
	GoalFirstSSR TrialGoal = "first_ssr"
	// Number of SSRs obtained when the whole budget (Config.Chances) is spent.
	GoalFixedBudget TrialGoal = "fixed_budget"
)

// ParseTrialGoal accepts the goal names above.
func ParseTrialGoal(s string) (TrialGoal, error) {
	switch g := TrialGoal(s); g {
	case GoalFirstSSR, GoalFixedBudget:
		return g, nil
	}
	return "", fmt.Errorf("unknown trial goal %q", s)
}

// SimParams describes the banner for one simulation run.
type SimParams struct {
	Config Config
	// Seed makes runs replicable; trial i uses Seed+i.
	Seed uint64
	// MaxPulls caps GoalFirstSSR when no hard pity is configured. <=0 means 10000.
	MaxPulls int
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Var    float64 `json:"var" yaml:"var"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	P50    float64 `json:"p50" yaml:"p50"`
	P90    float64 `json:"p90" yaml:"p90"`
	P99    float64 `json:"p99" yaml:"p99"`
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-" yaml:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// simulateOne returns the primary metric for one trial depending on the goal.
func simulateOne(p SimParams, goal TrialGoal, seed uint64) (int, error) {
	cfg := p.Config
	if goal == GoalFirstSSR {
		maxPulls := p.MaxPulls
		if maxPulls <= 0 {
			maxPulls = 10000
		}
		cfg.Chances = uint32(maxPulls)
	}
	e, err := NewEngine(cfg, WithRNG(NewSeededRNG(seed)))
	if err != nil {
		return 0, err
	}

	switch goal {
	case GoalFirstSSR:
		draws := 0
		for e.Chances() > 0 {
			items, err := e.Pull(1)
			if err != nil {
				return 0, err
			}
			draws++
			if items[0].Rarity == SSR {
				return draws, nil
			}
		}
		return draws, nil

	case GoalFixedBudget:
		items, err := e.Pull(cfg.Chances)
		if err != nil {
			return 0, err
		}
		count := 0
		for _, it := range items {
			if it.Rarity == SSR {
				count++
			}
		}
		return count, nil
	}

	return 0, fmt.Errorf("unknown trial goal %q", goal)
}

// RunMonteCarlo repeats trials and returns summary stats.
// goal determines what metric is recorded per trial.
func RunMonteCarlo(p SimParams, goal TrialGoal, trials int) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		v, err := simulateOne(p, goal, p.Seed+uint64(i))
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
	}
	return calcStats(samples), nil
}
