package gacha

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var testRarities = RarityTable{
	{SSR, 0.05},
	{N, 0.35},
	{R, 0.4},
	{SR, 0.2},
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func TestBuildRanges(t *testing.T) {
	ranges := BuildRanges(testRarities)
	require.Len(t, ranges, 4)

	type bounds struct{ lo, hi float64 }
	var got []bounds
	for _, rg := range ranges {
		got = append(got, bounds{round2(rg.Lo), round2(rg.Hi)})
	}
	assert.Equal(t, []bounds{{0.00, 0.05}, {0.05, 0.40}, {0.40, 0.80}, {0.80, 1.00}}, got)
	assert.Equal(t, []Rarity{SSR, N, R, SR},
		[]Rarity{ranges[0].Rarity, ranges[1].Rarity, ranges[2].Rarity, ranges[3].Rarity})
}

func TestLocate_BoundaryBelongsToUpperRange(t *testing.T) {
	ranges := BuildRanges(RarityTable{{SSR, 1}, {SR, 2}, {R, 3}})

	r, err := Locate(ranges, 1)
	require.NoError(t, err)
	assert.Equal(t, SR, r, "lower bounds are inclusive")

	r, err = Locate(ranges, 0)
	require.NoError(t, err)
	assert.Equal(t, SSR, r)

	r, err = Locate(ranges, 5.999)
	require.NoError(t, err)
	assert.Equal(t, R, r)
}

func TestLocate_ZeroWeightUnreachable(t *testing.T) {
	ranges := BuildRanges(RarityTable{{SSR, 0}, {SR, 0}, {R, 1}})
	for _, f := range []float64{0, 0.25, 0.5, 0.999} {
		r, err := Locate(ranges, f)
		require.NoError(t, err)
		assert.Equal(t, R, r)
	}
}

func TestLocate_MissFailsLoudly(t *testing.T) {
	ranges := BuildRanges(testRarities)
	_, err := Locate(ranges, span(ranges))
	assert.ErrorIs(t, err, ErrRangeMiss)
	_, err = Locate(ranges, -0.1)
	assert.ErrorIs(t, err, ErrRangeMiss)
	_, err = Locate(nil, 0)
	assert.ErrorIs(t, err, ErrRangeMiss)
}

func TestBuildRanges_ContiguousProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		weights := rapid.SliceOfN(rapid.Float64Range(0, 100), 1, 12).Draw(rt, "weights")
		table := make(RarityTable, len(weights))
		for i, w := range weights {
			table[i] = RarityWeight{Rarity: Rarities[i%len(Rarities)], Weight: w}
		}
		ranges := BuildRanges(table)
		require.Len(rt, ranges, len(table))
		assert.Equal(rt, 0.0, ranges[0].Lo)
		for i, rg := range ranges {
			assert.InDelta(rt, table[i].Weight, rg.Hi-rg.Lo, 1e-9)
			if i > 0 {
				assert.Equal(rt, ranges[i-1].Hi, rg.Lo, "ranges must be contiguous")
			}
		}
		assert.InDelta(rt, table.Total(), span(ranges), 1e-9)
	})
}

func TestValidateTable(t *testing.T) {
	assert.NoError(t, validateTable(DefaultRarityTable()))
	assert.NoError(t, validateTable(RarityTable{{SSR, 0}, {N, 1}}))

	assert.ErrorIs(t, validateTable(nil), ErrEmptyTable)
	assert.ErrorIs(t, validateTable(RarityTable{{SSR, 0}, {N, 0}}), ErrEmptyTable)
	assert.ErrorIs(t, validateTable(RarityTable{{SSR, -0.1}}), ErrInvalidWeight)
	assert.ErrorIs(t, validateTable(RarityTable{{SSR, math.NaN()}}), ErrInvalidWeight)
	assert.ErrorIs(t, validateTable(RarityTable{{SSR, math.Inf(1)}}), ErrInvalidWeight)
	assert.ErrorIs(t, validateTable(RarityTable{{Rarity(9), 1}}), ErrInvalidRarity)
}

func TestParseRarity(t *testing.T) {
	for _, r := range Rarities {
		got, err := ParseRarity(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	got, err := ParseRarity(" ssr ")
	require.NoError(t, err)
	assert.Equal(t, SSR, got)

	_, err = ParseRarity("UR")
	assert.ErrorIs(t, err, ErrInvalidRarity)
}

func TestRarityOrder(t *testing.T) {
	assert.True(t, SSR > SR && SR > R && R > N)
	assert.True(t, SR.AtLeast(SR))
	assert.False(t, R.AtLeast(SR))

	below, ok := SSR.Below()
	assert.True(t, ok)
	assert.Equal(t, SR, below)
	_, ok = N.Below()
	assert.False(t, ok)
}
