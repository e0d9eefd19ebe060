package gacha

import "fmt"

// RarityWeight is one entry of a rarity table.
type RarityWeight struct {
	Rarity Rarity
	Weight float64
}

// RarityTable is the ordered base distribution. Weights need not sum to 1.
type RarityTable []RarityWeight

// DefaultRarityTable is used when no table is configured.
func DefaultRarityTable() RarityTable {
	return RarityTable{
		{SSR, 0.05},
		{SR, 0.2},
		{R, 0.4},
		{N, 0.35},
	}
}

// Total returns the sum of all weights.
func (t RarityTable) Total() float64 {
	var sum float64
	for _, rw := range t {
		sum += rw.Weight
	}
	return sum
}

// Weight returns the weight of the first entry for r, or 0.
func (t RarityTable) Weight(r Rarity) float64 {
	for _, rw := range t {
		if rw.Rarity == r {
			return rw.Weight
		}
	}
	return 0
}

// RarityRange is a tier with its half-open interval [Lo, Hi).
type RarityRange struct {
	Rarity Rarity
	Lo, Hi float64
}

// Contains reports whether lo <= f < hi. Zero-length ranges contain nothing.
func (r RarityRange) Contains(f float64) bool {
	return f >= r.Lo && f < r.Hi
}

// BuildRanges folds a running sum over the table: entry i covers
// [sum of weights before i, that sum + weight i).
func BuildRanges(t RarityTable) []RarityRange {
	out := make([]RarityRange, 0, len(t))
	var sum float64
	for _, rw := range t {
		lo := sum
		hi := lo + rw.Weight
		out = append(out, RarityRange{Rarity: rw.Rarity, Lo: lo, Hi: hi})
		sum = hi
	}
	return out
}

// Locate returns the tier of the first range containing f, in declared order.
func Locate(ranges []RarityRange, f float64) (Rarity, error) {
	for _, rg := range ranges {
		if rg.Contains(f) {
			return rg.Rarity, nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrRangeMiss, f)
}

// span is the end of the last range, i.e. the sampling interval is [0, span).
func span(ranges []RarityRange) float64 {
	if len(ranges) == 0 {
		return 0
	}
	return ranges[len(ranges)-1].Hi
}
