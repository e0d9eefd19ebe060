package gacha

import (
	"fmt"
	"math"
)

func validateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return ErrInvalidWeight
	}
	if w < 0 {
		return ErrInvalidWeight
	}
	return nil
}

// validateTable checks every weight and that at least one tier is reachable.
func validateTable(t RarityTable) error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	for i, rw := range t {
		if rw.Rarity > SSR {
			return fmt.Errorf("rarities[%d]: %w: %v", i, ErrInvalidRarity, rw.Rarity)
		}
		if err := validateWeight(rw.Weight); err != nil {
			return fmt.Errorf("rarities[%d] (%v): %w", i, rw.Rarity, err)
		}
	}
	if t.Total() <= 0 || math.IsInf(t.Total(), 0) {
		return ErrEmptyTable
	}
	return nil
}
