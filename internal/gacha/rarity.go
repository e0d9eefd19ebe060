package gacha

import (
	"fmt"
	"strings"
)

// Rarity identifies a reward tier. Higher values rank higher: SSR > SR > R > N.
// The order is used for selection logic only, never for probability.
type Rarity uint8

const (
	N Rarity = iota
	R
	SR
	SSR
)

// Top is the tier guaranteed by hard pity.
const Top = SSR

// Rarities lists every tier from best to worst.
var Rarities = []Rarity{SSR, SR, R, N}

func (r Rarity) String() string {
	switch r {
	case SSR:
		return "SSR"
	case SR:
		return "SR"
	case R:
		return "R"
	case N:
		return "N"
	}
	return fmt.Sprintf("Rarity(%d)", uint8(r))
}

// Below returns the tier immediately under r. N has nothing below it.
func (r Rarity) Below() (Rarity, bool) {
	if r == N || r > SSR {
		return 0, false
	}
	return r - 1, true
}

// AtLeast reports whether r ranks at or above other.
func (r Rarity) AtLeast(other Rarity) bool { return r >= other }

// ParseRarity parses a tier name, case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SSR":
		return SSR, nil
	case "SR":
		return SR, nil
	case "R":
		return R, nil
	case "N":
		return N, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRarity, s)
}

// Item is one drawable reward.
type Item struct {
	Name   string
	Rarity Rarity
}

// ItemPool maps each tier to the items that can be drawn for it.
type ItemPool map[Rarity][]Item
