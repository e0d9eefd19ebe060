package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/xtding233/gacha-engine/internal/gacha"
)

// ValidateRaw checks semantic constraints of a merged RawConfig.
// An empty rarity list is allowed; Resolve falls back to the default table.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// rarities
	var total float64
	positive := map[gacha.Rarity]bool{}
	for i, e := range cfg.Rarities {
		r, err := gacha.ParseRarity(e.Rarity)
		if err != nil {
			errs = append(errs, fmt.Sprintf("rarities[%d].rarity %q is not one of SSR, SR, R, N", i, e.Rarity))
			continue
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 {
			errs = append(errs, fmt.Sprintf("rarities[%d].weight must be finite and >= 0", i))
			continue
		}
		total += e.Weight
		if e.Weight > 0 {
			positive[r] = true
		}
	}
	if len(cfg.Rarities) > 0 && total <= 0 {
		errs = append(errs, "rarities must have at least one positive weight")
	}

	// items
	stocked := map[gacha.Rarity]bool{}
	for name, items := range cfg.Items {
		r, err := gacha.ParseRarity(name)
		if err != nil {
			errs = append(errs, fmt.Sprintf("items.%s is not a valid rarity", name))
			continue
		}
		for i, it := range items {
			if strings.TrimSpace(it) == "" {
				errs = append(errs, fmt.Sprintf("items.%s[%d] must not be empty", name, i))
			}
		}
		if len(items) > 0 {
			stocked[r] = true
		}
	}
	// a tier that can be drawn needs something to draw
	for _, r := range gacha.Rarities {
		if positive[r] && !stocked[r] {
			errs = append(errs, fmt.Sprintf("items.%v must not be empty: rarity has positive weight", r))
		}
	}
	if cfg.Pity.Hard != nil && *cfg.Pity.Hard > 0 && !stocked[gacha.SSR] {
		errs = append(errs, "items.SSR must not be empty when pity.hard is set")
	}
	if cfg.Pity.Soft != nil && *cfg.Pity.Soft > 0 && !stocked[gacha.SR] {
		errs = append(errs, "items.SR must not be empty when pity.soft is set")
	}

	// tokens (optional)
	if cfg.Tokens != nil {
		if cfg.Tokens.PerDraw != nil && *cfg.Tokens.PerDraw < 0 {
			errs = append(errs, "tokens.per_draw must be >= 0")
		}
		if cfg.Tokens.PerTenDraw != nil && *cfg.Tokens.PerTenDraw < 0 {
			errs = append(errs, "tokens.per_ten_draw must be >= 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
