// resolve.go
package game

import (
	"fmt"

	"github.com/xtding233/gacha-engine/internal/gacha"
)

// Overrides carries per-request values that win over every config layer.
type Overrides struct {
	Chances  *uint32
	SoftPity *uint32
	HardPity *uint32
}

type Resolver interface {
	// Returns merged RawConfig and the engine config built from it
	Resolve(game, pool string, o Overrides) (RawConfig, gacha.Config, error)
}

var _ Resolver = (*Loader)(nil)

// Resolve merges default → game → pool → overrides, fills unset fields from
// gacha.DefaultConfig, validates, and builds the engine config.
func (l *Loader) Resolve(game, pool string, o Overrides) (RawConfig, gacha.Config, error) {
	raw, err := l.LoadMerged(game, pool)
	if err != nil {
		return RawConfig{}, gacha.Config{}, err
	}
	raw = applyDefaults(raw)
	if o.Chances != nil {
		raw.Chances = o.Chances
	}
	if o.SoftPity != nil {
		raw.Pity.Soft = o.SoftPity
	}
	if o.HardPity != nil {
		raw.Pity.Hard = o.HardPity
	}
	if err := ValidateRaw(raw); err != nil {
		return RawConfig{}, gacha.Config{}, fmt.Errorf("%s: %w", cacheKey(game, pool), err)
	}
	cfg, err := ToEngineConfig(raw)
	if err != nil {
		return RawConfig{}, gacha.Config{}, err
	}
	return raw, cfg, nil
}

func applyDefaults(raw RawConfig) RawConfig {
	def := gacha.DefaultConfig()
	if raw.Chances == nil {
		raw.Chances = &def.Chances
	}
	if raw.Pity.Soft == nil {
		raw.Pity.Soft = &def.SoftPity
	}
	if raw.Pity.Hard == nil {
		raw.Pity.Hard = &def.HardPity
	}
	if len(raw.Rarities) == 0 {
		for _, rw := range def.Rarities {
			raw.Rarities = append(raw.Rarities, RarityEntry{Rarity: rw.Rarity.String(), Weight: rw.Weight})
		}
	}
	return raw
}

// ToEngineConfig converts a validated RawConfig. Unset numbers become zero.
func ToEngineConfig(raw RawConfig) (gacha.Config, error) {
	var cfg gacha.Config
	if raw.Chances != nil {
		cfg.Chances = *raw.Chances
	}
	if raw.Pity.Soft != nil {
		cfg.SoftPity = *raw.Pity.Soft
	}
	if raw.Pity.Hard != nil {
		cfg.HardPity = *raw.Pity.Hard
	}
	for _, e := range raw.Rarities {
		r, err := gacha.ParseRarity(e.Rarity)
		if err != nil {
			return gacha.Config{}, err
		}
		cfg.Rarities = append(cfg.Rarities, gacha.RarityWeight{Rarity: r, Weight: e.Weight})
	}
	cfg.Items = make(gacha.ItemPool, len(raw.Items))
	for name, names := range raw.Items {
		r, err := gacha.ParseRarity(name)
		if err != nil {
			return gacha.Config{}, err
		}
		items := make([]gacha.Item, 0, len(names))
		for _, n := range names {
			items = append(items, gacha.Item{Name: n, Rarity: r})
		}
		cfg.Items[r] = items
	}
	return cfg, nil
}
