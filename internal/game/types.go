// types.go
package game

import "github.com/xtding233/gacha-engine/internal/token"

// Raw config loaded from YAML; mirrors the banner file schema.
// Pointer fields distinguish "unset" from zero so layers can be merged.
type RawConfig struct {
	Version  string        `yaml:"version"`
	Chances  *uint32       `yaml:"chances,omitempty"`
	Pity     PityConfig    `yaml:"pity"`
	Rarities []RarityEntry `yaml:"rarities,omitempty"`
	// Items maps a tier name (SSR, SR, R, N) to the item names of that tier.
	Items  map[string][]string `yaml:"items,omitempty"`
	Tokens *TokenConfig        `yaml:"tokens,omitempty"`
	Notes  string              `yaml:"notes,omitempty"`
}

type PityConfig struct {
	Soft *uint32 `yaml:"soft,omitempty"`
	Hard *uint32 `yaml:"hard,omitempty"`
}

type RarityEntry struct {
	Rarity string  `yaml:"rarity"`
	Weight float64 `yaml:"weight"`
}

type TokenConfig struct {
	Name       string `yaml:"name,omitempty"`
	PerDraw    *int   `yaml:"per_draw"`
	PerTenDraw *int   `yaml:"per_ten_draw"`
}

// Token returns the pricing for this config; the zero Token when unset.
func (c RawConfig) Token() token.Token {
	if c.Tokens == nil {
		return token.Token{}
	}
	t := token.Token{Name: c.Tokens.Name}
	if c.Tokens.PerDraw != nil {
		t.PerDraw = *c.Tokens.PerDraw
	}
	if c.Tokens.PerTenDraw != nil {
		t.PerTenDraw = *c.Tokens.PerTenDraw
	}
	return t
}
