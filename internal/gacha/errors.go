package gacha

import "errors"

var (
	// ErrInvalidRarity means the selected tier has no entry in the item pool.
	ErrInvalidRarity = errors.New("rarity is not valid in gacha pool")
	// ErrEmptyPool means the selected tier's pool entry holds no items.
	ErrEmptyPool = errors.New("gacha pool for rarity has no data")
	// ErrRangeMiss means a sampled value fell outside every rarity range.
	ErrRangeMiss = errors.New("invalid gacha pull: no rarity range contains rolled value")

	ErrInvalidWeight = errors.New("invalid weight; must be finite and >= 0")
	ErrEmptyTable    = errors.New("rarity table has no reachable rarity")
)
