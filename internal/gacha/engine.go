package gacha

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Config is the plain configuration an engine is built from.
type Config struct {
	Chances  uint32 // remaining allowed draws
	SoftPity uint32 // soft pity threshold, forces SR
	HardPity uint32 // hard pity threshold, forces SSR
	Rarities RarityTable
	Items    ItemPool
}

// DefaultConfig returns the stock banner settings with an empty item pool.
func DefaultConfig() Config {
	return Config{
		Chances:  100,
		SoftPity: 10,
		HardPity: 50,
		Rarities: DefaultRarityTable(),
		Items:    ItemPool{},
	}
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRNG sets the random source. nil keeps the default crypto source.
func WithRNG(rng RandomSource) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithLogger sets the logger used for per-roll debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine draws items under the rarity table and the two-tier pity.
// Pull is a single critical section; an Engine is safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	chances uint32
	pity    PityState
	table   RarityTable
	ranges  []RarityRange
	items   ItemPool
	rng     RandomSource
	logger  *zap.Logger
}

// NewEngine validates the rarity table and builds an engine.
// The item pool is not checked here: a tier without items fails when drawn.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := validateTable(cfg.Rarities); err != nil {
		return nil, err
	}
	e := &Engine{
		rng:    DefaultRNG(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.chances = cfg.Chances
	e.apply(cfg)
	return e, nil
}

func (e *Engine) apply(cfg Config) {
	e.table = append(RarityTable(nil), cfg.Rarities...)
	e.ranges = BuildRanges(e.table)
	e.items = cfg.Items
	e.pity.SoftThreshold = cfg.SoftPity
	e.pity.HardThreshold = cfg.HardPity
}

// Reconfigure replaces the table, pool and thresholds wholesale between
// batches. Streaks and remaining chances are kept; cfg.Chances is ignored.
func (e *Engine) Reconfigure(cfg Config) error {
	if err := validateTable(cfg.Rarities); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(cfg)
	return nil
}

// Chances returns the remaining budget.
func (e *Engine) Chances() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chances
}

// AddChances grows the budget, saturating at the uint32 limit.
func (e *Engine) AddChances(n uint32) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.chances > ^uint32(0)-n {
		e.chances = ^uint32(0)
	} else {
		e.chances += n
	}
	return e.chances
}

// Pity returns a snapshot of the pity counters and thresholds.
func (e *Engine) Pity() PityState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pity
}

// Ranges returns the sampling intervals of the current table.
func (e *Engine) Ranges() []RarityRange {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]RarityRange(nil), e.ranges...)
}

// Pull performs up to num draws, silently capped at the remaining chances.
//   - Each draw consults pity first; a forced tier skips random sampling.
//   - Otherwise a fresh value in [0, total weight) selects the tier.
//   - An item is then picked uniformly from that tier's pool.
//   - Chances and pity update after every successful draw, before the next.
//
// If a tier cannot supply an item, Pull stops and returns the items drawn so
// far together with the error. Draws already made stay committed.
func (e *Engine) Pull(num uint32) ([]Item, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	limit := min(num, e.chances)
	result := make([]Item, 0, limit)
	for i := uint32(0); i < limit; i++ {
		item, err := e.draw()
		if err != nil {
			e.logger.Warn("pull aborted",
				zap.Int("drawn", len(result)),
				zap.Uint32("requested", num),
				zap.Error(err),
			)
			return result, err
		}
		result = append(result, item)
	}
	if limit > 0 {
		e.logger.Debug("pull complete",
			zap.Uint32("requested", num),
			zap.Int("drawn", len(result)),
			zap.Uint32("chances", e.chances),
		)
	}
	return result, nil
}

// draw performs one draw. Caller holds e.mu.
func (e *Engine) draw() (Item, error) {
	rarity, kind := e.pity.Next()
	if kind == PityNone {
		var err error
		rarity, err = e.roll()
		if err != nil {
			return Item{}, err
		}
	} else {
		e.logger.Debug("pity hit",
			zap.String("kind", string(kind)),
			zap.Stringer("rarity", rarity),
		)
	}

	item, err := e.pick(rarity)
	if err != nil {
		return Item{}, err
	}

	// only update counters when successfully pulled
	e.chances--
	e.pity.Record(rarity)
	return item, nil
}

// roll samples a tier from the weighted ranges.
func (e *Engine) roll() (Rarity, error) {
	f := e.rng.Float64() * span(e.ranges)
	rarity, err := Locate(e.ranges, f)
	if err != nil {
		return 0, err
	}
	e.logger.Debug("rolled", zap.Float64("value", f), zap.Stringer("rarity", rarity))
	return rarity, nil
}

// pick chooses one item uniformly from the tier's pool.
func (e *Engine) pick(rarity Rarity) (Item, error) {
	pool, ok := e.items[rarity]
	if !ok {
		return Item{}, fmt.Errorf("%w: %v", ErrInvalidRarity, rarity)
	}
	if len(pool) == 0 {
		return Item{}, fmt.Errorf("%w: %v", ErrEmptyPool, rarity)
	}
	return pool[e.rng.IntN(len(pool))], nil
}
