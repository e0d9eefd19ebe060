package game

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/game/pool files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) GamesDir() string {
	return filepath.Join(p.BaseDir, "games")
}
func (p Paths) DefaultPath() string {
	return filepath.Join(p.GamesDir(), "default.yaml")
}
func (p Paths) GamePath(game string) string {
	return filepath.Join(p.GamesDir(), game+".yaml")
}
func (p Paths) PoolPath(game, pool string) string {
	return filepath.Join(p.GamesDir(), game, "pools", pool+".yaml")
}

// Loader reads YAML configs and merges default → game → pool.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "game" or "game/pool"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the file layout the loader reads from.
func (l *Loader) Paths() Paths { return l.paths }

func cacheKey(game, pool string) string {
	if pool == "" {
		return game
	}
	return game + "/" + pool
}

// LoadMerged loads and merges default → game → pool (pool optional).
// It returns the merged RawConfig (without validation).
func (l *Loader) LoadMerged(game, pool string) (RawConfig, error) {
	key := cacheKey(game, pool)
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	gameCfg, err := readYAML(l.paths.GamePath(game))
	if err != nil {
		return RawConfig{}, fmt.Errorf("read game %q: %w", game, err)
	}
	var poolCfg RawConfig
	if pool != "" {
		poolCfg, err = readYAML(l.paths.PoolPath(game, pool))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read pool %q: %w", key, err)
		}
	}

	gameMerged := mergeRaw(defCfg, gameCfg)
	merged := mergeRaw(gameMerged, poolCfg)

	l.mu.Lock()
	l.cache[game] = gameMerged
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw overlays 'b' on 'a' wherever 'b' sets a value.
// The rarity list is replaced as a whole; items are replaced per tier.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.Chances != nil {
		out.Chances = b.Chances
	}

	// pity
	if b.Pity.Soft != nil {
		out.Pity.Soft = b.Pity.Soft
	}
	if b.Pity.Hard != nil {
		out.Pity.Hard = b.Pity.Hard
	}

	if len(b.Rarities) > 0 {
		out.Rarities = append([]RarityEntry(nil), b.Rarities...)
	}

	if len(b.Items) > 0 {
		items := make(map[string][]string, len(a.Items)+len(b.Items))
		maps.Copy(items, a.Items)
		maps.Copy(items, b.Items)
		out.Items = items
	}

	// tokens
	switch {
	case out.Tokens == nil && b.Tokens != nil:
		c := *b.Tokens
		out.Tokens = &c
	case out.Tokens != nil && b.Tokens != nil:
		c := *out.Tokens
		if b.Tokens.Name != "" {
			c.Name = b.Tokens.Name
		}
		if b.Tokens.PerDraw != nil {
			c.PerDraw = b.Tokens.PerDraw
		}
		if b.Tokens.PerTenDraw != nil {
			c.PerTenDraw = b.Tokens.PerTenDraw
		}
		out.Tokens = &c
	}

	return out
}
