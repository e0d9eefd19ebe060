// Package server exposes gacha engines over gRPC, one engine per banner.
package server

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/gacha-engine/internal/gacha"
	"github.com/xtding233/gacha-engine/internal/game"
)

const (
	maxTrials      = 100000
	maxGrantTokens = 10_000_000
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// banner is a live engine plus the config it was built from.
type banner struct {
	engine *gacha.Engine
	raw    game.RawConfig
	cfg    gacha.Config
}

// Service implements GachaServiceServer.
type Service struct {
	resolver    game.Resolver
	defaultGame string
	defaultPool string
	logger      *zap.Logger
	rngFactory  func() gacha.RandomSource

	mu      sync.Mutex
	banners map[string]*banner
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithDefaults sets the banner used when a request names no game.
func WithDefaults(gameName, pool string) ServiceOption {
	return func(s *Service) {
		s.defaultGame = gameName
		s.defaultPool = pool
	}
}

// WithRNGFactory sets the random source given to each new engine.
func WithRNGFactory(f func() gacha.RandomSource) ServiceOption {
	return func(s *Service) { s.rngFactory = f }
}

// NewService creates the gRPC service backed by resolver.
//
// Precondition: resolver and logger must be non-nil.
func NewService(resolver game.Resolver, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		resolver:    resolver,
		defaultGame: "default",
		logger:      logger,
		rngFactory:  gacha.DefaultRNG,
		banners:     make(map[string]*banner),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ GachaServiceServer = (*Service)(nil)

func bannerKey(gameName, pool string) string {
	if pool == "" {
		return gameName
	}
	return gameName + "/" + pool
}

// bannerFor returns the engine for the request's game/pool, creating it on first use.
func (s *Service) bannerFor(req *structpb.Struct) (*banner, string, error) {
	gameName, err := stringField(req, "game", "")
	if err != nil {
		return nil, "", err
	}
	pool, err := stringField(req, "pool", "")
	if err != nil {
		return nil, "", err
	}
	if gameName == "" {
		gameName = s.defaultGame
		if pool == "" {
			pool = s.defaultPool
		}
	}
	if !nameRe.MatchString(gameName) || (pool != "" && !nameRe.MatchString(pool)) {
		return nil, "", status.Errorf(codes.InvalidArgument, "invalid banner name %q", bannerKey(gameName, pool))
	}
	key := bannerKey(gameName, pool)

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.banners[key]; ok {
		return b, key, nil
	}
	raw, cfg, err := s.resolver.Resolve(gameName, pool, game.Overrides{})
	if err != nil {
		return nil, "", status.Errorf(codes.FailedPrecondition, "resolve %s: %v", key, err)
	}
	e, err := gacha.NewEngine(cfg,
		gacha.WithRNG(s.rngFactory()),
		gacha.WithLogger(s.logger.With(zap.String("banner", key))),
	)
	if err != nil {
		return nil, "", status.Errorf(codes.FailedPrecondition, "build %s: %v", key, err)
	}
	b := &banner{engine: e, raw: raw, cfg: cfg}
	s.banners[key] = b
	s.logger.Info("banner loaded",
		zap.String("banner", key),
		zap.String("version", raw.Version),
		zap.Uint32("chances", cfg.Chances),
	)
	return b, key, nil
}

// Reload re-resolves every live banner and reconfigures its engine. Pity
// streaks and remaining chances are kept. A banner whose new config fails to
// resolve keeps running on its previous config.
func (s *Service) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, b := range s.banners {
		gameName, pool := splitKey(key)
		raw, cfg, err := s.resolver.Resolve(gameName, pool, game.Overrides{})
		if err == nil {
			err = b.engine.Reconfigure(cfg)
		}
		if err != nil {
			s.logger.Error("banner reload failed; keeping previous config",
				zap.String("banner", key), zap.Error(err))
			continue
		}
		b.raw, b.cfg = raw, cfg
		s.logger.Info("banner reloaded", zap.String("banner", key), zap.String("version", raw.Version))
	}
}

func splitKey(key string) (string, string) {
	gameName, pool, _ := strings.Cut(key, "/")
	return gameName, pool
}

// snapshot reads the banner's current config under the service lock.
func (s *Service) snapshot(b *banner) (game.RawConfig, gacha.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return b.raw, b.cfg
}

// Pull draws {count} items. Request: {game, pool, count}.
// Response: {pull_id, items: [{name, rarity}], chances, pity}.
func (s *Service) Pull(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	b, key, err := s.bannerFor(req)
	if err != nil {
		return nil, err
	}
	count, err := uintField(req, "count", 1, math.MaxUint32)
	if err != nil {
		return nil, err
	}

	pullID := uuid.NewString()
	items, err := b.engine.Pull(uint32(count))
	if err != nil {
		s.logger.Error("pull failed",
			zap.String("banner", key),
			zap.String("pull_id", pullID),
			zap.Int("committed", len(items)),
			zap.Error(err),
		)
		return nil, pullError(err, len(items))
	}

	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]any{"name": it.Name, "rarity": it.Rarity.String()})
	}
	s.logger.Info("pull",
		zap.String("banner", key),
		zap.String("pull_id", pullID),
		zap.Uint64("requested", count),
		zap.Int("drawn", len(items)),
	)
	return structpb.NewStruct(map[string]any{
		"pull_id": pullID,
		"items":   out,
		"chances": b.engine.Chances(),
		"pity":    pityFields(b.engine.Pity()),
	})
}

// Status reports remaining chances and pity counters. Request: {game, pool}.
func (s *Service) Status(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	b, key, err := s.bannerFor(req)
	if err != nil {
		return nil, err
	}
	raw, _ := s.snapshot(b)
	return structpb.NewStruct(map[string]any{
		"banner":  key,
		"version": raw.Version,
		"chances": b.engine.Chances(),
		"pity":    pityFields(b.engine.Pity()),
	})
}

// Grant converts {tokens} into chances at the banner's token price.
// Response: {granted, spent, chances}.
func (s *Service) Grant(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	b, key, err := s.bannerFor(req)
	if err != nil {
		return nil, err
	}
	tokens, err := uintField(req, "tokens", 0, maxGrantTokens)
	if err != nil {
		return nil, err
	}
	raw, _ := s.snapshot(b)
	tok := raw.Token()
	if tok.PerDraw <= 0 {
		return nil, status.Errorf(codes.FailedPrecondition, "banner %s has no token pricing", key)
	}
	draws := tok.DrawsForTokens(int(tokens))
	chances := b.engine.AddChances(uint32(draws))
	s.logger.Info("chances granted",
		zap.String("banner", key),
		zap.Int("draws", draws),
		zap.Uint32("chances", chances),
	)
	return structpb.NewStruct(map[string]any{
		"granted": draws,
		"spent":   tok.TokensForDraws(draws),
		"chances": chances,
	})
}

// Simulate runs a Monte Carlo study of the banner's configured distribution
// on fresh engines; live pity and budget are untouched.
// Request: {game, pool, goal, trials, seed}.
func (s *Service) Simulate(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	b, _, err := s.bannerFor(req)
	if err != nil {
		return nil, err
	}
	goalName, err := stringField(req, "goal", string(gacha.GoalFirstSSR))
	if err != nil {
		return nil, err
	}
	goal, err := gacha.ParseTrialGoal(goalName)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	trials, err := uintField(req, "trials", 1000, maxTrials)
	if err != nil {
		return nil, err
	}
	seed, err := uintField(req, "seed", 1, 1<<53)
	if err != nil {
		return nil, err
	}

	_, cfg := s.snapshot(b)

	stats, err := gacha.RunMonteCarlo(gacha.SimParams{Config: cfg, Seed: seed}, goal, int(trials))
	if err != nil {
		return nil, pullError(err, 0)
	}
	return structpb.NewStruct(map[string]any{
		"goal":   string(goal),
		"trials": trials,
		"mean":   stats.Mean,
		"stddev": stats.StdDev,
		"p50":    stats.P50,
		"p90":    stats.P90,
		"p99":    stats.P99,
	})
}

func pityFields(p gacha.PityState) map[string]any {
	return map[string]any{
		"soft_streak":    p.SoftStreak,
		"hard_streak":    p.HardStreak,
		"soft_threshold": p.SoftThreshold,
		"hard_threshold": p.HardThreshold,
		"until_soft":     p.UntilSoft(),
		"until_hard":     p.UntilHard(),
	}
}

// pullError maps engine integrity failures onto gRPC status codes.
func pullError(err error, committed int) error {
	switch {
	case errors.Is(err, gacha.ErrInvalidRarity),
		errors.Is(err, gacha.ErrEmptyPool),
		errors.Is(err, gacha.ErrRangeMiss):
		return status.Errorf(codes.FailedPrecondition, "%v (%d draws committed)", err, committed)
	}
	return status.Error(codes.Internal, err.Error())
}

func stringField(req *structpb.Struct, key, def string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return def, nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", key)
	}
	return sv.StringValue, nil
}

func uintField(req *structpb.Struct, key string, def, maxVal uint64) (uint64, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return def, nil
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", key)
	}
	f := nv.NumberValue
	if math.IsNaN(f) || f < 0 || f != math.Trunc(f) || f > float64(maxVal) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer in [0, %d], got %v", key, maxVal, f)
	}
	return uint64(f), nil
}

