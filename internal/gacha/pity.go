package gacha

// PityKind names which guarantee, if any, decided a draw.
type PityKind string

const (
	PityNone PityKind = ""
	PitySoft PityKind = "soft"
	PityHard PityKind = "hard"
)

// PityState is the two-tier pity tracker.
// - Hard pity: when HardStreak+1 == HardThreshold, the next draw is SSR.
// - Soft pity: otherwise, when SoftStreak+1 == SoftThreshold, the next draw is SR.
// A threshold of 0 never triggers.
type PityState struct {
	SoftStreak    uint32 // draws since the last SR or better
	HardStreak    uint32 // draws since the last SSR
	SoftThreshold uint32
	HardThreshold uint32
}

// Next reports whether the next draw hits a pity and which tier it forces.
// Hard pity takes priority when both thresholds coincide.
func (p PityState) Next() (Rarity, PityKind) {
	if p.HardStreak+1 == p.HardThreshold {
		return Top, PityHard
	}
	if p.SoftStreak+1 == p.SoftThreshold {
		below, _ := Top.Below()
		return below, PitySoft
	}
	return 0, PityNone
}

// Record updates the streaks after a successful draw of r.
// SSR resets both; SR resets the soft streak only; anything lower increments both.
func (p *PityState) Record(r Rarity) {
	switch {
	case r >= Top:
		p.SoftStreak = 0
		p.HardStreak = 0
	case r == SR:
		p.SoftStreak = 0
		p.HardStreak++
	default:
		p.SoftStreak++
		p.HardStreak++
	}
}

// UntilSoft returns how many draws remain until soft pity forces SR,
// including the forced draw. Zero means soft pity will not trigger.
func (p PityState) UntilSoft() uint32 {
	return until(p.SoftStreak, p.SoftThreshold)
}

// UntilHard is UntilSoft for hard pity.
func (p PityState) UntilHard() uint32 {
	return until(p.HardStreak, p.HardThreshold)
}

func until(streak, threshold uint32) uint32 {
	if threshold <= streak {
		return 0
	}
	return threshold - streak
}
