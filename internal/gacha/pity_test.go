package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPityNext(t *testing.T) {
	tests := []struct {
		name  string
		state PityState
		want  Rarity
		kind  PityKind
	}{
		{"none", PityState{SoftStreak: 3, HardStreak: 3, SoftThreshold: 10, HardThreshold: 80}, 0, PityNone},
		{"soft", PityState{SoftStreak: 9, HardStreak: 9, SoftThreshold: 10, HardThreshold: 80}, SR, PitySoft},
		{"hard", PityState{SoftStreak: 2, HardStreak: 79, SoftThreshold: 10, HardThreshold: 80}, SSR, PityHard},
		{"hard wins tie", PityState{SoftStreak: 9, HardStreak: 79, SoftThreshold: 10, HardThreshold: 80}, SSR, PityHard},
		{"threshold one", PityState{SoftThreshold: 1, HardThreshold: 80}, SR, PitySoft},
		{"hard threshold one", PityState{SoftThreshold: 10, HardThreshold: 1}, SSR, PityHard},
		{"zero disables", PityState{}, 0, PityNone},
		{"past threshold", PityState{SoftStreak: 12, HardStreak: 12, SoftThreshold: 10, HardThreshold: 11}, 0, PityNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kind := tt.state.Next()
			assert.Equal(t, tt.kind, kind)
			if kind != PityNone {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPityRecord_ResetLaw(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		soft := rapid.Uint32Range(0, 1000).Draw(rt, "soft")
		hard := rapid.Uint32Range(0, 1000).Draw(rt, "hard")
		r := rapid.SampledFrom(Rarities).Draw(rt, "rarity")

		p := PityState{SoftStreak: soft, HardStreak: hard, SoftThreshold: 10, HardThreshold: 80}
		p.Record(r)

		switch r {
		case SSR:
			assert.Equal(rt, uint32(0), p.SoftStreak)
			assert.Equal(rt, uint32(0), p.HardStreak)
		case SR:
			assert.Equal(rt, uint32(0), p.SoftStreak)
			assert.Equal(rt, hard+1, p.HardStreak)
		default:
			assert.Equal(rt, soft+1, p.SoftStreak)
			assert.Equal(rt, hard+1, p.HardStreak)
		}
		assert.Equal(rt, uint32(10), p.SoftThreshold)
		assert.Equal(rt, uint32(80), p.HardThreshold)
	})
}

func TestPityUntil(t *testing.T) {
	p := PityState{SoftStreak: 4, HardStreak: 30, SoftThreshold: 10, HardThreshold: 80}
	assert.Equal(t, uint32(6), p.UntilSoft())
	assert.Equal(t, uint32(50), p.UntilHard())

	p = PityState{SoftStreak: 4}
	assert.Equal(t, uint32(0), p.UntilSoft())
	assert.Equal(t, uint32(0), p.UntilHard())
}
