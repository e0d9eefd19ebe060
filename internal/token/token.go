package token

// Token defines how many units of a currency are required per draw.
type Token struct {
	Name       string // e.g. "Stellar Jade", "Star Stone"
	PerDraw    int    // tokens per single draw, e.g. 160, 250
	PerTenDraw int    // optional; bundle price for 10 draws, 0 -> 10 * PerDraw
	PerNDraw   int    // optional; bundle price for N draws, 0 -> N * PerDraw
	N          int    // optional; bundle size for PerNDraw, <=1 disables it
}

// TokensForDraws returns how many tokens are required for n draws.
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.PerTenDraw > 0 && n >= 10 && t.N <= 1 {
		tens := n / 10
		rem := n % 10
		return tens*t.PerTenDraw + rem*t.PerDraw
	}
	if t.PerNDraw > 0 && n >= t.N && t.N > 1 {
		ns := n / t.N
		rem := n % t.N
		return ns*t.PerNDraw + rem*t.PerDraw
	}
	return n * t.PerDraw
}

// DrawsForTokens returns the largest n with TokensForDraws(n) <= balance.
// Bundle pricing makes cost non-monotonic in n, so every candidate up to the
// cheapest-rate bound is checked.
func (t Token) DrawsForTokens(balance int) int {
	if balance <= 0 || t.PerDraw <= 0 {
		return 0
	}
	limit := balance / t.PerDraw
	if t.PerTenDraw > 0 {
		limit = max(limit, balance*10/t.PerTenDraw+10)
	}
	if t.PerNDraw > 0 && t.N > 1 {
		limit = max(limit, balance*t.N/t.PerNDraw+t.N)
	}
	best := 0
	for n := 1; n <= limit; n++ {
		if t.TokensForDraws(n) <= balance {
			best = n
		}
	}
	return best
}
