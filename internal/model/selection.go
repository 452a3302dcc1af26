package model

import "time"

// DeskCount is the number of disclosures a desk appeared on.
type DeskCount struct {
	Desk  string
	Count int
}

// DeskRanking is ordered by Count descending, then Desk ascending.
type DeskRanking []DeskCount

// Desks returns up to n desk names in ranking order.
func (r DeskRanking) Desks(n int) []string {
	if n > len(r) {
		n = len(r)
	}
	out := make([]string, 0, n)
	for _, dc := range r[:n] {
		out = append(out, dc.Desk)
	}
	return out
}

// Performance is the realized change of one disclosed stock over a horizon.
type Performance struct {
	EntityID  string
	Time      time.Time
	ChangePct float64
}

// HorizonRate is the win rate measured over Days trading days.
type HorizonRate struct {
	Days int
	Rate float64
}

// SuccessRate holds one player's win rates, in requested horizon order.
type SuccessRate struct {
	Player string
	Rates  []HorizonRate
}

// CapTiers are the market-capitalization tier boundaries in currency units.
type CapTiers struct {
	Big    float64
	Middle float64
	Small  float64
}

// DefaultCapTiers: 500亿 / 150亿 / 40亿.
var DefaultCapTiers = CapTiers{
	Big:    50_000_000_000,
	Middle: 15_000_000_000,
	Small:  4_000_000_000,
}
