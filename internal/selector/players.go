package selector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"DragonLens/internal/model"
	"DragonLens/internal/query"
)

// Direction selects buy-side (in) or sell-side (out) desk columns.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

func (d Direction) slots(disc *model.Disclosure) *[3]model.DeskSlot {
	if d == DirectionOut {
		return &disc.Sell
	}
	return &disc.Buy
}

// RankPlayers counts, for each of the three desk ranks, how many
// disclosures with a positive change each desk appeared on. A zero end
// means through the latest data.
func (s *Selector) RankPlayers(ctx context.Context, start, end time.Time, dir Direction) ([3]model.DeskRanking, error) {
	var rankings [3]model.DeskRanking
	if dir != DirectionIn && dir != DirectionOut {
		return rankings, fmt.Errorf("%w: direction %q", ErrInvalidArgument, dir)
	}

	rows, err := s.Store.QueryDisclosures(ctx, query.Query{
		Start:   start,
		End:     end,
		Filters: []query.Expr{query.Gt("change_pct", 0)},
	})
	if err != nil {
		return rankings, fmt.Errorf("query disclosures: %w", err)
	}

	for rank := 0; rank < 3; rank++ {
		counts := make(map[string]int)
		for i := range rows {
			if desk := dir.slots(&rows[i])[rank].Name; desk != "" {
				counts[desk]++
			}
		}
		rankings[rank] = sortCounts(counts)
	}
	log.Printf("[INFO] ranked %s desks over %d disclosures: %d/%d/%d",
		dir, len(rows), len(rankings[0]), len(rankings[1]), len(rankings[2]))
	return rankings, nil
}

// TopPlayers returns the top count rank-1 desks, followed by the top count
// rank-2 desks not already selected, followed by the top count rank-3
// desks not selected by either. Each segment keeps its ranking order.
func (s *Selector) TopPlayers(ctx context.Context, start, end time.Time, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count %d", ErrInvalidArgument, count)
	}
	rankings, err := s.RankPlayers(ctx, start, end, DirectionIn)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, ranking := range rankings {
		var segment []string
		for _, desk := range ranking.Desks(count) {
			if !seen[desk] {
				segment = append(segment, desk)
			}
		}
		// Marked after the segment so a segment only excludes earlier ones.
		for _, desk := range segment {
			seen[desk] = true
		}
		out = append(out, segment...)
	}
	return out, nil
}

func sortCounts(counts map[string]int) model.DeskRanking {
	ranking := make(model.DeskRanking, 0, len(counts))
	for desk, n := range counts {
		ranking = append(ranking, model.DeskCount{Desk: desk, Count: n})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Desk < ranking[j].Desk
	})
	return ranking
}
