package selector

import (
	"context"
	"fmt"
	"log"
	"time"

	"DragonLens/internal/calculator"
	"DragonLens/internal/model"
	"DragonLens/internal/query"
	"DragonLens/internal/timeutil"
)

type entityDay struct {
	entityID string
	day      time.Time
}

// PlayerPerformance measures, for every stock a player bought on a
// disclosure list, the close-to-close change over the next days trading
// days. Repeated listings of a stock on one day count once.
func (s *Selector) PlayerPerformance(ctx context.Context, start, end time.Time, days int, player, provider string) ([]model.Performance, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days %d", ErrInvalidArgument, days)
	}

	var anyDesk []query.Expr
	for _, col := range model.BuyDeskColumns {
		anyDesk = append(anyDesk, query.Eq(col, player))
	}
	rows, err := s.Store.QueryDisclosures(ctx, query.Query{
		Provider: provider,
		Start:    start,
		End:      end,
		Filters:  []query.Expr{query.Or(anyDesk...)},
		OrderBy:  []string{"timestamp", "entity_id", "id"},
	})
	if err != nil {
		return nil, fmt.Errorf("query disclosures: %w", err)
	}

	adjust, err := s.Schemas.DefaultAdjustType(DefaultEntityType)
	if err != nil {
		return nil, err
	}
	barSchema, err := s.Schemas.BarSchema(DefaultEntityType, model.Level1Day, adjust)
	if err != nil {
		return nil, err
	}

	seen := make(map[entityDay]bool, len(rows))
	records := make([]model.Performance, 0, len(rows))
	for _, row := range rows {
		key := entityDay{row.EntityID, timeutil.Day(row.Time)}
		if seen[key] {
			continue
		}
		seen[key] = true

		window, err := s.Store.QueryBars(ctx, barSchema, query.Query{
			EntityID: row.EntityID,
			Provider: provider,
			Start:    key.day,
			End:      timeutil.NextDate(key.day, calculator.ForwardWindowDays(days)),
			OrderBy:  []string{"timestamp"},
		})
		if err != nil {
			return nil, fmt.Errorf("query bars for %s: %w", row.EntityID, err)
		}
		if len(window) == 0 {
			return nil, fmt.Errorf("%w: %s on %s", ErrNoPriceBars, row.EntityID, key.day.Format("2006-01-02"))
		}

		change, err := calculator.ForwardChange(window, days)
		if err != nil {
			return nil, err
		}
		records = append(records, model.Performance{EntityID: row.EntityID, Time: row.Time, ChangePct: change})
	}
	return records, nil
}

// PlayerSuccessRate returns, per player and horizon, the fraction of the
// player's disclosed buys that were up after that many trading days. A
// player with no disclosures gets NaN rates.
func (s *Selector) PlayerSuccessRate(ctx context.Context, start, end time.Time, horizons []int, players []string, provider string) ([]model.SuccessRate, error) {
	out := make([]model.SuccessRate, 0, len(players))
	for _, player := range players {
		rate := model.SuccessRate{Player: player, Rates: make([]model.HorizonRate, 0, len(horizons))}
		for _, days := range horizons {
			records, err := s.PlayerPerformance(ctx, start, end, days, player, provider)
			if err != nil {
				return nil, fmt.Errorf("performance of %s over %d days: %w", player, days, err)
			}
			changes := make([]float64, len(records))
			for i, r := range records {
				changes[i] = r.ChangePct
			}
			rate.Rates = append(rate.Rates, model.HorizonRate{Days: days, Rate: calculator.WinRate(changes)})
		}
		log.Printf("[INFO] success rate computed for %s over %d horizons", player, len(horizons))
		out = append(out, rate)
	}
	return out, nil
}
