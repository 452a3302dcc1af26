package selector

import (
	"context"
	"fmt"
	"time"

	"DragonLens/internal/calculator"
	"DragonLens/internal/model"
	"DragonLens/internal/query"
	"DragonLens/internal/timeutil"
)

// CapRange bounds an implied market cap. A nil bound is unbounded.
// Max is inclusive unless MaxExclusive is set.
type CapRange struct {
	Min          *float64
	Max          *float64
	MaxExclusive bool
}

// Contains reports whether c lies in the range. NaN fails any bound;
// +Inf passes an unbounded Max.
func (r CapRange) Contains(c float64) bool {
	if r.Min != nil && !(c >= *r.Min) {
		return false
	}
	if r.Max != nil {
		if r.MaxExclusive {
			return c < *r.Max
		}
		return c <= *r.Max
	}
	return true
}

func bound(v float64) *float64 { return &v }

// EntitiesByCap returns the entities whose implied cap on timestamp's date
// lies in r, in entity id order. An empty adjustType uses the entity
// type's default; an empty provider reads every provider.
func (s *Selector) EntitiesByCap(ctx context.Context, timestamp time.Time, r CapRange, entityType, provider string, adjustType model.AdjustType) ([]string, error) {
	if adjustType == "" {
		def, err := s.Schemas.DefaultAdjustType(entityType)
		if err != nil {
			return nil, err
		}
		adjustType = def
	}
	barSchema, err := s.Schemas.BarSchema(entityType, model.Level1Day, adjustType)
	if err != nil {
		return nil, err
	}

	rows, err := s.Store.QueryBars(ctx, barSchema, query.Query{
		Provider: provider,
		Filters:  []query.Expr{query.Eq("timestamp", timeutil.Day(timestamp))},
		OrderBy:  []string{"entity_id"},
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", barSchema.Table, err)
	}

	var out []string
	for _, row := range rows {
		if r.Contains(calculator.ImpliedCap(row.Turnover, row.TurnoverRate)) {
			out = append(out, row.EntityID)
		}
	}
	return out, nil
}

// LatestTradingDay returns the newest bar date for an entity type, or the
// zero time when no bars exist.
func (s *Selector) LatestTradingDay(ctx context.Context, entityType string, adjustType model.AdjustType, provider string) (time.Time, error) {
	if adjustType == "" {
		def, err := s.Schemas.DefaultAdjustType(entityType)
		if err != nil {
			return time.Time{}, err
		}
		adjustType = def
	}
	barSchema, err := s.Schemas.BarSchema(entityType, model.Level1Day, adjustType)
	if err != nil {
		return time.Time{}, err
	}
	return s.Store.LatestBarDate(ctx, barSchema, provider)
}

func (s *Selector) stocksByCap(ctx context.Context, timestamp time.Time, provider string, r CapRange) ([]string, error) {
	return s.EntitiesByCap(ctx, timestamp, r, DefaultEntityType, provider, "")
}

// BigCap returns stocks with cap >= Big.
func (s *Selector) BigCap(ctx context.Context, timestamp time.Time, provider string) ([]string, error) {
	return s.stocksByCap(ctx, timestamp, provider, CapRange{Min: bound(s.Tiers.Big)})
}

// MiddleCap returns stocks with Middle <= cap < Big.
func (s *Selector) MiddleCap(ctx context.Context, timestamp time.Time, provider string) ([]string, error) {
	return s.stocksByCap(ctx, timestamp, provider, CapRange{Min: bound(s.Tiers.Middle), Max: bound(s.Tiers.Big), MaxExclusive: true})
}

// SmallCap returns stocks with Small <= cap < Middle.
func (s *Selector) SmallCap(ctx context.Context, timestamp time.Time, provider string) ([]string, error) {
	return s.stocksByCap(ctx, timestamp, provider, CapRange{Min: bound(s.Tiers.Small), Max: bound(s.Tiers.Middle), MaxExclusive: true})
}

// MiniCap returns stocks with cap < Small.
func (s *Selector) MiniCap(ctx context.Context, timestamp time.Time, provider string) ([]string, error) {
	return s.stocksByCap(ctx, timestamp, provider, CapRange{Max: bound(s.Tiers.Small), MaxExclusive: true})
}

// MiniAndSmall returns stocks with cap < Middle.
func (s *Selector) MiniAndSmall(ctx context.Context, timestamp time.Time, provider string) ([]string, error) {
	return s.stocksByCap(ctx, timestamp, provider, CapRange{Max: bound(s.Tiers.Middle), MaxExclusive: true})
}

// MiddleAndBig returns stocks with cap >= Middle.
func (s *Selector) MiddleAndBig(ctx context.Context, timestamp time.Time, provider string) ([]string, error) {
	return s.stocksByCap(ctx, timestamp, provider, CapRange{Min: bound(s.Tiers.Middle)})
}
