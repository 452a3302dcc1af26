package store

import (
	"context"
	"time"

	"DragonLens/internal/model"
	"DragonLens/internal/query"
)

// Store reads the disclosure and daily price-bar datasets.
type Store interface {
	// QueryDisclosures returns dragon-and-tiger rows matching q, ordered by
	// q.OrderBy or (timestamp, id).
	QueryDisclosures(ctx context.Context, q query.Query) ([]model.Disclosure, error)
	// QueryBars returns rows of the schema's bar table matching q, ordered
	// by q.OrderBy or (timestamp, entity_id).
	QueryBars(ctx context.Context, schema model.BarSchema, q query.Query) ([]model.DailyBar, error)
	// LatestBarDate returns the newest bar timestamp of the schema, or the
	// zero time when the table is empty.
	LatestBarDate(ctx context.Context, schema model.BarSchema, provider string) (time.Time, error)
	Close() error
}

// Column sets accepted in query filters and orderings.
var (
	disclosureColumns = columnSet(
		"id", "entity_id", "timestamp", "provider", "code", "name", "reason", "change_pct",
		"dep1", "dep1_rate", "dep2", "dep2_rate", "dep3", "dep3_rate",
		"dep_1", "dep_1_rate", "dep_2", "dep_2_rate", "dep_3", "dep_3_rate",
	)
	barColumns = columnSet(
		"entity_id", "timestamp", "provider",
		"open", "high", "low", "close", "volume", "turnover", "turnover_rate",
	)
)

func columnSet(cols ...string) map[string]bool {
	m := make(map[string]bool, len(cols))
	for _, c := range cols {
		m[c] = true
	}
	return m
}
