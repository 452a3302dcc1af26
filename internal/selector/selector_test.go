package selector

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"DragonLens/internal/model"
	"DragonLens/internal/schema"
	"DragonLens/internal/store"
)

var base = time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return base.AddDate(0, 0, n) }

func newTestSelector(t *testing.T) (*Selector, *store.SQLiteStore) {
	t.Helper()
	reg := schema.DefaultRegistry()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "lens.db"), reg.Schemas())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, reg, model.DefaultCapTiers), st
}

func seedDisclosures(t *testing.T, st *store.SQLiteStore, rows ...model.Disclosure) {
	t.Helper()
	if err := st.InsertDisclosures(context.Background(), rows); err != nil {
		t.Fatalf("seed disclosures: %v", err)
	}
}

func seedBars(t *testing.T, st *store.SQLiteStore, entityType string, adjust model.AdjustType, bars ...model.DailyBar) {
	t.Helper()
	sc, err := schema.DefaultRegistry().BarSchema(entityType, model.Level1Day, adjust)
	if err != nil {
		t.Fatalf("resolve schema: %v", err)
	}
	if err := st.InsertBars(context.Background(), sc, bars); err != nil {
		t.Fatalf("seed bars: %v", err)
	}
}

func buy(desks ...string) [3]model.DeskSlot {
	var slots [3]model.DeskSlot
	for i, d := range desks {
		slots[i] = model.DeskSlot{Name: d, Rate: 0.1}
	}
	return slots
}
