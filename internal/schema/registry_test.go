package schema

import (
	"errors"
	"testing"

	"DragonLens/internal/model"
)

func TestDefaultAdjustType(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		entityType string
		want       model.AdjustType
	}{
		{"stock", model.AdjustBackward},
		{"etf", model.AdjustForward},
		{"index", model.AdjustNone},
	}
	for _, tt := range tests {
		got, err := r.DefaultAdjustType(tt.entityType)
		if err != nil {
			t.Fatalf("%s: %v", tt.entityType, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.entityType, got, tt.want)
		}
	}

	if _, err := r.DefaultAdjustType("future"); !errors.Is(err, ErrUnknownEntityType) {
		t.Errorf("expected ErrUnknownEntityType, got %v", err)
	}
}

func TestBarSchema_TableNames(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		entityType string
		adjust     model.AdjustType
		table      string
	}{
		{"stock", model.AdjustBackward, "stock_1d_hfq_kdata"},
		{"stock", model.AdjustNone, "stock_1d_kdata"},
		{"etf", model.AdjustForward, "etf_1d_qfq_kdata"},
		{"index", model.AdjustNone, "index_1d_kdata"},
	}
	for _, tt := range tests {
		s, err := r.BarSchema(tt.entityType, model.Level1Day, tt.adjust)
		if err != nil {
			t.Fatalf("%s/%s: %v", tt.entityType, tt.adjust, err)
		}
		if s.Table != tt.table {
			t.Errorf("%s/%s: table %q, want %q", tt.entityType, tt.adjust, s.Table, tt.table)
		}
	}
}

func TestBarSchema_Unsupported(t *testing.T) {
	r := DefaultRegistry()
	if _, err := r.BarSchema("index", model.Level1Day, model.AdjustBackward); !errors.Is(err, ErrUnsupportedAdjustType) {
		t.Errorf("expected ErrUnsupportedAdjustType, got %v", err)
	}
}

func TestRegister_NewEntityType(t *testing.T) {
	r := DefaultRegistry()
	r.Register("stockhk", model.AdjustForward)
	s, err := r.BarSchema("stockhk", model.Level1Day, model.AdjustForward)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Table != "stockhk_1d_qfq_kdata" {
		t.Errorf("table = %q", s.Table)
	}
	if n := len(r.Schemas()); n != 8 {
		t.Errorf("expected 8 schemas, got %d", n)
	}
}
