package query

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

var testColumns = map[string]bool{
	"entity_id":  true,
	"provider":   true,
	"timestamp":  true,
	"change_pct": true,
	"dep1":       true,
	"dep2":       true,
	"dep3":       true,
}

func TestWhere_Empty(t *testing.T) {
	where, args, err := Query{}.Where(testColumns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if where != "" || args != nil {
		t.Errorf("expected empty clause, got %q %v", where, args)
	}
}

func TestWhere_RangeAndFilters(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)
	q := Query{
		Provider: "em",
		Start:    start,
		End:      end,
		Filters: []Expr{
			Gt("change_pct", 0),
			Or(Eq("dep1", "机构专用"), Eq("dep2", "机构专用"), Eq("dep3", "机构专用")),
		},
	}
	where, args, err := q.Where(testColumns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantWhere := " WHERE (provider = ? AND timestamp >= ? AND timestamp <= ? AND change_pct > ? AND (dep1 = ? OR dep2 = ? OR dep3 = ?))"
	if where != wantWhere {
		t.Errorf("where = %q, want %q", where, wantWhere)
	}
	wantArgs := []any{"em", start.Unix(), end.Unix(), 0, "机构专用", "机构专用", "机构专用"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestWhere_UnknownColumn(t *testing.T) {
	q := Query{Filters: []Expr{Eq("close; DROP TABLE x", 1)}}
	_, _, err := q.Where(testColumns)
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestWhere_EmptyGroups(t *testing.T) {
	where, _, err := Query{Filters: []Expr{Or(), And()}}.Where(testColumns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if where != " WHERE (1=0 AND 1=1)" {
		t.Errorf("where = %q", where)
	}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name    string
		q       Query
		def     []string
		want    string
		wantErr bool
	}{
		{"default", Query{}, []string{"timestamp"}, " ORDER BY timestamp", false},
		{"explicit", Query{OrderBy: []string{"timestamp", "entity_id"}}, []string{"provider"}, " ORDER BY timestamp, entity_id", false},
		{"none", Query{}, nil, "", false},
		{"unknown", Query{OrderBy: []string{"close"}}, nil, "", true},
	}
	for _, tt := range tests {
		got, err := tt.q.Order(testColumns, tt.def...)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}
