package timeutil

import (
	"testing"
	"time"
)

func TestToDate_Layouts(t *testing.T) {
	want := time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2022-01-05", "20220105", "2022-01-05 14:30:00", "2022-01-05T09:30:00Z"} {
		got, err := ToDate(s)
		if err != nil {
			t.Fatalf("ToDate(%q): %v", s, err)
		}
		if !got.Equal(want) {
			t.Errorf("ToDate(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestToDate_Invalid(t *testing.T) {
	if _, err := ToDate("05/01/2022"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestNextDate(t *testing.T) {
	start := time.Date(2022, 12, 30, 15, 0, 0, 0, time.UTC)
	got := NextDate(start, 32)
	want := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextDate = %v, want %v", got, want)
	}
}
