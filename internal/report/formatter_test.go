package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"DragonLens/internal/model"
)

func TestFormatTopPlayers(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	out := FormatTopPlayers(start, time.Time{}, []string{"DeskX", "DeskY"})
	if !strings.Contains(out, "2022-01-01 ~ 至今") {
		t.Errorf("missing range header: %q", out)
	}
	if !strings.Contains(out, "  1. DeskX") || !strings.Contains(out, "  2. DeskY") {
		t.Errorf("missing desks: %q", out)
	}
	if empty := FormatTopPlayers(start, start, nil); !strings.Contains(empty, "无数据") {
		t.Errorf("expected empty marker: %q", empty)
	}
}

func TestFormatRanking_Limit(t *testing.T) {
	r := model.DeskRanking{{Desk: "A", Count: 3}, {Desk: "B", Count: 2}, {Desk: "C", Count: 1}}
	out := FormatRanking("榜1", r, 2)
	if strings.Contains(out, " C ") || !strings.Contains(out, "B") {
		t.Errorf("unexpected ranking output: %q", out)
	}
}

func TestFormatSuccessRates(t *testing.T) {
	rates := []model.SuccessRate{
		{Player: "机构专用", Rates: []model.HorizonRate{{Days: 5, Rate: 0.625}, {Days: 10, Rate: 0.5}}},
		{Player: "Nobody", Rates: []model.HorizonRate{{Days: 5, Rate: math.NaN()}, {Days: 10, Rate: math.NaN()}}},
	}
	out := FormatSuccessRates(rates)
	for _, want := range []string{"rate_5", "rate_10", "62.50%", "50.00%", "NaN"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestFormatCapBuckets(t *testing.T) {
	day := time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC)
	buckets := map[string][]string{"big": {"a", "b"}, "mini": {"c"}}
	out := FormatCapBuckets(day, model.DefaultCapTiers, buckets, []string{"big", "mini"})
	for _, want := range []string{"2022-03-04", "500亿", "150亿", "40亿", "big", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}
