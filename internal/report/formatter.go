package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"DragonLens/internal/model"
)

// FormatTopPlayers formats the concatenated top-desk list.
func FormatTopPlayers(start, end time.Time, desks []string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("龙虎榜主力席位 | %s ~ %s\n\n", start.Format("2006-01-02"), formatEnd(end)))
	if len(desks) == 0 {
		b.WriteString("  (无数据)\n")
		return b.String()
	}
	for i, d := range desks {
		b.WriteString(fmt.Sprintf("  %3d. %s\n", i+1, d))
	}
	return b.String()
}

// FormatRanking formats one desk ranking, limited to n rows.
func FormatRanking(title string, r model.DeskRanking, n int) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	if n > len(r) {
		n = len(r)
	}
	for i, dc := range r[:n] {
		b.WriteString(fmt.Sprintf("  %3d. %-40s %d\n", i+1, dc.Desk, dc.Count))
	}
	return b.String()
}

// FormatSuccessRates formats the per-player win-rate table.
func FormatSuccessRates(rates []model.SuccessRate) string {
	var b strings.Builder
	b.WriteString("席位胜率\n\n")
	if len(rates) == 0 {
		b.WriteString("  (无数据)\n")
		return b.String()
	}

	b.WriteString("  player")
	for _, hr := range rates[0].Rates {
		b.WriteString(fmt.Sprintf("\trate_%d", hr.Days))
	}
	b.WriteString("\n")
	for _, r := range rates {
		b.WriteString("  " + r.Player)
		for _, hr := range r.Rates {
			b.WriteString("\t" + formatRate(hr.Rate))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatCapBuckets formats the tier membership counts for one day.
func FormatCapBuckets(day time.Time, tiers model.CapTiers, buckets map[string][]string, order []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("市值分层 | %s\n", day.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("大盘≥%.0f亿 中盘≥%.0f亿 小盘≥%.0f亿\n\n", tiers.Big/1e8, tiers.Middle/1e8, tiers.Small/1e8))
	for _, name := range order {
		b.WriteString(fmt.Sprintf("  %-8s %d\n", name, len(buckets[name])))
	}
	return b.String()
}

func formatEnd(end time.Time) string {
	if end.IsZero() {
		return "至今"
	}
	return end.Format("2006-01-02")
}

func formatRate(r float64) string {
	if math.IsNaN(r) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f%%", r*100)
}
