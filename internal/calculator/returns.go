package calculator

import (
	"errors"
	"math"

	"DragonLens/internal/model"
)

// PctChange returns (to - from) / from. A zero from yields ±Inf or NaN.
func PctChange(from, to float64) float64 {
	return (to - from) / from
}

// ForwardWindowDays returns how many calendar days after a disclosure must
// be read so that the days-th trading bar is reachable across weekends and
// holidays.
func ForwardWindowDays(days int) int {
	return days + int(math.Round(float64(days)*2/5+30))
}

// HorizonIndex resolves the bar index for a horizon, falling back to the
// last available bar when fewer than days+1 bars exist.
func HorizonIndex(days, barCount int) int {
	if days < barCount-1 {
		return days
	}
	return barCount - 1
}

// ForwardChange computes the change from the first bar's close to the
// close of the bar at the horizon index.
func ForwardChange(bars []model.DailyBar, days int) (float64, error) {
	if len(bars) == 0 {
		return 0, errors.New("no bars provided")
	}
	idx := HorizonIndex(days, len(bars))
	return PctChange(bars[0].Close, bars[idx].Close), nil
}

// WinRate returns the fraction of changes that are strictly positive.
// An empty input yields NaN.
func WinRate(changes []float64) float64 {
	wins := 0
	for _, c := range changes {
		if c > 0 {
			wins++
		}
	}
	total := float64(len(changes))
	return float64(wins) / total
}
