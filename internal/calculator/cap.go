package calculator

// ImpliedCap estimates market capitalization as turnover / turnover rate.
// A zero rate yields +Inf, or NaN when turnover is zero too.
func ImpliedCap(turnover, turnoverRate float64) float64 {
	return turnover / turnoverRate
}
