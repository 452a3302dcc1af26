package model

import "time"

// DailyBar represents a single adjusted daily candlestick for one entity.
type DailyBar struct {
	EntityID     string
	Provider     string
	Time         time.Time
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Volume       float64
	Turnover     float64 // traded value in currency units
	TurnoverRate float64 // fraction of float traded
}

// AdjustType is a price-series adjustment convention.
type AdjustType string

const (
	AdjustNone     AdjustType = "bfq" // unadjusted
	AdjustForward  AdjustType = "qfq"
	AdjustBackward AdjustType = "hfq"
)

// Level is the bar granularity.
type Level string

const Level1Day Level = "1d"

// BarSchema identifies the dataset a DailyBar is read from.
type BarSchema struct {
	EntityType string
	Level      Level
	AdjustType AdjustType
	Table      string
}
