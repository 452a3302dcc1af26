package model

import "time"

// Desk column names as stored in the disclosure table.
var (
	BuyDeskColumns  = [3]string{"dep1", "dep2", "dep3"}
	SellDeskColumns = [3]string{"dep_1", "dep_2", "dep_3"}
)

// DeskSlot is one ranked trading desk on a disclosure list.
type DeskSlot struct {
	Name string
	Rate float64
}

// Disclosure is one dragon-and-tiger list entry for a stock on a trading day.
// A stock can be listed several times on the same day for different reasons.
type Disclosure struct {
	EntityID  string
	Code      string
	Name      string
	Provider  string
	Time      time.Time
	Reason    string
	ChangePct float64
	Buy       [3]DeskSlot // dep1..dep3
	Sell      [3]DeskSlot // dep_1..dep_3
}
