package model

type MarketSession string

const (
	SessionClosedWeekend MarketSession = "closed_weekend"
	SessionPreMarket     MarketSession = "pre_market"
	SessionRegular       MarketSession = "regular"
	SessionAfterHours    MarketSession = "after_hours"
	SessionClosedOutside MarketSession = "closed_outside_hours"
)

type MarketStatus struct {
	IsOpen  bool
	Session MarketSession
	Label   string
}

type MarketMode string

const (
	ModeMarket    MarketMode = "market"
	ModePreMarket MarketMode = "pre_market"
)
