package marketClock

import (
	"fmt"
	"time"

	"github.com/KotFed0t/stock_dashboard/internal/model"
)

const (
	labelWeekend      = "Market is closed (Weekend)"
	labelPreMarket    = "Pre-market hours (4:00 AM - 9:30 AM ET)"
	labelRegular      = "Regular market hours (9:30 AM - 4:00 PM ET)"
	labelAfterHours   = "After-hours (4:00 PM - 8:00 PM ET)"
	labelOutsideHours = "Market is closed (Outside trading hours)"
)

// MarketClock classifies an instant into a trading session in the exchange
// timezone. DST is handled by the timezone database, trading holidays are
// not handled at all.
type MarketClock struct {
	loc *time.Location
}

func New(timezone string) (*MarketClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %s: %w", timezone, err)
	}
	return &MarketClock{loc: loc}, nil
}

func (c *MarketClock) Classify(now time.Time) model.MarketStatus {
	et := now.In(c.loc)

	if wd := et.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return model.MarketStatus{Session: model.SessionClosedWeekend, Label: labelWeekend}
	}

	t := float64(et.Hour()) + float64(et.Minute())/60

	switch {
	case t >= 4 && t < 9.5:
		return model.MarketStatus{IsOpen: true, Session: model.SessionPreMarket, Label: labelPreMarket}
	case t >= 9.5 && t < 16:
		return model.MarketStatus{IsOpen: true, Session: model.SessionRegular, Label: labelRegular}
	case t >= 16 && t < 20:
		return model.MarketStatus{IsOpen: true, Session: model.SessionAfterHours, Label: labelAfterHours}
	default:
		return model.MarketStatus{Session: model.SessionClosedOutside, Label: labelOutsideHours}
	}
}
