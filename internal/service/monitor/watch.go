package monitor

import (
	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/service/alert"
	"github.com/shopspring/decimal"
)

// CheckWatchLevel stateless, fires on every poll while the price stays beyond a bound.
// A zero bound is treated as unset.
func CheckWatchLevel(price decimal.Decimal, level entity.WatchLevel) (alert.Kind, bool) {
	if level.Higher > 0 && price.GreaterThanOrEqual(decimal.NewFromFloat(level.Higher)) {
		return alert.TouchUpper, true
	}
	if level.Lower > 0 && price.LessThanOrEqual(decimal.NewFromFloat(level.Lower)) {
		return alert.TouchLower, true
	}
	return "", false
}
