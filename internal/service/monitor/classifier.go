package monitor

import (
	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/service/alert"
	"github.com/samber/lo"
)

// Classify window must be ordered newest first.
// Only the newest row of each series is classified, the volume spike compares it
// with the previous row of the same series.
func Classify(window []entity.TokenSnapshot, cfg ClassifierConfig) []Classification {
	key := func(s entity.TokenSnapshot) string {
		return s.SeriesKey()
	}
	series := lo.GroupBy(window, key)

	var res []Classification
	for _, cur := range lo.UniqBy(window, key) {
		if cur.PriceChange24h > cfg.PumpChange && cur.Volume24h > cfg.PumpMinVolume {
			res = append(res, Classification{Snapshot: cur, Kind: alert.Pump})
		}
		if cur.PriceChange24h < cfg.RugPullChange && cur.LiquidityUsd < cfg.RugPullMaxLiquidity {
			res = append(res, Classification{Snapshot: cur, Kind: alert.RugPull})
		}
		if rows := series[key(cur)]; len(rows) > 1 {
			prev := rows[1]
			if prev.Volume24h > 0 && cur.Volume24h > prev.Volume24h*cfg.VolumeSpikeFactor {
				res = append(res, Classification{Snapshot: cur, Kind: alert.VolumeSpike})
			}
		}
	}
	return res
}
