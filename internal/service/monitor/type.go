package monitor

import (
	"context"
	"encoding/json"

	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/service/alert"
)

// Scanner 一次完整的 拉取 -> 存储 -> 分析 -> 通知
type Scanner interface {
	Scan(ctx context.Context) error
}

// DexSource raw dex records, see dexscreener.Client
type DexSource interface {
	LatestTokenProfiles(ctx context.Context) ([]json.RawMessage, error)
	TokenPairs(ctx context.Context, addresses []string) ([]json.RawMessage, error)
}

type ClassifierConfig struct {
	Window              int
	PumpChange          float64
	PumpMinVolume       float64
	RugPullChange       float64
	RugPullMaxLiquidity float64
	VolumeSpikeFactor   float64
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Window:              200,
		PumpChange:          100,
		PumpMinVolume:       100_000,
		RugPullChange:       -90,
		RugPullMaxLiquidity: 5000,
		VolumeSpikeFactor:   5,
	}
}

type Classification struct {
	Snapshot entity.TokenSnapshot
	Kind     alert.Kind
}

type TickerConfig struct {
	// SurgeChange 24h 涨幅超过该百分比时告警
	SurgeChange float64
}

func DefaultTickerConfig() TickerConfig {
	return TickerConfig{
		SurgeChange: 30,
	}
}
