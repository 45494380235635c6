package alert

import (
	"context"
	"time"
)

type Kind string

const (
	Pump        Kind = "pump"
	RugPull     Kind = "rug_pull"
	VolumeSpike Kind = "volume_spike"
	TouchUpper  Kind = "touch_upper"
	TouchLower  Kind = "touch_lower"
	// Surge cex 24h 涨幅, 与 dex 的 Pump 分开配置
	Surge Kind = "surge"
)

func (k Kind) ToString() string {
	return string(k)
}

// Observation the values of one snapshot the evaluator compares against the last alert
type Observation struct {
	Identifier     string
	Source         string
	Venue          string
	Price          float64
	PriceChange24h float64
	Volume24h      float64
}

type Config struct {
	Cooldown     time.Duration
	PumpDelta    float64
	RugPullDelta float64
	SurgeDelta   float64
	VolumeRatio  float64
}

func DefaultConfig() Config {
	return Config{
		Cooldown:     time.Hour,
		PumpDelta:    50,
		RugPullDelta: 50,
		SurgeDelta:   20,
		VolumeRatio:  2,
	}
}

// Service decides whether an observation is worth a new notification
type Service interface {
	Evaluate(ctx context.Context, obs Observation, kind Kind) (bool, error)
}
