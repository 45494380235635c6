package entity

import "time"

// AlertState 每个标的最近一次已发送的告警
// 只有告警真正发出时才会被覆盖, 作为冷却和变化幅度判断的基准
type AlertState struct {
	Identifier         string `gorm:"primaryKey;size:255"`
	Source             string `gorm:"size:32"`
	Venue              string `gorm:"size:50"`
	LastPrice          float64
	LastPriceChange24h float64 `gorm:"column:last_price_change24h"`
	LastVolume24h      float64 `gorm:"column:last_volume24h"`
	LastAlertType      string  `gorm:"size:50"`
	LastAlertTime      time.Time
}

func (AlertState) TableName() string {
	return "alert_states"
}

const (
	SourceBinance     = "binance"
	SourceDexScreener = "dexscreener"
)

// WatchLevel 用户配置的价格提醒, price >= Higher 或 <= Lower 时通知
// 由外部维护, 这里只读
type WatchLevel struct {
	Symbol string `gorm:"primaryKey;size:16"`
	Higher float64
	Lower  float64
	Watch  bool
}

func (WatchLevel) TableName() string {
	return "bnc_alerts"
}
