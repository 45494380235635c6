package entity

import "time"

// TokenSnapshot dex 交易对快照, append only
type TokenSnapshot struct {
	Id             int64  `gorm:"primaryKey;autoIncrement"`
	ChainId        string `gorm:"size:50"`
	DexId          string `gorm:"size:50"`
	Url            string `gorm:"size:255"`
	TokenAddress   string `gorm:"size:255;index"`
	PairAddress    string `gorm:"size:255"`
	Name           string `gorm:"size:255"`
	Symbol         string `gorm:"size:50"`
	PriceUsd       float64
	LiquidityUsd   float64
	Volume24h      float64 `gorm:"column:volume24h"`
	PriceChange24h float64 `gorm:"column:price_change24h"`
	MarketCap      float64
	CreatedAt      time.Time `gorm:"index"`
}

func (TokenSnapshot) TableName() string {
	return "dex_token_details"
}

// SeriesKey identifies the market a snapshot belongs to.
// A token may trade in several pairs, each pair is its own series.
func (s TokenSnapshot) SeriesKey() string {
	if s.PairAddress != "" {
		return s.PairAddress
	}
	return s.TokenAddress
}

// TickerSnapshot cex 24h ticker 快照, append only
type TickerSnapshot struct {
	Id                 int64  `gorm:"primaryKey;autoIncrement"`
	Symbol             string `gorm:"size:32;index"`
	PriceChangePercent float64
	LastPrice          float64
	HighPrice          float64
	LowPrice           float64
	Volume             float64
	CreatedAt          time.Time `gorm:"index"`
}

func (TickerSnapshot) TableName() string {
	return "bnc_tickers"
}
