package exchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TradingPair 交易对
type TradingPair struct {
	Base  string
	Quote string
}

func SplitSymbol(s string) (string, string) {
	s = strings.ToUpper(s)
	// 常见 Quote 列表
	quotes := []string{"USDT", "FDUSD", "USDC", "BTC", "ETH", "BNB"}
	for _, q := range quotes {
		if strings.HasSuffix(s, q) && len(s) > len(q) {
			return strings.TrimSuffix(s, q), q
		}
	}
	// fallback
	return s, ""
}

func (s *TradingPair) IsZero() bool {
	return s.Base == "" || s.Quote == ""
}

func (s *TradingPair) ToString() string {
	return fmt.Sprintf("%s%s", s.Base, s.Quote)
}

// Ticker 24h 滚动窗口行情
type Ticker struct {
	TradingPair        TradingPair
	PriceChangePercent decimal.Decimal
	LastPrice          decimal.Decimal
	HighPrice          decimal.Decimal
	LowPrice           decimal.Decimal
	Volume             decimal.Decimal // 成交量
	// Tracked quote 在关注列表且未下架, 只有 Tracked 的行情参与存储和涨幅告警
	Tracked bool
}

func (t Ticker) Symbol() string {
	return t.TradingPair.ToString()
}

// TickerService returns every parsable ticker of the feed, untracked ones included.
type TickerService interface {
	Get24hTickers(ctx context.Context) ([]Ticker, error)
}
