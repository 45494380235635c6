package binance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KNICEX/market-alert/internal/errs"
	"github.com/KNICEX/market-alert/internal/service/exchange"
	"github.com/KNICEX/market-alert/pkg/decimalx"
	"github.com/adshao/go-binance/v2"
	"github.com/samber/lo"
)

// 过期/下架币种
var binanceOverdueSymbolBase = []string{
	"BCC", "VEN", "PAX", "BCHABC", "BCHSV", "WAVES", "BTT", "USDS", "XMR", "NANO", "OMG",
	"MITH", "MATIC", "FTM", "USDSB", "GTO", "ERD", "NPXS", "COCOS", "TOMO", "PERL", "MFT",
	"KEY", "STORM", "DOCK", "BUSD", "BEAM", "REN", "HC", "MCO", "VITE", "DREP", "BULL", "BEAR",
	"ETHBULL", "ETHBEAR", "TCT", "WRX", "BTS", "EOSBULL", "EOSBEAR", "XRPBULL", "XRPBEAR", "START", "AION",
	"BNBBULL", "BNBBEAR", "WTC", "XZC", "BTCUP", "BTCDOWN", "GXS", "LEND", "STMX", "REP", "PNT", "BKRW",
	"ETHUP", "ETHDOWN", "ADAUP", "ADADOWN", "LINKUP", "LINKDOWN", "GBP", "DAI", "XTZUP", "XTZDOWN",
	"AUD", "BLZ", "IRIS", "KMD", "JST", "SRM", "ANT", "OCEAN", "WNXM", "BZRX", "YFII", "EOSUP", "EOSDOWN",
	"TRXUP", "TRXDOWN", "DOTUP", "DOTDOWN", "LTCUP", "LTCDOWN", "NBS", "HNT", "UNIUP", "UNIDOWN",
	"ORN", "SXPUP", "SXPDOWN", "FILUP", "FILDOWN", "YFIUP", "YFIDOWN", "BCHUP", "BCHDOWN", "UNFI",
	"XEM", "AAVEUP", "AAVEDOWN", "SUSD", "SUSHIUP", "SUSHIDOWN", "XLMUP", "XLMDOWN", "REEF", "BTCST",
	"LIT", "LINA", "RANP", "EPS", "AUTO", "1INCHUP", "1INCHDOWN", "BTG", "MIR", "BURGER", "MDX",
	"NU", "TORN", "KEEP", "ERN", "KLAY", "CLV", "TVK", "BOND", "FOR", "TRIBE", "POLY", "FRONT", "CVP",
	"DAR", "BNX", "RGT", "KP3R", "VGX", "PLA", "RNDR", "MC", "ANY", "OOKI", "ANC", "NBT", "MULTI",
	"GAL", "EPX", "POLYX", "AGIX", "AMB", "BETH", "LOOM", "OAX", "AERGO", "AST", "COMBO", "GFT",
	"STRAT", "BNBUP", "BNBDOWN", "XRPUP", "XRPDOWN", "AKRO", "DNT", "RAMP", "POLS", "UST", "MOB",
	"NEBL",

	"USDC", "FUSDT", "USDP",
}

var _ exchange.TickerService = (*TickerService)(nil)

type TickerService struct {
	cli         *binance.Client
	quotes      map[string]struct{}
	overdueBase map[string]struct{}
}

func toSet(items []string) map[string]struct{} {
	return lo.SliceToMap(items, func(item string) (string, struct{}) {
		return item, struct{}{}
	})
}

// NewTickerService quotes 为空时只保留 USDT 交易对
func NewTickerService(cli *binance.Client, quotes ...string) *TickerService {
	if len(quotes) == 0 {
		quotes = []string{"USDT"}
	}
	return &TickerService{
		cli:         cli,
		quotes:      toSet(quotes),
		overdueBase: toSet(binanceOverdueSymbolBase),
	}
}

func (svc *TickerService) Get24hTickers(ctx context.Context) ([]exchange.Ticker, error) {
	stats, err := svc.cli.NewListPriceChangeStatsService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: binance 24hr ticker: %w", errs.ErrTransientFetch, err)
	}

	tickers := make([]exchange.Ticker, 0, len(stats))
	for _, stat := range stats {
		base, quote := exchange.SplitSymbol(stat.Symbol)
		ticker, err := convertTicker(exchange.TradingPair{Base: base, Quote: quote}, stat)
		if err != nil {
			slog.Warn("skip malformed ticker", "symbol", stat.Symbol, "error", err)
			continue
		}
		ticker.Tracked = svc.tracked(ticker.TradingPair)
		tickers = append(tickers, ticker)
	}
	return tickers, nil
}

// tracked 未关注的交易对仍然返回, 价格提醒可能配置了任意交易对
func (svc *TickerService) tracked(pair exchange.TradingPair) bool {
	if pair.IsZero() {
		return false
	}
	if _, ok := svc.quotes[pair.Quote]; !ok {
		return false
	}
	_, overdue := svc.overdueBase[pair.Base]
	return !overdue
}

func convertTicker(pair exchange.TradingPair, stat *binance.PriceChangeStats) (exchange.Ticker, error) {
	changePercent, err := decimalx.ParseField("priceChangePercent", stat.PriceChangePercent)
	if err != nil {
		return exchange.Ticker{}, fmt.Errorf("%w: %w", errs.ErrParse, err)
	}
	lastPrice, err := decimalx.ParseField("lastPrice", stat.LastPrice)
	if err != nil {
		return exchange.Ticker{}, fmt.Errorf("%w: %w", errs.ErrParse, err)
	}
	highPrice, err := decimalx.ParseFieldOrZero("highPrice", stat.HighPrice)
	if err != nil {
		return exchange.Ticker{}, fmt.Errorf("%w: %w", errs.ErrParse, err)
	}
	lowPrice, err := decimalx.ParseFieldOrZero("lowPrice", stat.LowPrice)
	if err != nil {
		return exchange.Ticker{}, fmt.Errorf("%w: %w", errs.ErrParse, err)
	}
	volume, err := decimalx.ParseFieldOrZero("volume", stat.Volume)
	if err != nil {
		return exchange.Ticker{}, fmt.Errorf("%w: %w", errs.ErrParse, err)
	}
	return exchange.Ticker{
		TradingPair:        pair,
		PriceChangePercent: changePercent,
		LastPrice:          lastPrice,
		HighPrice:          highPrice,
		LowPrice:           lowPrice,
		Volume:             volume,
	}, nil
}
