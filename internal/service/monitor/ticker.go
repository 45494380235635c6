package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/repo"
	"github.com/KNICEX/market-alert/internal/service/alert"
	"github.com/KNICEX/market-alert/internal/service/exchange"
	"github.com/KNICEX/market-alert/internal/service/notification"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var _ Scanner = (*TickerMonitor)(nil)

// TickerMonitor cex 24h 行情: 关注交易对的涨幅告警 (带冷却) 和 任意交易对的价格提醒 (无状态)
type TickerMonitor struct {
	tickerSvc exchange.TickerService
	notifier  notification.Notifier
	alertSvc  alert.Service

	tickerRepo repo.TickerRepo
	watchRepo  repo.WatchLevelRepo

	surgeChange decimal.Decimal
	now         func() time.Time
}

func NewTickerMonitor(tickerSvc exchange.TickerService, alertSvc alert.Service, tickerRepo repo.TickerRepo,
	watchRepo repo.WatchLevelRepo, cfg TickerConfig, opts ...Option) *TickerMonitor {
	o := buildOptions(opts)
	return &TickerMonitor{
		tickerSvc:   tickerSvc,
		notifier:    o.notifier,
		alertSvc:    alertSvc,
		tickerRepo:  tickerRepo,
		watchRepo:   watchRepo,
		surgeChange: decimal.NewFromFloat(cfg.SurgeChange),
		now:         o.now,
	}
}

func (m *TickerMonitor) Scan(ctx context.Context) error {
	tickers, err := m.tickerSvc.Get24hTickers(ctx)
	if err != nil {
		return fmt.Errorf("get 24h tickers: %w", err)
	}
	tracked := lo.Filter(tickers, func(item exchange.Ticker, index int) bool {
		return item.Tracked
	})
	slog.Info("tickers fetched", "count", len(tickers), "tracked", len(tracked))

	m.save(ctx, tracked)

	levels, err := m.watchRepo.FindWatching(ctx)
	if err != nil {
		slog.Error("failed to load watch levels", "error", err)
	}
	levelBySymbol := lo.KeyBy(levels, func(item entity.WatchLevel) string {
		return item.Symbol
	})

	for _, ticker := range tickers {
		if ticker.Tracked {
			m.checkSurge(ctx, ticker)
		}
		if level, ok := levelBySymbol[ticker.Symbol()]; ok {
			if kind, touched := CheckWatchLevel(ticker.LastPrice, level); touched {
				slog.Info("watch level touched", "symbol", ticker.Symbol(), "kind", kind, "price", ticker.LastPrice)
				deliver(ctx, m.notifier, WatchLevelMessage(ticker, level, kind))
			}
		}
	}
	return nil
}

func (m *TickerMonitor) save(ctx context.Context, tickers []exchange.Ticker) {
	now := m.now()
	snapshots := lo.Map(tickers, func(item exchange.Ticker, index int) entity.TickerSnapshot {
		return entity.TickerSnapshot{
			Symbol:             item.Symbol(),
			PriceChangePercent: item.PriceChangePercent.InexactFloat64(),
			LastPrice:          item.LastPrice.InexactFloat64(),
			HighPrice:          item.HighPrice.InexactFloat64(),
			LowPrice:           item.LowPrice.InexactFloat64(),
			Volume:             item.Volume.InexactFloat64(),
			CreatedAt:          now,
		}
	})
	if err := m.tickerRepo.CreateBatch(ctx, snapshots); err != nil {
		slog.Error("failed to save tickers", "count", len(snapshots), "error", err)
	}
}

func (m *TickerMonitor) checkSurge(ctx context.Context, ticker exchange.Ticker) {
	if !ticker.PriceChangePercent.GreaterThan(m.surgeChange) {
		return
	}
	emit, err := m.alertSvc.Evaluate(ctx, alert.Observation{
		Identifier:     ticker.Symbol(),
		Source:         entity.SourceBinance,
		Venue:          entity.SourceBinance,
		Price:          ticker.LastPrice.InexactFloat64(),
		PriceChange24h: ticker.PriceChangePercent.InexactFloat64(),
		Volume24h:      ticker.Volume.InexactFloat64(),
	}, alert.Surge)
	if err != nil {
		slog.Error("failed to evaluate surge", "symbol", ticker.Symbol(), "error", err)
		return
	}
	if emit {
		slog.Info("price surge", "symbol", ticker.Symbol(), "change", ticker.PriceChangePercent)
		deliver(ctx, m.notifier, SurgeMessage(ticker))
	}
}
