package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/errs"
	"github.com/KNICEX/market-alert/internal/repo"
	"github.com/KNICEX/market-alert/internal/service/alert"
	"github.com/KNICEX/market-alert/internal/service/exchange"
	"github.com/KNICEX/market-alert/internal/service/notification"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "monitor.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repo.InitTables(db))
	return db
}

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time {
	return c.t
}

type recordingNotifier struct {
	messages []notification.Message
	fail     bool
}

func (n *recordingNotifier) Notify(ctx context.Context, msg notification.Message) error {
	n.messages = append(n.messages, msg)
	if n.fail {
		return fmt.Errorf("%w: telegram down", errs.ErrNotifyDelivery)
	}
	return nil
}

type fakeDexSource struct {
	profiles    []string
	profilesErr error
	pairs       map[string][]string // token address -> raw pairs
}

func (s *fakeDexSource) LatestTokenProfiles(ctx context.Context) ([]json.RawMessage, error) {
	if s.profilesErr != nil {
		return nil, s.profilesErr
	}
	res := make([]json.RawMessage, 0, len(s.profiles))
	for _, p := range s.profiles {
		res = append(res, json.RawMessage(p))
	}
	return res, nil
}

func (s *fakeDexSource) TokenPairs(ctx context.Context, addresses []string) ([]json.RawMessage, error) {
	var res []json.RawMessage
	for _, addr := range addresses {
		for _, p := range s.pairs[addr] {
			res = append(res, json.RawMessage(p))
		}
	}
	return res, nil
}

func pairJSON(token string, change, volume, liquidity float64) string {
	return fmt.Sprintf(`{"chainId":"solana","dexId":"raydium","url":"https://dexscreener.com/solana/%[1]s",
		"pairAddress":"pair-%[1]s","baseToken":{"address":"%[1]s","name":"Token %[1]s","symbol":"%[1]s"},
		"priceUsd":"0.01","liquidity":{"usd":%[4]f},"volume":{"h24":%[3]f},"priceChange":{"h24":%[2]f},"marketCap":250000}`,
		token, change, volume, liquidity)
}

type dexFixture struct {
	monitor  *DexMonitor
	source   *fakeDexSource
	notifier *recordingNotifier
	clock    *testClock
	db       *gorm.DB
}

func newDexFixture(t *testing.T) *dexFixture {
	db := initTestDB(t)
	clock := &testClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	source := &fakeDexSource{pairs: map[string][]string{}}
	notifier := &recordingNotifier{}
	evaluator := alert.NewEvaluator(repo.NewAlertStateRepo(db), alert.DefaultConfig(), alert.WithClock(clock.Now))
	m := NewDexMonitor(source, evaluator, repo.NewTokenRepo(db), repo.NewSnapshotRepo(db), DefaultClassifierConfig(),
		WithNotifier(notifier), WithClock(clock.Now))
	return &dexFixture{monitor: m, source: source, notifier: notifier, clock: clock, db: db}
}

func TestDexMonitor_Scan(t *testing.T) {
	f := newDexFixture(t)
	ctx := context.Background()

	f.source.profiles = []string{
		`{"tokenAddress":"X","chainId":"solana"}`,
		`{"tokenAddress":"Z","chainId":"solana"}`,
		`{"tokenAddress":"Q","chainId":"solana"}`,
		`{"chainId":"solana"}`,
		`{"tokenAddress":"X","chainId":"solana"}`,
	}
	f.source.pairs["X"] = []string{pairJSON("X", 120, 200000, 80000)}
	f.source.pairs["Z"] = []string{pairJSON("Z", -95, 1000, 3000)}
	f.source.pairs["Q"] = []string{pairJSON("Q", 3, 1000, 80000), `{"pairAddress":"broken"}`}

	require.NoError(t, f.monitor.Scan(ctx))

	var tokens, snapshots, states int64
	require.NoError(t, f.db.Model(&entity.DexToken{}).Count(&tokens).Error)
	require.NoError(t, f.db.Model(&entity.TokenSnapshot{}).Count(&snapshots).Error)
	require.NoError(t, f.db.Model(&entity.AlertState{}).Count(&states).Error)
	assert.Equal(t, int64(3), tokens)
	assert.Equal(t, int64(3), snapshots)
	assert.Equal(t, int64(2), states)

	// window is newest first, Z was saved after X
	require.Len(t, f.notifier.messages, 2)
	assert.Contains(t, f.notifier.messages[0].Text, "Rug Pull Detected")
	assert.Contains(t, f.notifier.messages[1].Text, "Pump Detected")
	assert.True(t, f.notifier.messages[0].DisablePreview)

	var state entity.AlertState
	require.NoError(t, f.db.First(&state, "identifier = ?", "X").Error)
	assert.Equal(t, 120.0, state.LastPriceChange24h)
	assert.Equal(t, "pump", state.LastAlertType)
	assert.Equal(t, entity.SourceDexScreener, state.Source)
}

func TestDexMonitor_CooldownAcrossPolls(t *testing.T) {
	f := newDexFixture(t)
	ctx := context.Background()
	f.source.profiles = []string{`{"tokenAddress":"X"}`}

	f.source.pairs["X"] = []string{pairJSON("X", 120, 200000, 80000)}
	require.NoError(t, f.monitor.Scan(ctx))
	require.Len(t, f.notifier.messages, 1)

	f.clock.t = f.clock.t.Add(10 * time.Minute)
	f.source.pairs["X"] = []string{pairJSON("X", 180, 200000, 80000)}
	require.NoError(t, f.monitor.Scan(ctx))
	assert.Len(t, f.notifier.messages, 1)

	f.clock.t = f.clock.t.Add(55 * time.Minute)
	f.source.pairs["X"] = []string{pairJSON("X", 185, 200000, 80000)}
	require.NoError(t, f.monitor.Scan(ctx))
	assert.Len(t, f.notifier.messages, 2)
}

func TestDexMonitor_ProfileFetchFailureStillAnalyzes(t *testing.T) {
	f := newDexFixture(t)
	ctx := context.Background()
	f.source.profiles = []string{`{"tokenAddress":"Z"}`}
	f.source.pairs["Z"] = []string{pairJSON("Z", -10, 1000, 80000)}
	require.NoError(t, f.monitor.Scan(ctx))
	assert.Empty(t, f.notifier.messages)

	f.source.profilesErr = fmt.Errorf("%w: timeout", errs.ErrTransientFetch)
	f.clock.t = f.clock.t.Add(time.Minute)
	f.source.pairs["Z"] = []string{pairJSON("Z", -10, 9000, 80000)}
	require.NoError(t, f.monitor.Scan(ctx))

	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0].Text, "Volume Spike Detected")
}

func TestDexMonitor_NotifyFailureKeepsDecision(t *testing.T) {
	f := newDexFixture(t)
	f.notifier.fail = true
	f.source.profiles = []string{`{"tokenAddress":"X"}`}
	f.source.pairs["X"] = []string{pairJSON("X", 120, 200000, 80000)}

	require.NoError(t, f.monitor.Scan(context.Background()))

	var state entity.AlertState
	require.NoError(t, f.db.First(&state, "identifier = ?", "X").Error)
	assert.Equal(t, "pump", state.LastAlertType)
}

type fakeTickerService struct {
	tickers []exchange.Ticker
	err     error
}

func (s *fakeTickerService) Get24hTickers(ctx context.Context) ([]exchange.Ticker, error) {
	return s.tickers, s.err
}

func ticker(base, change, price string) exchange.Ticker {
	return exchange.Ticker{
		TradingPair:        exchange.TradingPair{Base: base, Quote: "USDT"},
		PriceChangePercent: decimal.RequireFromString(change),
		LastPrice:          decimal.RequireFromString(price),
		HighPrice:          decimal.RequireFromString(price),
		LowPrice:           decimal.RequireFromString(price),
		Volume:             decimal.RequireFromString("1500000"),
		Tracked:            true,
	}
}

func TestTickerMonitor_Scan(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	clock := &testClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	notifier := &recordingNotifier{}
	svc := &fakeTickerService{tickers: []exchange.Ticker{
		ticker("BTC", "2.5", "71000"),
		ticker("PEPE", "45", "0.00001"),
		ticker("ETH", "-1", "1900"),
		ticker("SOL", "1", "150"),
	}}
	require.NoError(t, db.Create(&[]entity.WatchLevel{
		{Symbol: "BTCUSDT", Higher: 70000, Lower: 50000, Watch: true},
		{Symbol: "ETHUSDT", Higher: 4000, Lower: 2000, Watch: true},
		{Symbol: "SOLUSDT", Higher: 100, Lower: 50, Watch: false},
	}).Error)

	evaluator := alert.NewEvaluator(repo.NewAlertStateRepo(db), alert.DefaultConfig(), alert.WithClock(clock.Now))
	m := NewTickerMonitor(svc, evaluator, repo.NewTickerRepo(db), repo.NewWatchLevelRepo(db), DefaultTickerConfig(),
		WithNotifier(notifier), WithClock(clock.Now))

	require.NoError(t, m.Scan(ctx))

	var snapshots int64
	require.NoError(t, db.Model(&entity.TickerSnapshot{}).Count(&snapshots).Error)
	assert.Equal(t, int64(4), snapshots)

	require.Len(t, notifier.messages, 3)
	assert.Contains(t, notifier.messages[0].Text, "BTCUSDT touched upper bound 70000")
	assert.Contains(t, notifier.messages[1].Text, "Price Surge PEPEUSDT")
	assert.Contains(t, notifier.messages[2].Text, "ETHUSDT touched lower bound 2000")

	// 价格提醒无状态, 每次轮询都会再次触发; 涨幅告警受冷却限制
	clock.t = clock.t.Add(time.Minute)
	require.NoError(t, m.Scan(ctx))
	assert.Len(t, notifier.messages, 5)
}

func TestTickerMonitor_WatchLevelOnUntrackedPair(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}

	ethbtc := ticker("ETH", "45", "0.06")
	ethbtc.TradingPair.Quote = "BTC"
	ethbtc.Tracked = false
	svc := &fakeTickerService{tickers: []exchange.Ticker{
		ethbtc,
		ticker("BTC", "1", "71000"),
	}}
	require.NoError(t, db.Create(&[]entity.WatchLevel{
		{Symbol: "ETHBTC", Higher: 0.05, Watch: true},
		{Symbol: "BTCUSDT", Higher: 70000, Watch: true},
	}).Error)

	evaluator := alert.NewEvaluator(repo.NewAlertStateRepo(db), alert.DefaultConfig())
	m := NewTickerMonitor(svc, evaluator, repo.NewTickerRepo(db), repo.NewWatchLevelRepo(db), DefaultTickerConfig(),
		WithNotifier(notifier))

	require.NoError(t, m.Scan(ctx))

	require.Len(t, notifier.messages, 2)
	assert.Contains(t, notifier.messages[0].Text, "ETHBTC touched upper bound 0.05")
	assert.Contains(t, notifier.messages[1].Text, "BTCUSDT touched upper bound 70000")

	// 未关注的交易对不存快照, 也不走涨幅告警
	var snapshots []entity.TickerSnapshot
	require.NoError(t, db.Find(&snapshots).Error)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "BTCUSDT", snapshots[0].Symbol)

	var states int64
	require.NoError(t, db.Model(&entity.AlertState{}).Count(&states).Error)
	assert.Zero(t, states)
}

func TestTickerMonitor_FetchError(t *testing.T) {
	db := initTestDB(t)
	svc := &fakeTickerService{err: fmt.Errorf("%w: connection reset", errs.ErrTransientFetch)}
	evaluator := alert.NewEvaluator(repo.NewAlertStateRepo(db), alert.DefaultConfig())
	m := NewTickerMonitor(svc, evaluator, repo.NewTickerRepo(db), repo.NewWatchLevelRepo(db), DefaultTickerConfig())

	err := m.Scan(context.Background())
	assert.True(t, errors.Is(err, errs.ErrTransientFetch))
}
