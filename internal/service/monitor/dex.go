package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/errs"
	"github.com/KNICEX/market-alert/internal/repo"
	"github.com/KNICEX/market-alert/internal/service/alert"
	"github.com/KNICEX/market-alert/internal/service/dexscreener"
	"github.com/KNICEX/market-alert/internal/service/notification"
)

var _ Scanner = (*DexMonitor)(nil)

type DexMonitor struct {
	source   DexSource
	notifier notification.Notifier
	alertSvc alert.Service

	tokenRepo    repo.TokenRepo
	snapshotRepo repo.SnapshotRepo

	cfg ClassifierConfig
	now func() time.Time
}

type Option func(m *monitorOptions)

type monitorOptions struct {
	notifier notification.Notifier
	now      func() time.Time
}

func WithNotifier(notifier notification.Notifier) Option {
	return func(o *monitorOptions) {
		o.notifier = notifier
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *monitorOptions) {
		o.now = now
	}
}

func buildOptions(opts []Option) monitorOptions {
	o := monitorOptions{
		notifier: notification.NewConsoleNotifier(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func NewDexMonitor(source DexSource, alertSvc alert.Service, tokenRepo repo.TokenRepo, snapshotRepo repo.SnapshotRepo,
	cfg ClassifierConfig, opts ...Option) *DexMonitor {
	o := buildOptions(opts)
	return &DexMonitor{
		source:       source,
		notifier:     o.notifier,
		alertSvc:     alertSvc,
		tokenRepo:    tokenRepo,
		snapshotRepo: snapshotRepo,
		cfg:          cfg,
		now:          o.now,
	}
}

func (m *DexMonitor) Scan(ctx context.Context) error {
	m.collectProfiles(ctx)
	m.collectPairs(ctx)
	return m.Analyze(ctx)
}

func (m *DexMonitor) collectProfiles(ctx context.Context) {
	profiles, err := m.source.LatestTokenProfiles(ctx)
	if err != nil {
		slog.Error("failed to fetch token profiles", "error", err)
		return
	}

	now := m.now()
	added := 0
	for _, raw := range profiles {
		token, err := dexscreener.ParseProfile(raw, now)
		if err != nil {
			slog.Warn("skip token profile", "error", err)
			continue
		}
		if err := m.tokenRepo.Create(ctx, token); err != nil {
			if !errors.Is(err, errs.ErrDuplicateKey) {
				slog.Error("failed to save token", "token", token.TokenAddress, "error", err)
			}
			continue
		}
		added++
	}
	slog.Info("token profiles collected", "received", len(profiles), "new", added)
}

func (m *DexMonitor) collectPairs(ctx context.Context) {
	addresses, err := m.tokenRepo.ListAddresses(ctx)
	if err != nil {
		slog.Error("failed to list tokens", "error", err)
		return
	}
	if len(addresses) == 0 {
		return
	}

	pairs, err := m.source.TokenPairs(ctx, addresses)
	if err != nil {
		// 部分批次失败时仍保存成功的部分
		slog.Error("failed to fetch some token pairs", "error", err)
	}

	now := m.now()
	saved := 0
	for _, raw := range pairs {
		snapshot, err := dexscreener.ParsePair(raw, now)
		if err != nil {
			slog.Warn("skip token pair", "error", err)
			continue
		}
		if err := m.snapshotRepo.Create(ctx, snapshot); err != nil {
			slog.Error("failed to save token snapshot", "token", snapshot.TokenAddress, "error", err)
			continue
		}
		saved++
	}
	slog.Info("token pairs collected", "tokens", len(addresses), "pairs", len(pairs), "saved", saved)
}

// Analyze classifies the recent window and notifies on what the evaluator lets through.
func (m *DexMonitor) Analyze(ctx context.Context) error {
	window, err := m.snapshotRepo.Recent(ctx, m.cfg.Window)
	if err != nil {
		return fmt.Errorf("load recent snapshots: %w", err)
	}

	var errList []error
	for _, c := range Classify(window, m.cfg) {
		s := c.Snapshot
		emit, err := m.alertSvc.Evaluate(ctx, alert.Observation{
			Identifier:     s.TokenAddress,
			Source:         entity.SourceDexScreener,
			Venue:          s.DexId,
			Price:          s.PriceUsd,
			PriceChange24h: s.PriceChange24h,
			Volume24h:      s.Volume24h,
		}, c.Kind)
		if err != nil {
			slog.Error("failed to evaluate alert", "token", s.TokenAddress, "kind", c.Kind, "error", err)
			errList = append(errList, err)
			continue
		}
		if !emit {
			continue
		}

		slog.Info("dex alert", "token", s.TokenAddress, "symbol", s.Symbol, "kind", c.Kind)
		deliver(ctx, m.notifier, DexMessage(c))
	}
	return errors.Join(errList...)
}

// deliver best effort, the alert state is already committed
func deliver(ctx context.Context, notifier notification.Notifier, msg notification.Message) {
	if err := notifier.Notify(ctx, msg); err != nil {
		slog.Error("failed to send notification", "error", err)
	}
}
