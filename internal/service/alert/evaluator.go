package alert

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/repo"
)

var _ Service = (*Evaluator)(nil)

// Evaluator gates notifications per identifier with a cooldown and a magnitude check.
// The baseline is always the last emitted alert, suppressed checks never touch it.
type Evaluator struct {
	repo repo.AlertStateRepo
	cfg  Config
	now  func() time.Time
}

type Option func(e *Evaluator)

func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

func NewEvaluator(repo repo.AlertStateRepo, cfg Config, opts ...Option) *Evaluator {
	e := &Evaluator{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Evaluate(ctx context.Context, obs Observation, kind Kind) (bool, error) {
	last, found, err := e.repo.Find(ctx, obs.Identifier)
	if err != nil {
		return false, fmt.Errorf("find alert state %s: %w", obs.Identifier, err)
	}

	now := e.now()
	if !found {
		// 第一次出现, 直接通知
		return e.emit(ctx, obs, kind, now)
	}

	if now.Sub(last.LastAlertTime) < e.cfg.Cooldown {
		return false, nil
	}

	if !e.significant(obs, last, kind) {
		return false, nil
	}
	return e.emit(ctx, obs, kind, now)
}

func (e *Evaluator) significant(obs Observation, last entity.AlertState, kind Kind) bool {
	switch kind {
	case Pump:
		return math.Abs(obs.PriceChange24h-last.LastPriceChange24h) > e.cfg.PumpDelta
	case RugPull:
		return math.Abs(obs.PriceChange24h-last.LastPriceChange24h) > e.cfg.RugPullDelta
	case Surge:
		return math.Abs(obs.PriceChange24h-last.LastPriceChange24h) > e.cfg.SurgeDelta
	case VolumeSpike:
		return obs.Volume24h/math.Max(last.LastVolume24h, 1) > e.cfg.VolumeRatio
	default:
		return false
	}
}

func (e *Evaluator) emit(ctx context.Context, obs Observation, kind Kind, now time.Time) (bool, error) {
	err := e.repo.Upsert(ctx, entity.AlertState{
		Identifier:         obs.Identifier,
		Source:             obs.Source,
		Venue:              obs.Venue,
		LastPrice:          obs.Price,
		LastPriceChange24h: obs.PriceChange24h,
		LastVolume24h:      obs.Volume24h,
		LastAlertType:      kind.ToString(),
		LastAlertTime:      now,
	})
	if err != nil {
		return false, fmt.Errorf("save alert state %s: %w", obs.Identifier, err)
	}
	return true, nil
}
