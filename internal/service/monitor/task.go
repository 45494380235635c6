package monitor

import (
	"context"

	"github.com/KNICEX/market-alert/internal/schedule"
)

type MonitorTask struct {
	name    string
	scanner Scanner
}

func NewDexMonitorTask(m *DexMonitor) schedule.Task {
	return &MonitorTask{
		name:    "dexscreener monitor task",
		scanner: m,
	}
}

func NewTickerMonitorTask(m *TickerMonitor) schedule.Task {
	return &MonitorTask{
		name:    "binance ticker monitor task",
		scanner: m,
	}
}

func (t *MonitorTask) Run(ctx context.Context) error {
	return t.scanner.Scan(ctx)
}

func (t *MonitorTask) Name() string {
	return t.name
}
