package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/KNICEX/market-alert/internal/repo"
	"github.com/KNICEX/market-alert/internal/schedule"
	"github.com/KNICEX/market-alert/internal/service/alert"
	"github.com/KNICEX/market-alert/internal/service/monitor"
	"github.com/KNICEX/market-alert/ioc"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper() {
	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.yaml", "specify config file")
	pflag.Parse()

	// .env 可选, 只用来放密钥
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(fmt.Errorf("load .env: %w", err))
	}

	ioc.SetDefaults()
	viper.SetConfigFile(*file)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
}

func main() {
	initViper()
	ioc.InitLogger()

	db := ioc.InitDB()
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}

	notifier := ioc.InitNotifier()
	evaluator := alert.NewEvaluator(repo.NewAlertStateRepo(db), ioc.InitAlertConfig())

	var runners []*schedule.Runner
	if viper.GetBool("binance.enabled") {
		tickerMonitor := monitor.NewTickerMonitor(
			ioc.InitTickerService(ioc.InitBinanceCli()),
			evaluator,
			repo.NewTickerRepo(db),
			repo.NewWatchLevelRepo(db),
			ioc.InitTickerConfig(),
			monitor.WithNotifier(notifier),
		)
		runners = append(runners, schedule.NewRunner(monitor.NewTickerMonitorTask(tickerMonitor), interval("binance.interval")))
	}
	if viper.GetBool("dexscreener.enabled") {
		dexMonitor := monitor.NewDexMonitor(
			ioc.InitDexScreenerClient(),
			evaluator,
			repo.NewTokenRepo(db),
			repo.NewSnapshotRepo(db),
			ioc.InitClassifierConfig(),
			monitor.WithNotifier(notifier),
		)
		runners = append(runners, schedule.NewRunner(monitor.NewDexMonitorTask(dexMonitor), interval("dexscreener.interval")))
	}
	if len(runners) == 0 {
		slog.Warn("no pipeline enabled, exiting")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, r := range runners {
		wg.Add(1)
		go func(r *schedule.Runner) {
			defer wg.Done()
			r.Run(ctx)
		}(r)
	}
	slog.Info("market alert started", "pipelines", len(runners))
	wg.Wait()
	slog.Info("market alert stopped")
}

func interval(key string) time.Duration {
	if d := viper.GetDuration(key); d > 0 {
		return d
	}
	return time.Minute
}
