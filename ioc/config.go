package ioc

import (
	"strings"
	"time"

	"github.com/KNICEX/market-alert/internal/service/alert"
	"github.com/KNICEX/market-alert/internal/service/dexscreener"
	"github.com/KNICEX/market-alert/internal/service/monitor"
	"github.com/KNICEX/market-alert/internal/service/notification/telegram"
	"github.com/spf13/viper"
)

// SetDefaults registers every known key, env overrides only apply to known keys.
func SetDefaults() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.dsn", "")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.max_size", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age", 30)

	viper.SetDefault("http.timeout", 10*time.Second)

	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.chat_id", "")
	viper.SetDefault("telegram.base_url", telegram.DefaultBaseURL)

	viper.SetDefault("binance.enabled", true)
	viper.SetDefault("binance.api_key", "")
	viper.SetDefault("binance.api_secret", "")
	viper.SetDefault("binance.interval", time.Minute)
	viper.SetDefault("binance.quotes", []string{"USDT"})
	viper.SetDefault("binance.surge_change", monitor.DefaultTickerConfig().SurgeChange)

	viper.SetDefault("dexscreener.enabled", true)
	viper.SetDefault("dexscreener.base_url", dexscreener.DefaultBaseURL)
	viper.SetDefault("dexscreener.interval", time.Minute)
	viper.SetDefault("dexscreener.batch_size", dexscreener.MaxBatchSize)

	alertCfg := alert.DefaultConfig()
	viper.SetDefault("alert.cooldown", alertCfg.Cooldown)
	viper.SetDefault("alert.pump_delta", alertCfg.PumpDelta)
	viper.SetDefault("alert.rug_pull_delta", alertCfg.RugPullDelta)
	viper.SetDefault("alert.surge_delta", alertCfg.SurgeDelta)
	viper.SetDefault("alert.volume_ratio", alertCfg.VolumeRatio)

	classifierCfg := monitor.DefaultClassifierConfig()
	viper.SetDefault("classifier.window", classifierCfg.Window)
	viper.SetDefault("classifier.pump_change", classifierCfg.PumpChange)
	viper.SetDefault("classifier.pump_min_volume", classifierCfg.PumpMinVolume)
	viper.SetDefault("classifier.rug_pull_change", classifierCfg.RugPullChange)
	viper.SetDefault("classifier.rug_pull_max_liquidity", classifierCfg.RugPullMaxLiquidity)
	viper.SetDefault("classifier.volume_spike_factor", classifierCfg.VolumeSpikeFactor)
}

// 逐个 key 读取, UnmarshalKey 读父 key 时不会合并 env 和默认值
func InitAlertConfig() alert.Config {
	return alert.Config{
		Cooldown:     viper.GetDuration("alert.cooldown"),
		PumpDelta:    viper.GetFloat64("alert.pump_delta"),
		RugPullDelta: viper.GetFloat64("alert.rug_pull_delta"),
		SurgeDelta:   viper.GetFloat64("alert.surge_delta"),
		VolumeRatio:  viper.GetFloat64("alert.volume_ratio"),
	}
}

func InitClassifierConfig() monitor.ClassifierConfig {
	cfg := monitor.ClassifierConfig{
		Window:              viper.GetInt("classifier.window"),
		PumpChange:          viper.GetFloat64("classifier.pump_change"),
		PumpMinVolume:       viper.GetFloat64("classifier.pump_min_volume"),
		RugPullChange:       viper.GetFloat64("classifier.rug_pull_change"),
		RugPullMaxLiquidity: viper.GetFloat64("classifier.rug_pull_max_liquidity"),
		VolumeSpikeFactor:   viper.GetFloat64("classifier.volume_spike_factor"),
	}
	if cfg.Window <= 0 {
		cfg.Window = monitor.DefaultClassifierConfig().Window
	}
	return cfg
}

func InitTickerConfig() monitor.TickerConfig {
	return monitor.TickerConfig{
		SurgeChange: viper.GetFloat64("binance.surge_change"),
	}
}

func httpTimeout() time.Duration {
	if d := viper.GetDuration("http.timeout"); d > 0 {
		return d
	}
	return 10 * time.Second
}
