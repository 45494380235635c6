package ioc

import (
	"net/http"

	"github.com/KNICEX/market-alert/internal/service/exchange/binance"
	binanceapi "github.com/adshao/go-binance/v2"
	"github.com/spf13/viper"
)

func InitBinanceCli() *binanceapi.Client {
	// 24hr ticker 是公开接口, key 可以为空
	cli := binanceapi.NewClient(viper.GetString("binance.api_key"), viper.GetString("binance.api_secret"))
	cli.HTTPClient = &http.Client{Timeout: httpTimeout()}
	return cli
}

func InitTickerService(cli *binanceapi.Client) *binance.TickerService {
	return binance.NewTickerService(cli, viper.GetStringSlice("binance.quotes")...)
}
