package ioc

import (
	"github.com/KNICEX/market-alert/internal/service/dexscreener"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/viper"
)

func newRestyClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(httpTimeout())
}

func InitDexScreenerClient() *dexscreener.Client {
	cli := newRestyClient(viper.GetString("dexscreener.base_url"))
	return dexscreener.NewClient(cli, viper.GetInt("dexscreener.batch_size"))
}
