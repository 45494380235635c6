package dexscreener

import "encoding/json"

// TokenProfile item of /token-profiles/latest/v1
type TokenProfile struct {
	TokenAddress string `json:"tokenAddress"`
	ChainId      string `json:"chainId"`
	Url          string `json:"url"`
	Icon         string `json:"icon"`
	Description  string `json:"description"`
}

type BaseToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type Liquidity struct {
	Usd float64 `json:"usd"`
}

// Window values keyed by rolling window, only 24h is used
type Window struct {
	H24 float64 `json:"h24"`
}

// Pair item of /latest/dex/tokens/{addresses}
type Pair struct {
	ChainId     string    `json:"chainId"`
	DexId       string    `json:"dexId"`
	Url         string    `json:"url"`
	PairAddress string    `json:"pairAddress"`
	BaseToken   BaseToken `json:"baseToken"`
	PriceUsd    string    `json:"priceUsd"`
	Liquidity   Liquidity `json:"liquidity"`
	Volume      Window    `json:"volume"`
	PriceChange Window    `json:"priceChange"`
	MarketCap   float64   `json:"marketCap"`
}

// records are kept raw so one malformed item does not fail the whole response
type pairsResponse struct {
	Pairs []json.RawMessage `json:"pairs"`
}
