package dexscreener

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/errs"
	"github.com/KNICEX/market-alert/pkg/decimalx"
)

func ParseProfile(raw json.RawMessage, now time.Time) (entity.DexToken, error) {
	var p TokenProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return entity.DexToken{}, fmt.Errorf("%w: token profile: %w", errs.ErrParse, err)
	}
	if p.TokenAddress == "" {
		return entity.DexToken{}, fmt.Errorf("%w: token profile without tokenAddress", errs.ErrParse)
	}
	if p.Description == "" {
		p.Description = "-"
	}
	return entity.DexToken{
		TokenAddress: p.TokenAddress,
		ChainId:      p.ChainId,
		Url:          p.Url,
		Icon:         p.Icon,
		Description:  p.Description,
		CreatedAt:    now,
	}, nil
}

func ParsePair(raw json.RawMessage, now time.Time) (entity.TokenSnapshot, error) {
	var p Pair
	if err := json.Unmarshal(raw, &p); err != nil {
		return entity.TokenSnapshot{}, fmt.Errorf("%w: pair: %w", errs.ErrParse, err)
	}
	if p.BaseToken.Address == "" {
		return entity.TokenSnapshot{}, fmt.Errorf("%w: pair %s without baseToken.address", errs.ErrParse, p.PairAddress)
	}
	price, err := decimalx.ParseFieldOrZero("priceUsd", p.PriceUsd)
	if err != nil {
		return entity.TokenSnapshot{}, fmt.Errorf("%w: pair %s: %w", errs.ErrParse, p.PairAddress, err)
	}
	return entity.TokenSnapshot{
		ChainId:        p.ChainId,
		DexId:          p.DexId,
		Url:            p.Url,
		TokenAddress:   p.BaseToken.Address,
		PairAddress:    p.PairAddress,
		Name:           p.BaseToken.Name,
		Symbol:         p.BaseToken.Symbol,
		PriceUsd:       price.InexactFloat64(),
		LiquidityUsd:   p.Liquidity.Usd,
		Volume24h:      p.Volume.H24,
		PriceChange24h: p.PriceChange.H24,
		MarketCap:      p.MarketCap,
		CreatedAt:      now,
	}, nil
}
