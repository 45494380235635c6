package monitor

import (
	"fmt"
	"strings"

	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/service/alert"
	"github.com/KNICEX/market-alert/internal/service/exchange"
	"github.com/KNICEX/market-alert/internal/service/notification"
	"github.com/KNICEX/market-alert/pkg/numfmt"
	"github.com/shopspring/decimal"
)

// telegram legacy Markdown only needs these escaped
var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

func tokenLink(s entity.TokenSnapshot) string {
	return fmt.Sprintf("[%s (%s)](%s)", escape(s.Name), escape(s.Symbol), s.Url)
}

// DexMessage builds the notification for a classified dex snapshot
func DexMessage(c Classification) notification.Message {
	s := c.Snapshot
	var b strings.Builder
	switch c.Kind {
	case alert.Pump:
		b.WriteString("🚀 *Pump Detected!*\n\n")
	case alert.RugPull:
		b.WriteString("💀 *Rug Pull Detected!*\n\n")
	case alert.VolumeSpike:
		b.WriteString("📈 *Volume Spike Detected!*\n\n")
	default:
		fmt.Fprintf(&b, "*%s*\n\n", escape(c.Kind.ToString()))
	}
	fmt.Fprintf(&b, "🔹 *Name:* %s\n", tokenLink(s))
	fmt.Fprintf(&b, "🔹 *Market Cap:* $%s\n", numfmt.Compact(s.MarketCap))
	if c.Kind == alert.VolumeSpike {
		fmt.Fprintf(&b, "🔹 *24H Volume:* $%s\n", numfmt.Compact(s.Volume24h))
		fmt.Fprintf(&b, "🔹 *Liquidity:* $%s\n", numfmt.Compact(s.LiquidityUsd))
	} else {
		fmt.Fprintf(&b, "🔹 *24H Change:* %s%%\n", numfmt.Compact(s.PriceChange24h))
		fmt.Fprintf(&b, "🔹 *Price:* $%s\n", numfmt.Compact(s.PriceUsd))
	}
	fmt.Fprintf(&b, "🔹 *DEX:* %s", escape(s.DexId))
	return notification.Message{Text: b.String(), DisablePreview: true}
}

func SurgeMessage(t exchange.Ticker) notification.Message {
	text := fmt.Sprintf("🚀 *Price Surge %s* 🚀\n"+
		"📈 24H Change: %s%%\n"+
		"💰 Last Price: %s\n"+
		"📊 High: %s\n"+
		"📉 Low: %s\n"+
		"🔄 Volume: %s",
		t.Symbol(),
		t.PriceChangePercent.StringFixed(2),
		t.LastPrice.String(),
		t.HighPrice.String(),
		t.LowPrice.String(),
		numfmt.Compact(t.Volume.InexactFloat64()),
	)
	return notification.Message{Text: text}
}

func WatchLevelMessage(t exchange.Ticker, level entity.WatchLevel, kind alert.Kind) notification.Message {
	bound, name := level.Higher, "upper"
	if kind == alert.TouchLower {
		bound, name = level.Lower, "lower"
	}
	text := fmt.Sprintf("🔔 *%s touched %s bound %s*\n📈 Current Price: %s",
		t.Symbol(),
		name,
		decimal.NewFromFloat(bound).String(),
		t.LastPrice.String(),
	)
	return notification.Message{Text: text}
}
