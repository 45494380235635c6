// Package numfmt renders numbers for chat messages.
package numfmt

import (
	"fmt"
	"strconv"
)

// Compact 1000 -> 1.0K, 1_500_000 -> 1.5M, 2_000_000_000 -> 2.0B
func Compact(n float64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", n/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}
