package mcp

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// formatNumber adds comma separators to integers.
func formatNumber(n any) string {
	var s string
	switch v := n.(type) {
	case int64:
		s = fmt.Sprintf("%d", v)
	case uint64:
		s = fmt.Sprintf("%d", v)
	case int:
		s = fmt.Sprintf("%d", v)
	case string:
		// Decimal strings group too; anything else passes through.
		for _, r := range v {
			if r < '0' || r > '9' {
				return v
			}
		}
		s = v
	default:
		return fmt.Sprintf("%v", n)
	}

	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	start := len(s) % 3
	if start > 0 {
		result.WriteString(s[:start])
	}
	for i := start; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// kv formats a key-value pair with aligned values (20 char key width).
func kv(key string, value any) string {
	return fmt.Sprintf("%-20s %v", key+":", value)
}

// section returns a markdown section header.
func section(title string) string {
	return "## " + title
}

// joinLines joins lines with newlines. Empty strings survive as blank
// separator lines.
func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

// formatWei renders a decimal wei string as gwei for readability.
func formatWei(wei string) string {
	v, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		return wei + " wei"
	}
	gwei := new(big.Rat).SetFrac(v, big.NewInt(1_000_000_000))
	return strings.TrimRight(strings.TrimRight(gwei.FloatString(3), "0"), ".") + " gwei"
}

// formatElapsed trims an elapsed duration to milliseconds.
func formatElapsed(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
